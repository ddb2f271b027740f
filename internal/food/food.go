// internal/food/food.go

// Package food 定義核心領域模型：Food 紀錄、營養素加總 (Macros) 與篩選條件 (Predicate)。
// 不含任何歷史紀錄、HTTP 或儲存細節。
package food

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout 為 Food.Date 的固定格式。
const DateLayout = "2006-01-02"

// MaxGrams 為單一營養素的上限（公克），加總與熱量換算不會溢位。
const MaxGrams = 100000

var validate = validator.New()

// Food 為單筆飲食紀錄。
// 以全欄位值相等作為識別，沒有代理鍵 (surrogate key)。
type Food struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Protein int      `json:"protein" validate:"gte=0,lte=100000"`
	Fat     int      `json:"fat" validate:"gte=0,lte=100000"`
	Carbs   int      `json:"carbs" validate:"gte=0,lte=100000"`
	Tags    []string `json:"tags,omitempty" validate:"dive,required,alphanum,max=30"`
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
}

// New 建立並驗證一筆 Food。tags 會去重並排序，使相等性與輸入順序無關。
func New(name string, protein, fat, carbs int, tags []string, date string) (Food, error) {
	f := Food{
		Name:    strings.TrimSpace(name),
		Protein: protein,
		Fat:     fat,
		Carbs:   carbs,
		Tags:    normalizeTags(tags),
		Date:    date,
	}
	if err := f.Validate(); err != nil {
		return Food{}, err
	}
	return f, nil
}

// Validate 以 validator tag 檢查欄位；失敗時包裝為 ErrInvalidFood。
func (f Food) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFood, describe(err))
	}
	return nil
}

// Calories 以 4/9/4 kcal 換算。
func (f Food) Calories() int {
	return f.Macros().Calories()
}

// Macros 回傳單筆 Food 的營養素。
func (f Food) Macros() Macros {
	return Macros{Protein: f.Protein, Fat: f.Fat, Carbs: f.Carbs}
}

// HasTag 判斷 f 是否帶有 tag（不分大小寫）。
func (f Food) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Clone 深拷貝：Tags 切片不與原值共用底層陣列。
func (f Food) Clone() Food {
	cp := f
	if f.Tags != nil {
		cp.Tags = slices.Clone(f.Tags)
	}
	return cp
}

// Equal 全欄位比較；Tags 視為集合。
func (f Food) Equal(o Food) bool {
	if f.Name != o.Name || f.Protein != o.Protein || f.Fat != o.Fat || f.Carbs != o.Carbs || f.Date != o.Date {
		return false
	}
	return slices.Equal(normalizeTags(f.Tags), normalizeTags(o.Tags))
}

func (f Food) String() string {
	return fmt.Sprintf("%s (P %dg, F %dg, C %dg, %d kcal) %s %v",
		f.Name, f.Protein, f.Fat, f.Carbs, f.Calories(), f.Date, f.Tags)
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// describe 將 validator 的錯誤轉為使用者可讀訊息。
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gte":
			msgs = append(msgs, field+" must be a non-negative integer")
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %d", field, MaxGrams))
		case "max":
			msgs = append(msgs, field+" is too long")
		case "alphanum":
			msgs = append(msgs, "tags must be alphanumeric")
		case "datetime":
			msgs = append(msgs, "date must be in "+DateLayout+" format")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
