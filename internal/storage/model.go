// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的結構模型。
// 該層負責 Food 清單的序列化格式（JSON），並保存中繼資訊 (Meta)，
// 以便版本控制與切換不同的儲存後端（JSON 檔案 / BadgerDB）。
package storage

import (
	"fmt"
	"time"

	"mcgymmy/internal/food"
)

// SchemaVersion 為目前快照格式的版本號。
const SchemaVersion = 1

// Meta 為所有持久化快照的中繼資料 (metadata)。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_snapshot"
	Version   int       `json:"version"`        // 結構版本號，用於未來升級時比對
	Timestamp time.Time `json:"timestamp"`      // 快照建立時間
	Note      string    `json:"note,omitempty"` // 備註欄，可選
}

// PersistFood 為 Food 在儲存層的序列化格式。
// 與 food.Food 分離，讓磁碟格式可獨立演進。
type PersistFood struct {
	Name    string   `json:"name"`
	Protein int      `json:"protein"`
	Fat     int      `json:"fat"`
	Carbs   int      `json:"carbs"`
	Tags    []string `json:"tags"`
	Date    string   `json:"date"`
}

// Snapshot 為 Food 清單的完整快照，整體載入、整體保存。
type Snapshot struct {
	Meta  Meta          `json:"_meta"`
	Foods []PersistFood `json:"foods"`
}

// FromFoods 由領域物件建立快照（深拷貝 tags）。
func FromFoods(foods []food.Food) Snapshot {
	s := Snapshot{
		Meta:  Meta{Version: SchemaVersion},
		Foods: make([]PersistFood, 0, len(foods)),
	}
	for _, f := range foods {
		s.Foods = append(s.Foods, PersistFood{
			Name: f.Name, Protein: f.Protein, Fat: f.Fat, Carbs: f.Carbs,
			Tags: append([]string(nil), f.Tags...), Date: f.Date,
		})
	}
	return s
}

// ToFoods 將快照轉回領域物件。
// 任何欄位不合法或清單含重複 Food 時回傳 ErrFormat，不回傳部分結果。
func (s Snapshot) ToFoods() ([]food.Food, error) {
	if s.Meta.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, s.Meta.Version)
	}
	out := make([]food.Food, 0, len(s.Foods))
	for i, pf := range s.Foods {
		f, err := food.New(pf.Name, pf.Protein, pf.Fat, pf.Carbs, pf.Tags, pf.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: food #%d: %v", ErrFormat, i+1, err)
		}
		for _, prev := range out {
			if prev.Equal(f) {
				return nil, fmt.Errorf("%w: %s", ErrFormat, msgDuplicateFood)
			}
		}
		out = append(out, f)
	}
	return out, nil
}

const msgDuplicateFood = "food list contains duplicate food(s)"
