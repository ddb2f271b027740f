// internal/food/predicate.go
//
// Predicate 為可比較的篩選條件。
// Go 的函式值無法比較，因此每個條件帶有一個正規化的 Key：
// 兩個 Predicate 相等若且唯若 Key 相等。歷史紀錄靠這個 Key 判斷狀態是否重複。
package food

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Predicate 決定一筆 Food 是否出現在篩選後的清單中。
type Predicate interface {
	Match(f Food) bool
	Key() string
}

// SamePredicate 判斷 a 與 b 是否為相同的篩選條件（以 Key 比較）。
func SamePredicate(a, b Predicate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}

type funcPredicate struct {
	key string
	fn  func(Food) bool
}

func (p funcPredicate) Match(f Food) bool { return p.fn(f) }
func (p funcPredicate) Key() string       { return p.key }

// Func 以任意函式建立條件；key 必須能唯一描述 fn 的語意。
func Func(key string, fn func(Food) bool) Predicate {
	return funcPredicate{key: key, fn: fn}
}

var (
	showAll  = Func("all", func(Food) bool { return true })
	showNone = Func("none", func(Food) bool { return false })
)

// ShowAll 為預設條件：顯示全部。
func ShowAll() Predicate { return showAll }

// ShowNone 不顯示任何紀錄。
func ShowNone() Predicate { return showNone }

// NameContains 比對名稱中是否含有任一關鍵字（整字、不分大小寫）。
func NameContains(words ...string) Predicate {
	norm := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			norm = append(norm, w)
		}
	}
	sort.Strings(norm)
	return Func("name:"+quoteAll(norm), func(f Food) bool {
		for _, part := range strings.Fields(strings.ToLower(f.Name)) {
			for _, w := range norm {
				if part == w {
					return true
				}
			}
		}
		return false
	})
}

// HasTag 比對帶有 tag 的紀錄（不分大小寫）。
func HasTag(tag string) Predicate {
	tag = strings.TrimSpace(tag)
	return Func("tag:"+strconv.Quote(strings.ToLower(tag)), func(f Food) bool { return f.HasTag(tag) })
}

// OnDate 比對指定日期（DateLayout）的紀錄。
func OnDate(date string) Predicate {
	return Func("date:"+strconv.Quote(date), func(f Food) bool { return f.Date == date })
}

// AllOf 為交集；沒有子條件時等同 ShowAll。
func AllOf(preds ...Predicate) Predicate {
	switch len(preds) {
	case 0:
		return showAll
	case 1:
		return preds[0]
	}
	preds = slices.Clone(preds)
	keys := make([]string, len(preds))
	for i, p := range preds {
		keys[i] = p.Key()
	}
	sort.Strings(keys)
	return Func("and("+quoteAll(keys)+")", func(f Food) bool {
		for _, p := range preds {
			if !p.Match(f) {
				return false
			}
		}
		return true
	})
}

// Filter 依序回傳符合 p 的元素（保留原順序）。
func Filter(foods []Food, p Predicate) []Food {
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		if p.Match(f) {
			out = append(out, f)
		}
	}
	return out
}

// quoteAll 逐一加上引號後以逗號串接，元素內含的逗號或括號不會與分隔符混淆。
func quoteAll(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = strconv.Quote(p)
	}
	return strings.Join(quoted, ",")
}
