// internal/model/foodlist.go

package model

import (
	"fmt"

	"mcgymmy/internal/food"
)

// FoodList 為有序且不含重複元素的 Food 清單。
// 只由 Model 擁有並修改；對外只提供拷貝。
type FoodList struct {
	items []food.Food
}

// NewFoodList 以 foods 建立清單；含重複元素時回傳 ErrDuplicateFood。
func NewFoodList(foods []food.Food) (*FoodList, error) {
	l := &FoodList{}
	if err := l.Reset(foods); err != nil {
		return nil, err
	}
	return l, nil
}

// Len 回傳清單筆數。
func (l *FoodList) Len() int { return len(l.items) }

// Contains 以值相等判斷是否已存在。
func (l *FoodList) Contains(f food.Food) bool {
	return l.indexOf(f) >= 0
}

func (l *FoodList) indexOf(f food.Food) int {
	for i, it := range l.items {
		if it.Equal(f) {
			return i
		}
	}
	return -1
}

// Add 附加到尾端。
func (l *FoodList) Add(f food.Food) error {
	if l.Contains(f) {
		return ErrDuplicateFood
	}
	l.items = append(l.items, f.Clone())
	return nil
}

// Set 取代 i 位置的元素；f 與「其他」元素相同時回傳 ErrDuplicateFood。
func (l *FoodList) Set(i int, f food.Food) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if j := l.indexOf(f); j >= 0 && j != i {
		return ErrDuplicateFood
	}
	l.items[i] = f.Clone()
	return nil
}

// Remove 移除 i 位置的元素並保留其餘順序。
func (l *FoodList) Remove(i int) (food.Food, error) {
	if i < 0 || i >= len(l.items) {
		return food.Food{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	removed := l.items[i]
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return removed, nil
}

// Reset 整體取代內容。先完整檢查再套用，失敗時原內容不變。
func (l *FoodList) Reset(foods []food.Food) error {
	next := make([]food.Food, 0, len(foods))
	for _, f := range foods {
		for _, prev := range next {
			if prev.Equal(f) {
				return ErrDuplicateFood
			}
		}
		next = append(next, f.Clone())
	}
	l.items = next
	return nil
}

// Items 回傳深拷貝，呼叫端修改不影響清單。
func (l *FoodList) Items() []food.Food {
	out := make([]food.Food, len(l.items))
	for i, f := range l.items {
		out[i] = f.Clone()
	}
	return out
}

// Clone 深拷貝整個清單。
func (l *FoodList) Clone() *FoodList {
	return &FoodList{items: l.Items()}
}

// Equal 逐一比較（順序有意義）。
func (l *FoodList) Equal(o *FoodList) bool {
	if len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if !l.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}
