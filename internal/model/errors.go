// internal/model/errors.go
//
// 本檔集中定義 model 層的領域錯誤。
// 皆為可回復錯誤：上層（command / server）回報訊息後程式繼續執行。
// 任何回傳錯誤的操作都不會改變 FoodList、篩選條件或 History。

package model

import "errors"

var (
	// ErrEmptyHistory 代表沒有可復原／重做的狀態。屬於預期結果，不是例外。
	ErrEmptyHistory = errors.New("no more history")

	// ErrIndexOutOfRange 代表索引不在目前篩選後的清單範圍內。
	ErrIndexOutOfRange = errors.New("the food index provided is invalid")

	// ErrDuplicateFood 代表欲加入的 Food 與既有項目完全相同。
	ErrDuplicateFood = errors.New("this food already exists in the list")
)
