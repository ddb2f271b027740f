// internal/food/errors.go

package food

import "errors"

// ErrInvalidFood 代表欄位未通過驗證（名稱空白、營養素為負、日期格式錯誤等）。
// 由上層轉為使用者可讀的驗證錯誤。
var ErrInvalidFood = errors.New("invalid food")
