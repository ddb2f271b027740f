// internal/storage/errors.go
//
// 持久化錯誤分為兩類：
//   - 格式錯誤 (ErrFormat)：檔案可讀取但內容不符合預期格式。
//   - I/O 錯誤：原樣往上傳遞（os / badger 回傳的錯誤）。
//
// 兩者都不會改變記憶體中的 Model 狀態，由呼叫端決定如何回報。
package storage

import "errors"

var (
	// ErrFormat 代表資料內容無法轉換成 Food 清單。
	ErrFormat = errors.New("data format error")

	// ErrNotFound 代表尚無快照（第一次啟動）。呼叫端應以空清單啟動。
	ErrNotFound = errors.New("snapshot not found")
)
