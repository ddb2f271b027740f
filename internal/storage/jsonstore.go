// internal/storage/jsonstore.go
//
// 提供 JSON 檔案後端的 Store 實作。
// 採「原子寫入」策略：先寫入 .tmp 檔，再以 rename() 取代原檔，
// 寫入中斷時原檔不會損壞。
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// JSONStore 將快照保存為單一 JSON 檔案。
type JSONStore struct {
	path string
}

// NewJSONStore 建立指向 path 的 JSON 檔案儲存；檔案不存在時不會建立。
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path 回傳資料檔路徑。
func (s *JSONStore) Path() string { return s.path }

// Load 讀取並解析 JSON 快照。
// 檔案不存在 → ErrNotFound；JSON 無法解析 → ErrFormat；其他 I/O 錯誤原樣回傳。
func (s *JSONStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := ctx.Err(); err != nil {
		return snap, err
	}
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, ErrNotFound
	}
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrFormat, s.path, err)
	}
	return snap, nil
}

// Save 將 Snapshot 序列化為 JSON 檔案，並採原子方式寫入。
// 流程：
//  1. 設定 Meta.Storage 與當前時間戳。
//  2. 寫入 path+".tmp" 暫存檔。
//  3. 寫入完成後使用 os.Rename() 取代正式檔案。
func (s *JSONStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Version = SchemaVersion
	snap.Meta.Timestamp = time.Now()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	// 使用縮排格式輸出，方便人工檢視
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// 原子替換
	return os.Rename(tmp, s.path)
}

// Close 無需釋放資源。
func (s *JSONStore) Close() error { return nil }
