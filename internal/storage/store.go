// internal/storage/store.go

package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Store 為整體快照的載入／保存服務。
// Load 與 Save 皆視為原子操作；沒有增量 diff 協定。
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}

// Backend 名稱。
const (
	BackendJSON   = "json"
	BackendBadger = "badger"
)

// Options 選擇並設定儲存後端。
type Options struct {
	Backend   string
	DataFile  string
	BadgerDir string
	Logger    *slog.Logger
}

// Open 依 Backend 建立對應的 Store。
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendJSON:
		return NewJSONStore(opts.DataFile), nil
	case BackendBadger:
		return OpenBadger(BadgerConfig{Dir: opts.BadgerDir, SyncWrites: true, Logger: opts.Logger})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
