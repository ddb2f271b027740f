// internal/storage/badgerstore.go
//
// BadgerDB 後端：以嵌入式 KV 保存同一份 JSON 快照（單一 key）。
// 快照仍是整體讀寫，沒有增量協定；Badger 只負責耐久性與崩潰回復。
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var snapshotKey = []byte("mcgymmy/snapshot")

// BadgerConfig 為 Badger 後端設定。
type BadgerConfig struct {
	// Dir 為資料目錄；InMemory 為 true 時忽略。
	Dir string

	// InMemory 不落地，僅供測試。
	InMemory bool

	// SyncWrites 每次寫入都 fsync。
	SyncWrites bool

	// Logger 為 nil 時關閉 Badger 內部日誌。
	Logger *slog.Logger
}

// badgerLogger 將 slog.Logger 轉接為 badger.Logger。
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerStore 為 Store 的 BadgerDB 實作。
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger 開啟（必要時建立）Badger 資料庫。呼叫端負責 Close。
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, errors.New("badger: dir is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Load 讀取快照；key 不存在回傳 ErrNotFound。
func (s *BadgerStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := ctx.Err(); err != nil {
		return snap, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &snap); err != nil {
				return fmt.Errorf("%w: %v", ErrFormat, err)
			}
			return nil
		})
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Save 以單一交易覆寫快照。
func (s *BadgerStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap.Meta.Storage = "badger_snapshot"
	snap.Meta.Version = SchemaVersion
	snap.Meta.Timestamp = time.Now()
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
}

// Close 關閉資料庫。
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
