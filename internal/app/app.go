// internal/app/app.go

// Package app 組裝整個程式：logger、儲存後端與 Model。
// 每個行程建立一次 App，結束時呼叫 Close 保存並釋放資源。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mcgymmy/internal/config"
	"mcgymmy/internal/food"
	"mcgymmy/internal/model"
	"mcgymmy/internal/storage"
)

// App 擁有行程內唯一的 Model 與 Store。
type App struct {
	Config config.Config
	Logger *slog.Logger
	Model  *model.Model
	store  storage.Store
}

// New 依設定建立 App：開啟儲存後端並載入上次的快照。
// 尚無快照時以空清單啟動；格式或 I/O 錯誤則直接回傳，不以空清單覆蓋既有資料。
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	logger := cfg.Log.NewLogger(logOut)

	st, err := storage.Open(storage.Options{
		Backend:   cfg.Storage.Backend,
		DataFile:  cfg.Storage.DataFile,
		BadgerDir: cfg.Storage.BadgerDir,
		Logger:    logger.With("component", "badger"),
	})
	if err != nil {
		return nil, err
	}
	a, err := NewWithStore(ctx, cfg, logger, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStore 與 New 相同，但使用呼叫端提供的 Store（測試用）。
func NewWithStore(ctx context.Context, cfg config.Config, logger *slog.Logger, st storage.Store) (*App, error) {
	initial, err := load(ctx, st)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModel(model.Env{
		Logger:  logger,
		Prefs:   model.Prefs{DataFile: cfg.Storage.DataFile},
		History: cfg.History,
	}, initial)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrFormat, err)
	}
	attrs := []any{"backend", cfg.Storage.Backend, "foods", len(initial)}
	if js, ok := st.(*storage.JSONStore); ok {
		attrs = append(attrs, "path", js.Path())
	}
	logger.Info("food list loaded", attrs...)
	return &App{Config: cfg, Logger: logger, Model: m, store: st}, nil
}

func load(ctx context.Context, st storage.Store) ([]food.Food, error) {
	snap, err := st.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.ToFoods()
}

// Save 將目前清單整體寫入 Store。
func (a *App) Save(ctx context.Context) error {
	if err := a.store.Save(ctx, a.Model.Snapshot()); err != nil {
		a.Logger.Error("save food list", "err", err)
		return err
	}
	return nil
}

// Close 保存後釋放 Store。
func (a *App) Close(ctx context.Context) error {
	saveErr := a.Save(ctx)
	closeErr := a.store.Close()
	return errors.Join(saveErr, closeErr)
}
