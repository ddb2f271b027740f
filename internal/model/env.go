// internal/model/env.go

package model

import (
	"io"
	"log/slog"
)

// Prefs 為 Model 可讀取的使用者偏好（目前只有資料檔路徑）。
type Prefs struct {
	DataFile string
}

// Env 為建立 Model 時注入的執行環境，取代全域 logger 與設定單例。
// 每個行程建立一次，由 app 層負責生命週期。
type Env struct {
	Logger  *slog.Logger
	Prefs   Prefs
	History Policy
}

func (e Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
