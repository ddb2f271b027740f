// internal/server/response.go
//
// 本檔負責統一 HTTP 回應格式與錯誤碼對應。
//   - 成功回應使用 JSON（Content-Type: application/json）。
//   - 錯誤回應統一由 writeErr 輸出 {"error": "..."}。
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"mcgymmy/internal/command"
	"mcgymmy/internal/food"
	"mcgymmy/internal/model"
)

// foodView 為單筆 Food 的回應格式，Index 為 1-based 顯示索引。
type foodView struct {
	Index int `json:"index"`
	food.Food
	Calories int `json:"calories"`
}

// stateResponse 為每次操作後回傳的可見狀態。
type stateResponse struct {
	Message string      `json:"message,omitempty"`
	Filter  string      `json:"filter"`
	Foods   []foodView  `json:"foods"`
	Totals  food.Macros `json:"totals"`
}

func viewOf(foods []food.Food) []foodView {
	out := make([]foodView, len(foods))
	for i, f := range foods {
		out[i] = foodView{Index: i + 1, Food: f, Calories: f.Calories()}
	}
	return out
}

// writeJSON 先完整編碼再寫出標頭；編碼失敗時改回 500，不送出半截的 body。
func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

// writeErr 統一輸出錯誤回應。
func writeErr(w http.ResponseWriter, err error, code int) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// statusOf 將領域錯誤對應到 HTTP 狀態碼。
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateFood), errors.Is(err, model.ErrEmptyHistory):
		return http.StatusConflict
	case errors.Is(err, food.ErrInvalidFood), errors.Is(err, command.ErrInvalidCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
