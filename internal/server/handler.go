// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 HTTP 介面，作為 model 的傳輸層。每個 handler 只負責：
//  1. 解析與驗證 HTTP 請求，轉成 command.Command
//  2. 在互斥鎖內執行指令（model 本身不加鎖）
//  3. 回傳目前可見的清單
//  4. 指令改變狀態後呼叫 s.persist() 寫入快照
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"mcgymmy/internal/command"
	"mcgymmy/internal/food"
	"mcgymmy/internal/model"
)

// Server 為 HTTP 層核心結構。
// - Model：注入的記憶體模型；所有存取都經過 mu 序列化。
// - persist：持久化鉤子，可為 nil。
type Server struct {
	mu      sync.Mutex
	Model   *model.Model
	persist func() error
	log     *slog.Logger
}

// NewServer 建立新的 HTTP 伺服器。persist 可為 nil；若提供則會於每次成功變更後觸發。
func NewServer(m *model.Model, persist func() error, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Model: m, persist: persist, log: logger.With("component", "server")}
}

// foodRequest 為新增／完整描述一筆 Food 的請求格式。
type foodRequest struct {
	Name    string   `json:"name"`
	Protein int      `json:"protein"`
	Fat     int      `json:"fat"`
	Carbs   int      `json:"carbs"`
	Tags    []string `json:"tags"`
	Date    string   `json:"date"`
}

// editRequest 只帶要修改的欄位。
type editRequest struct {
	Name    *string   `json:"name"`
	Protein *int      `json:"protein"`
	Fat     *int      `json:"fat"`
	Carbs   *int      `json:"carbs"`
	Tags    *[]string `json:"tags"`
	Date    *string   `json:"date"`
}

type filterRequest struct {
	Keywords []string `json:"keywords"`
	Tag      string   `json:"tag"`
	Date     string   `json:"date"`
}

// exec 在鎖內執行指令，成功且有變更時觸發持久化，最後回傳目前狀態。
func (s *Server) exec(w http.ResponseWriter, r *http.Request, name string, cmd command.Command, okCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := cmd.Execute(s.Model)
	observe(name, err, s.Model)
	if err != nil {
		s.log.Debug("command rejected", "command", name, "err", err, "request_id", requestIDFrom(r))
		writeErr(w, err, statusOf(err))
		return
	}
	if res.Mutated && s.persist != nil {
		if err := s.persist(); err != nil {
			persistErrors.Inc()
			s.log.Error("persist failed", "command", name, "err", err, "request_id", requestIDFrom(r))
			writeErr(w, fmt.Errorf("%s, but saving failed: %w", res.Message, err), http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, okCode, s.state(res.Message))
}

// state 必須在持有 mu 時呼叫。
func (s *Server) state(msg string) stateResponse {
	return stateResponse{
		Message: msg,
		Filter:  s.Model.Predicate().Key(),
		Foods:   viewOf(s.Model.FilteredView()),
		Totals:  s.Model.FilteredTotals(),
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return false
	}
	return true
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeErr(w, fmt.Errorf("index must be a positive integer: %w", err), http.StatusBadRequest)
		return 0, false
	}
	return idx, true
}

// listFoods 處理 GET /foods：目前篩選後的清單。
func (s *Server) listFoods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.state(""))
}

// allFoods 處理 GET /foods/all：忽略篩選條件。
func (s *Server) allFoods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.Model.Foods()
	writeJSON(w, http.StatusOK, stateResponse{
		Filter: food.ShowAll().Key(),
		Foods:  viewOf(all),
		Totals: s.Model.Totals(),
	})
}

// addFood 處理 POST /foods。
func (s *Server) addFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if !decode(w, r, &req) {
		return
	}
	f, err := food.New(req.Name, req.Protein, req.Fat, req.Carbs, req.Tags, req.Date)
	if err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	s.exec(w, r, "add", command.Add{Food: f}, http.StatusCreated)
}

// editFood 處理 PUT /foods/{index}。
func (s *Server) editFood(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req editRequest
	if !decode(w, r, &req) {
		return
	}
	s.exec(w, r, "edit", command.Edit{
		Index: idx, Name: req.Name, Protein: req.Protein, Fat: req.Fat,
		Carbs: req.Carbs, Tags: req.Tags, Date: req.Date,
	}, http.StatusOK)
}

// deleteFood 處理 DELETE /foods/{index}。
func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}
	s.exec(w, r, "delete", command.Delete{Index: idx}, http.StatusOK)
}

// setFilter 處理 PUT /filter。
func (s *Server) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decode(w, r, &req) {
		return
	}
	s.exec(w, r, "find", command.Find{Keywords: req.Keywords, Tag: req.Tag, Date: req.Date}, http.StatusOK)
}

// resetFilter 處理 DELETE /filter。
func (s *Server) resetFilter(w http.ResponseWriter, r *http.Request) {
	s.exec(w, r, "list", command.List{}, http.StatusOK)
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	s.exec(w, r, "clear", command.Clear{}, http.StatusOK)
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	s.exec(w, r, "undo", command.Undo{}, http.StatusOK)
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	s.exec(w, r, "redo", command.Redo{}, http.StatusOK)
}

// macros 處理 GET /macros：可見清單與整份清單的營養素加總。
func (s *Server) macros(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered, all := s.Model.FilteredTotals(), s.Model.Totals()
	writeJSON(w, http.StatusOK, map[string]any{
		"filtered":          filtered,
		"filtered_calories": filtered.Calories(),
		"all":               all,
		"all_calories":      all.Calories(),
	})
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
