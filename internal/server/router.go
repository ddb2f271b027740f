// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層（request id、存取日誌）。
// handler.go 定義「如何處理請求」，router.go 定義「請求如何被導向」。
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ctxKey struct{}

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

// requestID 為每個請求指派 uuid（沿用呼叫端提供的 X-Request-ID），並記錄存取日誌。
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path,
			"duration", time.Since(start), "request_id", id)
	})
}

// Router 建立並回傳整個 HTTP 處理鏈。
func (s *Server) Router() http.Handler {
	v1 := chi.NewRouter()

	v1.Get("/health", s.health)

	// Food 清單：
	//   - GET    /foods          → 篩選後清單
	//   - GET    /foods/all      → 完整清單
	//   - POST   /foods          → 新增
	//   - PUT    /foods/{index}  → 修改（1-based）
	//   - DELETE /foods/{index}  → 刪除（1-based）
	v1.Route("/foods", func(r chi.Router) {
		r.Get("/", s.listFoods)
		r.Post("/", s.addFood)
		r.Get("/all", s.allFoods)
		r.Put("/{index}", s.editFood)
		r.Delete("/{index}", s.deleteFood)
	})

	// 篩選條件
	v1.Put("/filter", s.setFilter)
	v1.Delete("/filter", s.resetFilter)

	v1.Post("/clear", s.clear)
	v1.Post("/undo", s.undo)
	v1.Post("/redo", s.redo)
	v1.Get("/macros", s.macros)

	root := chi.NewRouter()
	root.Use(s.requestID)
	root.Handle("/metrics", promhttp.Handler())
	root.Mount("/api/v1", v1)

	// 同時保留根路徑，方便本地開發。
	root.Mount("/", v1)

	return root
}
