// internal/server/metrics.go

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mcgymmy/internal/model"
)

var (
	// commandTotal 依指令名稱與結果計數
	commandTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcgymmy_command_total",
		Help: "Total commands executed by command and result",
	}, []string{"command", "result"})

	// foodsGauge 為完整清單筆數（不受篩選影響）
	foodsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcgymmy_foods",
		Help: "Number of foods in the list",
	})

	// historyDepth 為 undo／redo 堆疊深度
	historyDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mcgymmy_history_depth",
		Help: "Number of entries on the undo and redo stacks",
	}, []string{"stack"})

	// persistErrors 為變更後保存失敗的次數
	persistErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcgymmy_persist_errors_total",
		Help: "Total failed persist hook calls",
	})
)

func observe(name string, err error, m *model.Model) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	commandTotal.WithLabelValues(name, result).Inc()
	foodsGauge.Set(float64(m.Len()))
	historyDepth.WithLabelValues("undo").Set(float64(m.UndoDepth()))
	historyDepth.WithLabelValues("redo").Set(float64(m.RedoDepth()))
}
