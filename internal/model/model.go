// internal/model/model.go

// Package model 為 Food 清單的記憶體模型：唯一擁有即時狀態，也是所有變更的唯一入口。
//
// 每個變更操作的流程：
//  1. 先檢查前置條件（索引、重複、欄位驗證），失敗時不留下任何痕跡。
//  2. 將目前（清單、篩選條件、營養素加總）存入 History。
//  3. 套用變更。
//
// Model 為單執行緒設計，不加鎖；需要並行存取時由呼叫端（例如 server）序列化。
package model

import (
	"fmt"
	"log/slog"

	"mcgymmy/internal/food"
	"mcgymmy/internal/storage"
)

// Model 管理 FoodList、目前的篩選條件與 History。
type Model struct {
	env     Env
	log     *slog.Logger
	foods   *FoodList
	pred    food.Predicate
	totals  food.Macros
	history *History
}

// NewModel 以初始清單建立 Model；清單含重複或不合法的 Food 時回傳錯誤。
func NewModel(env Env, initial []food.Food) (*Model, error) {
	for _, f := range initial {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	foods, err := NewFoodList(initial)
	if err != nil {
		return nil, err
	}
	m := &Model{
		env:     env,
		log:     env.logger().With("component", "model"),
		foods:   foods,
		pred:    food.ShowAll(),
		history: NewHistory(env.History),
	}
	m.refreshTotals()
	m.log.Debug("initialized food list", "foods", foods.Len(), "history_limit", env.History.Limit,
		"skip_redundant", env.History.SkipRedundant)
	return m, nil
}

// Prefs 回傳建立時注入的偏好設定。
func (m *Model) Prefs() Prefs { return m.env.Prefs }

// current 不拷貝；History 推入時才深拷貝。
func (m *Model) current() Entry {
	return Entry{foods: m.foods, pred: m.pred, totals: m.totals}
}

func (m *Model) saveCurrentStateToHistory() {
	if !m.history.Save(m.current()) {
		m.log.Debug("skipped redundant snapshot")
	}
}

func (m *Model) restore(e Entry) {
	m.foods = e.foods.Clone()
	m.pred = e.pred
	m.totals = e.totals
}

func (m *Model) refreshTotals() {
	m.totals = food.Total(m.foods.items)
}

func (m *Model) showAllFoods() {
	m.pred = food.ShowAll()
}

// resolve 將篩選後清單的索引轉換為底層清單索引。
func (m *Model) resolve(i int) (int, error) {
	if i >= 0 {
		n := 0
		for j, f := range m.foods.items {
			if !m.pred.Match(f) {
				continue
			}
			if n == i {
				return j, nil
			}
			n++
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
}

// HasFood 判斷清單中是否已有完全相同的 Food。
func (m *Model) HasFood(f food.Food) bool {
	return m.foods.Contains(f)
}

// AddFood 附加 f 到清單尾端，並將篩選條件重設為顯示全部。
func (m *Model) AddFood(f food.Food) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if m.foods.Contains(f) {
		return ErrDuplicateFood
	}
	m.log.Debug("add food", "food", f.String())
	m.saveCurrentStateToHistory()
	_ = m.foods.Add(f)
	m.refreshTotals()
	m.showAllFoods()
	return nil
}

// DeleteFood 刪除篩選後清單第 i 筆（0-based），回傳被刪除的 Food。
// 目前的篩選條件保留不變。
func (m *Model) DeleteFood(i int) (food.Food, error) {
	j, err := m.resolve(i)
	if err != nil {
		return food.Food{}, err
	}
	m.log.Debug("delete food", "index", i)
	m.saveCurrentStateToHistory()
	removed, _ := m.foods.Remove(j)
	m.refreshTotals()
	return removed, nil
}

// SetFood 以 f 取代篩選後清單第 i 筆，並重設篩選條件。
func (m *Model) SetFood(i int, f food.Food) error {
	if err := f.Validate(); err != nil {
		return err
	}
	j, err := m.resolve(i)
	if err != nil {
		return err
	}
	if k := m.foods.indexOf(f); k >= 0 && k != j {
		return ErrDuplicateFood
	}
	m.log.Debug("set food", "index", i, "food", f.String())
	m.saveCurrentStateToHistory()
	_ = m.foods.Set(j, f)
	m.refreshTotals()
	m.showAllFoods()
	return nil
}

// SetFoods 整體取代清單內容，並重設篩選條件。
func (m *Model) SetFoods(foods []food.Food) error {
	for _, f := range foods {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	next, err := NewFoodList(foods)
	if err != nil {
		return err
	}
	m.log.Debug("replace food list", "foods", next.Len())
	m.saveCurrentStateToHistory()
	m.foods = next
	m.refreshTotals()
	m.showAllFoods()
	return nil
}

// UpdateFilter 取代目前的篩選條件，不改變清單；仍會記錄歷史，以便復原上一個條件。
// p 為 nil 時視為顯示全部。
func (m *Model) UpdateFilter(p food.Predicate) {
	if p == nil {
		p = food.ShowAll()
	}
	m.log.Debug("update filter", "predicate", p.Key())
	m.saveCurrentStateToHistory()
	m.pred = p
}

// ClearFiltered 從底層清單移除所有符合目前篩選條件的 Food，回傳移除筆數。
// 走訪的是穩定拷貝，避免邊走訪邊修改。
func (m *Model) ClearFiltered() int {
	m.saveCurrentStateToHistory()
	items := m.foods.Items()
	kept := make([]food.Food, 0, len(items))
	for _, f := range items {
		if !m.pred.Match(f) {
			kept = append(kept, f)
		}
	}
	_ = m.foods.Reset(kept)
	m.refreshTotals()
	removed := len(items) - len(kept)
	m.log.Debug("clear filtered foods", "predicate", m.pred.Key(), "removed", removed)
	return removed
}

// CanUndo 判斷是否有可復原的狀態。
func (m *Model) CanUndo() bool { return m.history.CanUndo() }

// CanRedo 判斷是否有可重做的狀態。
func (m *Model) CanRedo() bool { return m.history.CanRedo() }

// Undo 還原上一個狀態（清單與篩選條件）。沒有歷史時回傳 ErrEmptyHistory，狀態不變。
func (m *Model) Undo() error {
	e, err := m.history.Undo(m.current())
	if err != nil {
		return err
	}
	m.restore(e)
	m.log.Debug("undo", "undo_depth", m.history.UndoDepth(), "redo_depth", m.history.RedoDepth())
	return nil
}

// Redo 重做最近一次被復原的狀態。
func (m *Model) Redo() error {
	e, err := m.history.Redo(m.current())
	if err != nil {
		return err
	}
	m.restore(e)
	m.log.Debug("redo", "undo_depth", m.history.UndoDepth(), "redo_depth", m.history.RedoDepth())
	return nil
}

// UndoDepth 回傳 undo 堆疊深度。
func (m *Model) UndoDepth() int { return m.history.UndoDepth() }

// RedoDepth 回傳 redo 堆疊深度。
func (m *Model) RedoDepth() int { return m.history.RedoDepth() }

// FilteredView 依目前清單與篩選條件重新計算可見清單（保留順序）。
// 每次變更後呼叫端重新取得即可，不需要訂閱。
func (m *Model) FilteredView() []food.Food {
	return food.Filter(m.foods.Items(), m.pred)
}

// Foods 回傳完整清單的拷貝。
func (m *Model) Foods() []food.Food { return m.foods.Items() }

// Len 回傳完整清單筆數，不受篩選條件影響。
func (m *Model) Len() int { return m.foods.Len() }

// Predicate 回傳目前的篩選條件。
func (m *Model) Predicate() food.Predicate { return m.pred }

// Totals 為整份清單的營養素加總。
func (m *Model) Totals() food.Macros { return m.totals }

// FilteredTotals 為可見清單的營養素加總。
func (m *Model) FilteredTotals() food.Macros { return food.Total(m.FilteredView()) }

// Snapshot 匯出可持久化的快照。
func (m *Model) Snapshot() storage.Snapshot {
	return storage.FromFoods(m.foods.items)
}
