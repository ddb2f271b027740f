// internal/model/history.go
//
// History 以兩個堆疊保存完整狀態快照：
//   - undo：過去的狀態，最新的在頂端。
//   - redo：被復原的狀態，最近一次復原的在頂端。
//
// 任何新的 Save 都會清空 redo（時間線一旦分岔，舊的 redo 分支即失效）。
// History 從不接觸 Model 的即時狀態；所有 Entry 在推入前深拷貝，推入後不可變。
package model

import "mcgymmy/internal/food"

// Entry 為一次完整狀態快照：Food 清單、篩選條件、營養素加總。
type Entry struct {
	foods  *FoodList
	pred   food.Predicate
	totals food.Macros
}

// NewEntry 深拷貝 foods 建立快照。
func NewEntry(foods *FoodList, pred food.Predicate, totals food.Macros) Entry {
	if pred == nil {
		pred = food.ShowAll()
	}
	return Entry{foods: foods.Clone(), pred: pred, totals: totals}
}

// Foods 回傳快照內容的拷貝。
func (e Entry) Foods() []food.Food { return e.foods.Items() }

// Predicate 回傳快照當下的篩選條件。
func (e Entry) Predicate() food.Predicate { return e.pred }

// Totals 回傳快照當下的營養素加總。
func (e Entry) Totals() food.Macros { return e.totals }

func (e Entry) sameState(o Entry) bool {
	return e.foods.Equal(o.foods) && food.SamePredicate(e.pred, o.pred)
}

// Policy 控制 History 的成長方式。
type Policy struct {
	// Limit 為 undo 堆疊上限；超過時丟棄最舊的快照。0 表示不限。
	Limit int `yaml:"limit" validate:"gte=0"`

	// SkipRedundant 為 true 時，與 undo 頂端完全相同的快照不再推入。
	SkipRedundant bool `yaml:"skip_redundant"`
}

// History 為 undo/redo 狀態機。非執行緒安全，由 Model 獨占使用。
type History struct {
	policy Policy
	undo   []Entry
	redo   []Entry
}

// NewHistory 建立空的 History。
func NewHistory(p Policy) *History {
	return &History{policy: p}
}

// Save 推入 e 的深拷貝，並無條件清空 redo。
// 回傳是否真的推入（SkipRedundant 可能略過）。
func (h *History) Save(e Entry) bool {
	h.redo = nil
	if h.policy.SkipRedundant && len(h.undo) > 0 && h.undo[len(h.undo)-1].sameState(e) {
		return false
	}
	h.pushUndo(NewEntry(e.foods, e.pred, e.totals))
	return true
}

func (h *History) pushUndo(e Entry) {
	h.undo = append(h.undo, e)
	if h.policy.Limit > 0 && len(h.undo) > h.policy.Limit {
		h.undo = h.undo[len(h.undo)-h.policy.Limit:]
	}
}

// CanUndo 判斷 undo 堆疊是否非空。
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo 判斷 redo 堆疊是否非空。
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo 彈出 undo 頂端（要還原的狀態）並把 current 的拷貝推入 redo。
// undo 為空時回傳 ErrEmptyHistory，兩個堆疊皆不變。
func (h *History) Undo(current Entry) (Entry, error) {
	if !h.CanUndo() {
		return Entry{}, ErrEmptyHistory
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, NewEntry(current.foods, current.pred, current.totals))
	return top, nil
}

// Redo 與 Undo 對稱。
func (h *History) Redo(current Entry) (Entry, error) {
	if !h.CanRedo() {
		return Entry{}, ErrEmptyHistory
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.pushUndo(NewEntry(current.foods, current.pred, current.totals))
	return top, nil
}

// UndoDepth 回傳 undo 堆疊深度。
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth 回傳 redo 堆疊深度。
func (h *History) RedoDepth() int { return len(h.redo) }
