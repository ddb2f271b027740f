// internal/command/command.go

// Package command 為指令分派層：每個使用者動作對應一個 Command，
// 呼叫 model 的操作並回傳人類可讀的狀態訊息。
// 指令解析（CLI / HTTP）由更上層負責；本層只接收已解析好的參數。
//
// 使用者看到的索引為 1-based，轉換成 model 的 0-based 索引在此層完成。
package command

import (
	"errors"
	"fmt"
	"strings"

	"mcgymmy/internal/food"
	"mcgymmy/internal/model"
)

// Result 為一次指令執行的結果。
// Mutated 告訴呼叫端是否需要持久化。
type Result struct {
	Message string
	Mutated bool
}

// Command 為單一可執行的使用者動作。
type Command interface {
	Execute(m *model.Model) (Result, error)
}

// 指令訊息。
const (
	MsgAddSuccess    = "New food added: %s"
	MsgDeleteSuccess = "Deleted food: %s"
	MsgEditSuccess   = "Edited food: %s"
	MsgNotEdited     = "At least one field to edit must be provided."
	MsgListed        = "Listed all food."
	MsgFound         = "%d food(s) listed!"
	MsgNoCriteria    = "At least one search criterion must be provided."
	MsgCleared       = "Cleared %d food(s)."
	MsgUndoSuccess   = "Successfully undid the last command."
	MsgNotUndoable   = "Cannot undo anymore."
	MsgRedoSuccess   = "Successfully redid the last command."
	MsgNotRedoable   = "Cannot redo anymore."
	MsgMacros        = "Protein: %dg, Fat: %dg, Carbs: %dg, Calories: %d kcal (%d food(s))"
)

// ErrInvalidCommand 代表參數不足或不合法（例如 edit 未指定任何欄位）。
var ErrInvalidCommand = errors.New("invalid command")

// toZeroBased 將使用者的 1-based 索引轉為 0-based。
func toZeroBased(index int) (int, error) {
	if index < 1 {
		return 0, fmt.Errorf("%w: %d", model.ErrIndexOutOfRange, index)
	}
	return index - 1, nil
}

// Add 新增一筆 Food。
type Add struct {
	Food food.Food
}

func (c Add) Execute(m *model.Model) (Result, error) {
	if err := m.AddFood(c.Food); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf(MsgAddSuccess, c.Food), Mutated: true}, nil
}

// Delete 刪除目前顯示清單中的第 Index 筆（1-based）。
type Delete struct {
	Index int
}

func (c Delete) Execute(m *model.Model) (Result, error) {
	i, err := toZeroBased(c.Index)
	if err != nil {
		return Result{}, err
	}
	removed, err := m.DeleteFood(i)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf(MsgDeleteSuccess, removed), Mutated: true}, nil
}

// Edit 修改顯示清單中第 Index 筆的部分欄位；nil 欄位保留原值。
type Edit struct {
	Index   int
	Name    *string
	Protein *int
	Fat     *int
	Carbs   *int
	Tags    *[]string
	Date    *string
}

func (c Edit) empty() bool {
	return c.Name == nil && c.Protein == nil && c.Fat == nil && c.Carbs == nil && c.Tags == nil && c.Date == nil
}

func (c Edit) Execute(m *model.Model) (Result, error) {
	if c.empty() {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidCommand, MsgNotEdited)
	}
	i, err := toZeroBased(c.Index)
	if err != nil {
		return Result{}, err
	}
	view := m.FilteredView()
	if i >= len(view) {
		return Result{}, fmt.Errorf("%w: %d", model.ErrIndexOutOfRange, c.Index)
	}
	old := view[i]
	name, protein, fat, carbs, tags, date := old.Name, old.Protein, old.Fat, old.Carbs, old.Tags, old.Date
	if c.Name != nil {
		name = *c.Name
	}
	if c.Protein != nil {
		protein = *c.Protein
	}
	if c.Fat != nil {
		fat = *c.Fat
	}
	if c.Carbs != nil {
		carbs = *c.Carbs
	}
	if c.Tags != nil {
		tags = *c.Tags
	}
	if c.Date != nil {
		date = *c.Date
	}
	edited, err := food.New(name, protein, fat, carbs, tags, date)
	if err != nil {
		return Result{}, err
	}
	if err := m.SetFood(i, edited); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf(MsgEditSuccess, edited), Mutated: true}, nil
}

// Find 以名稱關鍵字、tag、日期篩選；多個條件取交集。
type Find struct {
	Keywords []string
	Tag      string
	Date     string
}

func (c Find) Predicate() (food.Predicate, error) {
	var preds []food.Predicate
	if len(c.Keywords) > 0 {
		preds = append(preds, food.NameContains(c.Keywords...))
	}
	if tag := strings.TrimSpace(c.Tag); tag != "" {
		preds = append(preds, food.HasTag(tag))
	}
	if date := strings.TrimSpace(c.Date); date != "" {
		preds = append(preds, food.OnDate(date))
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, MsgNoCriteria)
	}
	return food.AllOf(preds...), nil
}

func (c Find) Execute(m *model.Model) (Result, error) {
	p, err := c.Predicate()
	if err != nil {
		return Result{}, err
	}
	m.UpdateFilter(p)
	return Result{Message: fmt.Sprintf(MsgFound, len(m.FilteredView()))}, nil
}

// List 顯示全部。會記錄歷史（undo 可回到上一個篩選條件）。
type List struct{}

func (List) Execute(m *model.Model) (Result, error) {
	m.UpdateFilter(food.ShowAll())
	return Result{Message: MsgListed}, nil
}

// Clear 刪除目前篩選條件下的所有 Food。
type Clear struct{}

func (Clear) Execute(m *model.Model) (Result, error) {
	n := m.ClearFiltered()
	return Result{Message: fmt.Sprintf(MsgCleared, n), Mutated: true}, nil
}

// Undo 復原上一個變更；沒有可復原的狀態時回報訊息而非錯誤。
type Undo struct{}

func (Undo) Execute(m *model.Model) (Result, error) {
	if !m.CanUndo() {
		return Result{Message: MsgNotUndoable}, nil
	}
	if err := m.Undo(); err != nil {
		return Result{}, err
	}
	return Result{Message: MsgUndoSuccess, Mutated: true}, nil
}

// Redo 重做最近一次被復原的變更。
type Redo struct{}

func (Redo) Execute(m *model.Model) (Result, error) {
	if !m.CanRedo() {
		return Result{Message: MsgNotRedoable}, nil
	}
	if err := m.Redo(); err != nil {
		return Result{}, err
	}
	return Result{Message: MsgRedoSuccess, Mutated: true}, nil
}

// Macros 回報目前顯示清單的營養素加總。
type Macros struct{}

func (Macros) Execute(m *model.Model) (Result, error) {
	t := m.FilteredTotals()
	return Result{Message: fmt.Sprintf(MsgMacros, t.Protein, t.Fat, t.Carbs, t.Calories(), len(m.FilteredView()))}, nil
}
