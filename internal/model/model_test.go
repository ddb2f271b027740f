// internal/model/model_test.go
//
// Model 的單元測試：CRUD、篩選、undo/redo 狀態機，以及失敗操作不改變任何狀態。
// 全部為 in-memory 執行。

package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcgymmy/internal/food"
)

// mk 建立只有名稱不同的 Food，方便比對。
func mk(t *testing.T, name string) food.Food {
	t.Helper()
	f, err := food.New(name, 10, 5, 20, nil, "2020-10-01")
	require.NoError(t, err)
	return f
}

func newModel(t *testing.T, initial ...food.Food) *Model {
	t.Helper()
	m, err := NewModel(Env{}, initial)
	require.NoError(t, err)
	return m
}

// state 用來比較完整的可觀察狀態。
type state struct {
	foods []food.Food
	pred  string
}

func stateOf(m *Model) state {
	return state{foods: m.Foods(), pred: m.Predicate().Key()}
}

func TestNewModelRejectsDuplicates(t *testing.T) {
	a := mk(t, "A")
	_, err := NewModel(Env{}, []food.Food{a, a})
	require.ErrorIs(t, err, ErrDuplicateFood)

	_, err = NewModel(Env{}, []food.Food{{Name: "", Date: "2020-10-01"}})
	require.ErrorIs(t, err, food.ErrInvalidFood)
}

func TestAddFood(t *testing.T) {
	m := newModel(t)
	a := mk(t, "A")
	require.NoError(t, m.AddFood(a))
	assert.True(t, m.HasFood(a))
	assert.Equal(t, a.Macros(), m.Totals())

	m.UpdateFilter(food.ShowNone())
	b := mk(t, "B")
	require.NoError(t, m.AddFood(b))
	assert.Equal(t, food.ShowAll().Key(), m.Predicate().Key(), "add resets the filter")
	assert.Equal(t, []food.Food{a, b}, m.FilteredView())
}

// TestFailedOperationsLeaveStateUntouched 重複、越界、欄位錯誤都不應改變清單、篩選或歷史。
func TestFailedOperationsLeaveStateUntouched(t *testing.T) {
	a, b := mk(t, "A"), mk(t, "B")
	m := newModel(t, a, b)
	m.UpdateFilter(food.NameContains("a"))
	before := stateOf(m)
	depth := m.UndoDepth()

	require.ErrorIs(t, m.AddFood(a), ErrDuplicateFood)
	_, err := m.DeleteFood(1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.DeleteFood(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.ErrorIs(t, m.SetFood(5, mk(t, "C")), ErrIndexOutOfRange)
	require.ErrorIs(t, m.SetFood(0, b), ErrDuplicateFood)
	require.ErrorIs(t, m.AddFood(food.Food{Name: "X", Protein: -1, Date: "2020-10-01"}), food.ErrInvalidFood)
	require.ErrorIs(t, m.SetFoods([]food.Food{a, a}), ErrDuplicateFood)

	assert.Equal(t, before, stateOf(m))
	assert.Equal(t, depth, m.UndoDepth())
}

func TestDeleteUsesFilteredIndex(t *testing.T) {
	a, b, c := mk(t, "A"), mk(t, "B"), mk(t, "C")
	m := newModel(t, a, b, c)
	m.UpdateFilter(food.NameContains("c"))

	removed, err := m.DeleteFood(0)
	require.NoError(t, err)
	assert.True(t, removed.Equal(c))
	assert.Equal(t, []food.Food{a, b}, m.Foods())
	assert.True(t, food.SamePredicate(food.NameContains("c"), m.Predicate()), "delete keeps the active filter")
	assert.Empty(t, m.FilteredView())
}

func TestSetFood(t *testing.T) {
	a, b := mk(t, "A"), mk(t, "B")
	m := newModel(t, a, b)
	m.UpdateFilter(food.NameContains("b"))

	b2 := b.Clone()
	b2.Protein = 99
	require.NoError(t, m.SetFood(0, b2))
	assert.Equal(t, []food.Food{a, b2}, m.Foods())
	assert.Equal(t, food.ShowAll().Key(), m.Predicate().Key())

	// 以相同值取代自己是允許的
	require.NoError(t, m.SetFood(1, b2))
}

func TestSetFoodsReplacesAll(t *testing.T) {
	m := newModel(t, mk(t, "A"))
	c := mk(t, "C")
	require.NoError(t, m.SetFoods([]food.Food{c}))
	assert.Equal(t, []food.Food{c}, m.Foods())
	require.NoError(t, m.Undo())
	assert.Equal(t, []food.Food{mk(t, "A")}, m.Foods())
}

func TestClearFiltered(t *testing.T) {
	a, b, c := mk(t, "Apple Pie"), mk(t, "Banana"), mk(t, "Apple Juice")

	m := newModel(t, a, b, c)
	m.UpdateFilter(food.ShowNone())
	assert.Equal(t, 0, m.ClearFiltered())
	assert.Equal(t, []food.Food{a, b, c}, m.Foods())

	m.UpdateFilter(food.NameContains("apple"))
	assert.Equal(t, 2, m.ClearFiltered())
	assert.Equal(t, []food.Food{b}, m.Foods())
	assert.Empty(t, m.FilteredView())
	assert.Equal(t, b.Macros(), m.Totals())

	m.UpdateFilter(food.ShowAll())
	assert.Equal(t, 1, m.ClearFiltered())
	assert.Zero(t, m.Len())

	// clear 與其他變更一樣會清空 redo
	require.NoError(t, m.Undo())
	require.True(t, m.CanRedo())
	m.ClearFiltered()
	assert.False(t, m.CanRedo())
}

func TestUndoRedoEmpty(t *testing.T) {
	m := newModel(t, mk(t, "A"))
	before := stateOf(m)
	require.ErrorIs(t, m.Undo(), ErrEmptyHistory)
	require.ErrorIs(t, m.Redo(), ErrEmptyHistory)
	assert.Equal(t, before, stateOf(m))
}

// TestUndoRoundTrip N 次變更後 N 次 undo 回到初始狀態；再 N 次 redo 回到最終狀態。
func TestUndoRoundTrip(t *testing.T) {
	m := newModel(t, mk(t, "Seed"))
	initial := stateOf(m)

	var steps []state
	for i := 0; i < 5; i++ {
		require.NoError(t, m.AddFood(mk(t, fmt.Sprintf("F%d", i))))
		m.UpdateFilter(food.NameContains(fmt.Sprintf("f%d", i)))
		_, err := m.DeleteFood(0)
		require.NoError(t, err)
		require.NoError(t, m.AddFood(mk(t, fmt.Sprintf("G%d", i))))
		steps = append(steps, stateOf(m))
	}
	final := stateOf(m)
	n := m.UndoDepth()
	require.Equal(t, 20, n)

	for i := 0; i < n; i++ {
		require.NoError(t, m.Undo())
	}
	assert.Equal(t, initial, stateOf(m))
	assert.False(t, m.CanUndo())

	for i := 0; i < n; i++ {
		require.NoError(t, m.Redo())
	}
	assert.Equal(t, final, stateOf(m))
	assert.Equal(t, steps[len(steps)-1], final)
}

// TestUndoThenRedoIsIdentity 每一步 undo;redo 都不改變狀態。
func TestUndoThenRedoIsIdentity(t *testing.T) {
	a, b := mk(t, "A"), mk(t, "B")
	m := newModel(t)
	require.NoError(t, m.AddFood(a))
	require.NoError(t, m.AddFood(b))
	m.UpdateFilter(food.NameContains("a"))

	for m.CanUndo() {
		before := stateOf(m)
		require.NoError(t, m.Undo())
		require.NoError(t, m.Redo())
		assert.Equal(t, before, stateOf(m))
		require.NoError(t, m.Undo())
	}
}

func TestNewMutationClearsRedo(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.AddFood(mk(t, "A")))
	require.NoError(t, m.AddFood(mk(t, "B")))
	require.NoError(t, m.Undo())
	require.NoError(t, m.Undo())
	require.True(t, m.CanRedo())

	m.UpdateFilter(food.ShowNone())
	assert.False(t, m.CanRedo())
	require.ErrorIs(t, m.Redo(), ErrEmptyHistory)
}

// TestDeleteThenUndoRestoresPosition 刪除後 undo，原 Food 回到原本的位置。
func TestDeleteThenUndoRestoresPosition(t *testing.T) {
	a, b, c := mk(t, "A"), mk(t, "B"), mk(t, "C")
	m := newModel(t, a, b, c)
	_, err := m.DeleteFood(1)
	require.NoError(t, err)
	assert.Equal(t, []food.Food{a, c}, m.Foods())

	require.NoError(t, m.Undo())
	assert.Equal(t, []food.Food{a, b, c}, m.Foods())
	assert.Equal(t, food.Total([]food.Food{a, b, c}), m.Totals())
}

// TestAddFilterDeleteScenario add A、add B、篩選 B、刪除篩選後第 0 筆，再逐步 undo/redo。
func TestAddFilterDeleteScenario(t *testing.T) {
	a, b := mk(t, "A"), mk(t, "B")
	onlyB := food.NameContains("b")

	m := newModel(t)
	require.NoError(t, m.AddFood(a))
	require.NoError(t, m.AddFood(b))
	m.UpdateFilter(onlyB)
	assert.Equal(t, []food.Food{b}, m.FilteredView())
	removed, err := m.DeleteFood(0)
	require.NoError(t, err)
	assert.True(t, removed.Equal(b))

	require.NoError(t, m.Undo())
	require.NoError(t, m.Undo())
	assert.Equal(t, state{foods: []food.Food{a, b}, pred: food.ShowAll().Key()}, stateOf(m))

	require.NoError(t, m.Redo())
	assert.Equal(t, state{foods: []food.Food{a, b}, pred: onlyB.Key()}, stateOf(m))
	assert.Equal(t, []food.Food{b}, m.FilteredView())

	require.NoError(t, m.Redo())
	assert.Equal(t, state{foods: []food.Food{a}, pred: onlyB.Key()}, stateOf(m))
	assert.Empty(t, m.FilteredView())
	assert.False(t, m.CanRedo())
}

// TestSnapshotIsolationThroughModel undo/redo 之後修改即時清單，不影響仍保存在歷史中的狀態。
func TestSnapshotIsolationThroughModel(t *testing.T) {
	a, b, c := mk(t, "A"), mk(t, "B"), mk(t, "C")
	m := newModel(t)
	require.NoError(t, m.AddFood(a))
	require.NoError(t, m.AddFood(b))
	require.NoError(t, m.Undo())

	// 直接修改還原後的即時清單（模擬後續就地修改）
	require.NoError(t, m.foods.Add(c))
	_, err := m.foods.Remove(0)
	require.NoError(t, err)

	require.NoError(t, m.Redo())
	assert.Equal(t, []food.Food{a, b}, m.Foods())
	require.NoError(t, m.Undo())
	assert.Equal(t, []food.Food{c}, m.Foods(), "redo pushed the live state onto undo")
	require.NoError(t, m.Undo())
	assert.Empty(t, m.Foods())
}

func TestSkipRedundantPolicy(t *testing.T) {
	m, err := NewModel(Env{History: Policy{SkipRedundant: true}}, nil)
	require.NoError(t, err)
	m.UpdateFilter(food.ShowAll())
	m.UpdateFilter(food.ShowAll())
	assert.Equal(t, 1, m.UndoDepth())

	// add 前的狀態與頂端相同，因此不再推入；undo 仍回到空清單
	require.NoError(t, m.AddFood(mk(t, "A")))
	assert.Equal(t, 1, m.UndoDepth())
	require.NoError(t, m.Undo())
	assert.Zero(t, m.Len())
	assert.False(t, m.CanUndo())
}

// TestSkipRedundantKeepsDistinctFilters 關鍵字含逗號的條件與多關鍵字條件是不同狀態，不可被略過。
func TestSkipRedundantKeepsDistinctFilters(t *testing.T) {
	chicken := mk(t, "Chicken")
	m, err := NewModel(Env{History: Policy{SkipRedundant: true}}, []food.Food{chicken})
	require.NoError(t, err)

	one := food.NameContains("chicken,rice")
	two := food.NameContains("chicken", "rice")
	m.UpdateFilter(one)
	m.UpdateFilter(two)
	m.UpdateFilter(food.ShowAll())
	assert.Equal(t, 3, m.UndoDepth())

	require.NoError(t, m.Undo())
	assert.True(t, food.SamePredicate(two, m.Predicate()))
	assert.Equal(t, []food.Food{chicken}, m.FilteredView())
	require.NoError(t, m.Undo())
	assert.True(t, food.SamePredicate(one, m.Predicate()))
	assert.Empty(t, m.FilteredView())
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	f, err := food.New("A", 1, 1, 1, []string{"x"}, "2020-10-01")
	require.NoError(t, err)
	m := newModel(t, f)

	view := m.FilteredView()
	view[0].Tags[0] = "mutated"
	view[0].Name = "mutated"
	assert.Equal(t, "A", m.Foods()[0].Name)
	assert.Equal(t, []string{"x"}, m.Foods()[0].Tags)
}

func TestSnapshotExport(t *testing.T) {
	m, err := NewModel(Env{Prefs: Prefs{DataFile: "data/foods.json"}}, []food.Food{mk(t, "A")})
	require.NoError(t, err)
	assert.Equal(t, "data/foods.json", m.Prefs().DataFile)

	snap := m.Snapshot()
	got, err := snap.ToFoods()
	require.NoError(t, err)
	assert.Equal(t, m.Foods(), got)
}
