// internal/storage/jsonstore_test.go
//
// 測試目標：驗證 JSON 快照的寫入與讀回，以及各類錯誤的分類（不存在、格式錯誤）。
// 使用 t.TempDir() 確保測試不汙染本機環境。
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcgymmy/internal/food"
)

func sampleFoods(t *testing.T) []food.Food {
	t.Helper()
	a, err := food.New("Chicken Rice", 30, 10, 80, []string{"lunch"}, "2020-10-01")
	require.NoError(t, err)
	b, err := food.New("Egg", 6, 5, 1, nil, "2020-10-02")
	require.NoError(t, err)
	return []food.Food{a, b}
}

// TestJSONSnapshotRoundTrip 寫入後讀回，Meta 與 Food 內容一致。
func TestJSONSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	st := NewJSONStore(path)

	foods := sampleFoods(t)
	require.NoError(t, st.Save(ctx, FromFoods(foods)))

	_, err := os.Stat(path)
	require.NoError(t, err, "snapshot not written")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp file should be renamed away")

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "json_snapshot", loaded.Meta.Storage)
	assert.Equal(t, SchemaVersion, loaded.Meta.Version)
	assert.False(t, loaded.Meta.Timestamp.IsZero())

	got, err := loaded.ToFoods()
	require.NoError(t, err)
	require.Len(t, got, len(foods))
	for i := range foods {
		assert.True(t, foods[i].Equal(got[i]), "food %d: %v != %v", i, foods[i], got[i])
	}
}

func TestJSONLoadMissingFile(t *testing.T) {
	st := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := st.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJSONLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad json}"), 0o600))
	_, err := NewJSONStore(path).Load(context.Background())
	require.ErrorIs(t, err, ErrFormat)
}

// TestToFoodsRejectsInvalidData 欄位不合法或重複時回傳 ErrFormat。
func TestToFoodsRejectsInvalidData(t *testing.T) {
	bad := Snapshot{Foods: []PersistFood{{Name: "", Protein: 1, Date: "2020-10-01"}}}
	_, err := bad.ToFoods()
	require.ErrorIs(t, err, ErrFormat)

	dup := FromFoods(sampleFoods(t))
	dup.Foods = append(dup.Foods, dup.Foods[0])
	_, err = dup.ToFoods()
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "duplicate")

	future := Snapshot{Meta: Meta{Version: SchemaVersion + 1}}
	_, err = future.ToFoods()
	require.ErrorIs(t, err, ErrFormat)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "sqlite"})
	require.Error(t, err)

	st, err := Open(Options{DataFile: filepath.Join(t.TempDir(), "d.json")})
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, st)
	require.NoError(t, st.Close())
}
