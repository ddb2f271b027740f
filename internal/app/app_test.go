// internal/app/app_test.go

package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcgymmy/internal/config"
	"mcgymmy/internal/food"
	"mcgymmy/internal/storage"
)

func jsonConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DataFile = filepath.Join(t.TempDir(), "mcgymmy.json")
	return cfg
}

// TestLifecycleSavesOnClose 第一次啟動為空清單，Close 後重新啟動可讀回資料。
func TestLifecycleSavesOnClose(t *testing.T) {
	ctx := context.Background()
	cfg := jsonConfig(t)
	var logs bytes.Buffer

	a, err := New(ctx, cfg, &logs)
	require.NoError(t, err)
	assert.Zero(t, a.Model.Len())
	assert.Equal(t, cfg.Storage.DataFile, a.Model.Prefs().DataFile)

	f, err := food.New("Egg", 6, 5, 1, nil, "2020-10-01")
	require.NoError(t, err)
	require.NoError(t, a.Model.AddFood(f))
	require.NoError(t, a.Close(ctx))

	b, err := New(ctx, cfg, &logs)
	require.NoError(t, err)
	defer b.Close(ctx)
	require.Equal(t, 1, b.Model.Len())
	assert.True(t, f.Equal(b.Model.Foods()[0]))
	assert.False(t, b.Model.CanUndo(), "history is not persisted")
	assert.Contains(t, logs.String(), "food list loaded")
	assert.Contains(t, logs.String(), "path="+cfg.Storage.DataFile)
}

// TestCorruptDataIsNotOverwritten 格式錯誤時啟動失敗，原檔保持不變。
func TestCorruptDataIsNotOverwritten(t *testing.T) {
	cfg := jsonConfig(t)
	require.NoError(t, os.WriteFile(cfg.Storage.DataFile, []byte("{bad json}"), 0o600))

	_, err := New(context.Background(), cfg, &bytes.Buffer{})
	require.ErrorIs(t, err, storage.ErrFormat)

	data, err := os.ReadFile(cfg.Storage.DataFile)
	require.NoError(t, err)
	assert.Equal(t, "{bad json}", string(data))
}

func TestBadgerBackend(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.Backend = storage.BackendBadger
	cfg.Storage.BadgerDir = t.TempDir()

	a, err := New(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	f, err := food.New("Rice", 4, 0, 45, []string{"lunch"}, "2020-10-02")
	require.NoError(t, err)
	require.NoError(t, a.Model.AddFood(f))
	require.NoError(t, a.Close(ctx))

	b, err := New(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	defer b.Close(ctx)
	assert.Equal(t, 1, b.Model.Len())
}
