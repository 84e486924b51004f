package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "playerdata")),
		"memory": &Memory{},
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			id := uuid.New()

			d, err := s.Load(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, d, "nothing stored yet")

			want := &Data{
				ActivationStrategy: "client",
				DisabledCategories: []string{"axe", "shovel"},
				VeinMiningPattern:  "veinminer:default",
			}
			require.NoError(t, s.Save(ctx, id, want))
			want.DisabledCategories[0] = "changed"

			got, err := s.Load(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, &Data{
				ActivationStrategy: "client",
				DisabledCategories: []string{"axe", "shovel"},
				VeinMiningPattern:  "veinminer:default",
			}, got)

			require.NoError(t, s.Save(ctx, id, &Data{ActivationStrategy: "sneak"}))
			got, err = s.Load(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "sneak", got.ActivationStrategy)
			assert.Empty(t, got.DisabledCategories)

			assert.Error(t, s.Save(ctx, id, nil))
		})
	}
}

func TestStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(ctx, uuid.New())
			assert.ErrorIs(t, err, context.Canceled)
			assert.ErrorIs(t, s.Save(ctx, uuid.New(), &Data{}), context.Canceled)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "playerdata")
	s := NewFileStore(dir)
	id := uuid.New()
	require.NoError(t, s.Save(context.Background(), id, &Data{VeinMiningPattern: "veinminer:default"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, id.String()+".yml", entries[0].Name())

	b, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "veinMiningPattern: veinminer:default\n", string(b))
}

func TestFileStoreInvalidData(t *testing.T) {
	dir := t.TempDir()
	id := uuid.New()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id.String()+".yml"), []byte("disabledCategories: {"), 0o644))
	_, err := NewFileStore(dir).Load(context.Background(), id)
	assert.Error(t, err)
}
