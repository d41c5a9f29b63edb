package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jsonstore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

func TestNewJSONStore(t *testing.T) {
	store := NewJSONStore(newMockJSONFiles())

	require.NotNil(t, store)
	assert.Empty(t, store.Snapshot())
	assert.Empty(t, store.Keys())
}

func TestJSONStore_GetFile(t *testing.T) {
	cfg := domain.FileConfig{File: "foo", Default: "defaultbar"}
	errFoo := errors.New("FOO")

	tests := []struct {
		name     string
		data     any
		readErr  error
		expected domain.Entry
		wantErr  error
	}{
		{
			name:     "data returned",
			data:     "mybar",
			expected: domain.Entry{File: "foo", Data: "mybar"},
		},
		{
			name:     "no data, return default",
			data:     nil,
			expected: domain.Entry{File: "foo", Data: "defaultbar"},
		},
		{
			name:     "file not found, return default",
			readErr:  domain.NewFileError(domain.FileErrorNotFound, "read", "/data/foo.json", errors.New("ENOENT")),
			expected: domain.Entry{File: "foo", Data: "defaultbar"},
		},
		{
			name:     "wrapped not found, return default",
			readErr:  fmt.Errorf("backend: %w", domain.ErrFileNotFound),
			expected: domain.Entry{File: "foo", Data: "defaultbar"},
		},
		{
			name:    "uncaught error",
			readErr: errFoo,
			wantErr: errFoo,
		},
		{
			name:     "falsy values are data",
			data:     false,
			expected: domain.Entry{File: "foo", Data: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMockJSONFiles()
			files.data = tt.data
			files.readErr = tt.readErr
			store := NewJSONStore(files)

			entry, err := store.GetFile(context.Background(), cfg)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Same(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, entry)
			assert.Equal(t, []string{"foo"}, files.resolved)
			assert.Empty(t, store.Snapshot(), "GetFile must not touch the store")
		})
	}
}

func TestJSONStore_GetFile_OtherFileErrorPropagatesUnchanged(t *testing.T) {
	readErr := domain.NewFileError(domain.FileErrorOther, "read", "/data/foo.json", errors.New("permission denied"))
	files := newMockJSONFiles()
	files.readErr = readErr
	store := NewJSONStore(files)

	_, err := store.GetFile(context.Background(), domain.FileConfig{File: "foo", Default: "x"})

	assert.Same(t, readErr, err)
}

func TestJSONStore_GetFile_NoDefault(t *testing.T) {
	files := newMockJSONFiles()
	files.readErr = domain.NewFileError(domain.FileErrorNotFound, "read", "/data/foo.json", nil)
	store := NewJSONStore(files)

	entry, err := store.GetFile(context.Background(), domain.FileConfig{File: "foo"})

	require.NoError(t, err)
	assert.Equal(t, domain.Entry{File: "foo"}, entry)
}

func TestJSONStore_GetFile_InvalidName(t *testing.T) {
	files := newMockJSONFiles()
	store := NewJSONStore(files)

	_, err := store.GetFile(context.Background(), domain.FileConfig{File: "../escape"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, files.resolved)
}

func TestJSONStore_Init(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		store := NewJSONStore(newMockJSONFiles())
		store.store = map[string]any{"known": "no", "foobar": "foo"}
		store.load = stubLoad(domain.Entry{File: "foo", Data: "bar"}, nil)

		snapshot, err := store.Init(context.Background(), domain.FileConfig{File: "foobar"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"known": "no", "foobar": "foo", "foo": "bar"}, snapshot)
	})

	t.Run("error", func(t *testing.T) {
		errFo := errors.New("fo")
		store := NewJSONStore(newMockJSONFiles())
		store.store = map[string]any{"known": "no", "foobar": "foo"}
		store.load = stubLoad(domain.Entry{}, errFo)

		snapshot, err := store.Init(context.Background(), domain.FileConfig{File: "foobar"})

		assert.Same(t, errFo, err)
		assert.Nil(t, snapshot)
		assert.Equal(t, map[string]any{"known": "no", "foobar": "foo"}, store.Snapshot())
	})

	t.Run("overwrites existing entry", func(t *testing.T) {
		files := newMockJSONFiles()
		files.data = "new"
		store := NewJSONStore(files)
		store.store = map[string]any{"foo": "old"}

		snapshot, err := store.Init(context.Background(), domain.FileConfig{File: "foo"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"foo": "new"}, snapshot)
	})

	t.Run("snapshot is detached from store", func(t *testing.T) {
		files := newMockJSONFiles()
		files.data = "bar"
		store := NewJSONStore(files)

		snapshot, err := store.Init(context.Background(), domain.FileConfig{File: "foo"})
		require.NoError(t, err)
		snapshot["foo"] = "mutated"

		value, err := store.Get(domain.FileConfig{File: "foo"})
		require.NoError(t, err)
		assert.Equal(t, "bar", value)
	})
}

func TestJSONStore_Get(t *testing.T) {
	store := NewJSONStore(newMockJSONFiles())
	store.store = map[string]any{"known": "foo"}

	t.Run("known", func(t *testing.T) {
		value, err := store.Get(domain.FileConfig{File: "known"})
		require.NoError(t, err)
		assert.Equal(t, "foo", value)
	})

	t.Run("unknown", func(t *testing.T) {
		value, err := store.Get(domain.FileConfig{File: "unknown"})
		assert.Nil(t, value)
		assert.EqualError(t, err, "requested file not present in store: unknown")
		assert.ErrorIs(t, err, domain.ErrNotInStore)

		var notInStore *domain.KeyNotInStoreError
		require.ErrorAs(t, err, &notInStore)
		assert.Equal(t, "unknown", notInStore.Name)
	})

	t.Run("repeated calls return the same value", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			value, err := store.Get(domain.FileConfig{File: "known"})
			require.NoError(t, err)
			assert.Equal(t, "foo", value)
		}
	})
}

func TestJSONStore_Get_NilValueIsPresent(t *testing.T) {
	files := newMockJSONFiles()
	store := NewJSONStore(files)

	_, err := store.Init(context.Background(), domain.FileConfig{File: "foo"})
	require.NoError(t, err)

	value, err := store.Get(domain.FileConfig{File: "foo"})
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestJSONStore_Put(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		files := newMockJSONFiles()
		store := NewJSONStore(files)

		result, err := store.Put(context.Background(), domain.FileConfig{File: "foo"}, "bardata")

		require.NoError(t, err)
		assert.Equal(t, "bardata", result)
		assert.Equal(t, "bardata", files.written["/data/foo.json"])
	})

	t.Run("error", func(t *testing.T) {
		errBar := errors.New("bar")
		files := newMockJSONFiles()
		files.writeErr = errBar
		store := NewJSONStore(files)

		result, err := store.Put(context.Background(), domain.FileConfig{File: "foo"}, nil)

		assert.Nil(t, result)
		assert.Same(t, errBar, err)
		assert.EqualError(t, err, "bar")
	})

	t.Run("does not update the store", func(t *testing.T) {
		store := NewJSONStore(newMockJSONFiles())
		store.store = map[string]any{"foo": "cached"}

		_, err := store.Put(context.Background(), domain.FileConfig{File: "foo"}, "written")
		require.NoError(t, err)

		value, err := store.Get(domain.FileConfig{File: "foo"})
		require.NoError(t, err)
		assert.Equal(t, "cached", value)
	})

	t.Run("invalid name", func(t *testing.T) {
		files := newMockJSONFiles()
		store := NewJSONStore(files)

		_, err := store.Put(context.Background(), domain.FileConfig{File: ""}, "x")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, files.written)
	})
}

func TestJSONStore_InitAll(t *testing.T) {
	t.Run("loads every name", func(t *testing.T) {
		ctx := context.Background()
		files := memory.NewJSONFiles("/data")
		require.NoError(t, files.WriteJSON(ctx, files.ResolvePath("a"), "alpha"))
		require.NoError(t, files.WriteJSON(ctx, files.ResolvePath("b"), map[string]any{"n": float64(2)}))
		store := NewJSONStore(files)

		snapshot, err := store.InitAll(ctx,
			domain.FileConfig{File: "a"},
			domain.FileConfig{File: "b"},
			domain.FileConfig{File: "c", Default: []any{}},
		)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"a": "alpha",
			"b": map[string]any{"n": float64(2)},
			"c": []any{},
		}, snapshot)
		assert.Equal(t, []string{"a", "b", "c"}, store.Keys())
	})

	t.Run("no entries on failure", func(t *testing.T) {
		ctx := context.Background()
		files := memory.NewJSONFiles("/data")
		files.SetRaw(files.ResolvePath("bad"), []byte("{oops"))
		require.NoError(t, files.WriteJSON(ctx, files.ResolvePath("good"), "ok"))
		store := NewJSONStore(files)

		snapshot, err := store.InitAll(ctx,
			domain.FileConfig{File: "good"},
			domain.FileConfig{File: "bad"},
		)

		require.Error(t, err)
		assert.Nil(t, snapshot)
		assert.Empty(t, store.Snapshot())
	})

	t.Run("no configs", func(t *testing.T) {
		store := NewJSONStore(newMockJSONFiles())

		snapshot, err := store.InitAll(context.Background())

		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})
}

func TestJSONStore_PutThenInit(t *testing.T) {
	ctx := context.Background()
	store := NewJSONStore(memory.NewJSONFiles("/data"))
	cfg := domain.FileConfig{File: "settings", Default: map[string]any{}}

	snapshot, err := store.Init(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"settings": map[string]any{}}, snapshot)

	_, err = store.Put(ctx, cfg, map[string]any{"theme": "dark"})
	require.NoError(t, err)

	value, err := store.Get(cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, value)

	_, err = store.Init(ctx, cfg)
	require.NoError(t, err)

	value, err = store.Get(cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark"}, value)
}

func TestJSONStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	files := memory.NewJSONFiles("/data")
	store := NewJSONStore(files)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cfg := domain.FileConfig{File: fmt.Sprintf("key_%d", n)}
			_, _ = store.Put(ctx, cfg, n)
			_, _ = store.Init(ctx, cfg)
			_, _ = store.Get(cfg)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 20)
	for i := 0; i < 20; i++ {
		value, err := store.Get(domain.FileConfig{File: fmt.Sprintf("key_%d", i)})
		require.NoError(t, err)
		assert.Equal(t, float64(i), value)
	}
}

func TestJSONStore_Names(t *testing.T) {
	files := newMockJSONFiles()
	files.names = []string{"a", "b"}
	store := NewJSONStore(files)

	names, err := store.Names(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Empty(t, store.Keys(), "Names must not load entries")
}
