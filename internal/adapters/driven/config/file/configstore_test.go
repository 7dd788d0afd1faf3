package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[corpus]
source = "filesystem"
path = "/data/20news-bydate.tar.gz"
categories = ["sci.space", "rec.autos"]

[split]
test_size = 0.3
seed = 42

[classifier]
alpha = 1

[vectorizer]
stem = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "filesystem", store.GetString("corpus.source"))
	assert.Equal(t, []string{"sci.space", "rec.autos"}, store.GetStringSlice("corpus.categories"))
	assert.Equal(t, 0.3, store.GetFloat("split.test_size"))
	assert.Equal(t, 42, store.GetInt("split.seed"))
	assert.Equal(t, 1.0, store.GetFloat("classifier.alpha"), "integers widen to float")
	assert.True(t, store.GetBool("vectorizer.stem"))
}

func TestConfigStore_TypedGetters_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("corpus.url", "https://example.com"))

	assert.Equal(t, 0, store.GetInt("corpus.url"))
	assert.Equal(t, 0.0, store.GetFloat("corpus.url"))
	assert.False(t, store.GetBool("corpus.url"))
	assert.Nil(t, store.GetStringSlice("corpus.url"))
	assert.Equal(t, "", store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetWritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("split.test_size", 0.2))
	require.NoError(t, store.Set("classifier.alpha", 0.5))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[split]")
	assert.Contains(t, string(data), "[classifier]")
	assert.NotContains(t, string(data), `"split.test_size"`)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("split.test_size", 0.2))
	require.NoError(t, store.Set("split.seed", int64(7)))
	require.NoError(t, store.Set("vectorizer.stop_words", true))
	require.NoError(t, store.Set("corpus.remove", []string{"headers", "quotes"}))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 0.2, reopened.GetFloat("split.test_size"))
	assert.Equal(t, 7, reopened.GetInt("split.seed"))
	assert.True(t, reopened.GetBool("vectorizer.stop_words"))
	assert.Equal(t, []string{"headers", "quotes"}, reopened.GetStringSlice("corpus.remove"))
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("classifier.alpha", 0.5))
	require.NoError(t, store.Delete("classifier.alpha"))
	require.NoError(t, store.Delete("classifier.alpha"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reopened.Get("classifier.alpha")
	assert.False(t, ok)
}

func TestConfigStore_SetConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("split.seed", int64(1)))
	err = store.Set("split.seed.value", int64(2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, ok := store.Get("split.seed.value")
	assert.False(t, ok, "failed Set must not leave the value behind")
	assert.Equal(t, 1, store.GetInt("split.seed"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))
	assert.Error(t, err)

	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Save())
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())
	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.NotNil(t, store.data)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("split.seed", int64(n))
			_ = store.GetInt("split.seed")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("split.seed")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"e":     true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": "x"},
		},
		"e": true,
	}, nested)

	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "e": true}, flattenMap(nested, ""))
}
