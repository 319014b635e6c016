package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	t.Run("uses the given directory", func(t *testing.T) {
		tmpDir := t.TempDir()

		store, err := NewConfigStore(tmpDir)

		require.NoError(t, err)
		require.NotNil(t, store)
		assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	})

	t.Run("defaults to ~/.podseek", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("cannot determine home directory")
		}

		store, err := NewConfigStore("")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".podseek", "config.toml"), store.Path())

		_ = os.Remove(store.Path())
	})

	t.Run("creates nested directories", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "deep", "path")

		store, err := NewConfigStore(nested)

		require.NoError(t, err)
		require.NotNil(t, store)

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("fails when directory cannot be created", func(t *testing.T) {
		store, err := NewConfigStore("/dev/null/cannot/create/dirs")

		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("fails on corrupted config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600)
		require.NoError(t, err)

		store, err := NewConfigStore(tmpDir)

		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestConfigStore_TypedGetters(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("pinecone.api_key", "pk-test"))
	require.NoError(t, store.Set("search.default_limit", 3))
	require.NoError(t, store.Set("search.rerank", true))

	assert.Equal(t, "pk-test", store.GetString("pinecone.api_key"))
	assert.Equal(t, 3, store.GetInt("search.default_limit"))
	assert.True(t, store.GetBool("search.rerank"))

	t.Run("missing keys return zero values", func(t *testing.T) {
		assert.Equal(t, "", store.GetString("cohere.api_key"))
		assert.Equal(t, 0, store.GetInt("missing"))
		assert.False(t, store.GetBool("missing"))

		val, ok := store.Get("missing")
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("wrong types return zero values", func(t *testing.T) {
		assert.Equal(t, "", store.GetString("search.default_limit"))
		assert.Equal(t, 0, store.GetInt("pinecone.api_key"))
		assert.False(t, store.GetBool("pinecone.api_key"))
	})

	t.Run("int64 from TOML decodes as int", func(t *testing.T) {
		store.mu.Lock()
		store.data["search.candidates"] = int64(20)
		store.mu.Unlock()

		assert.Equal(t, 20, store.GetInt("search.candidates"))
	})
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("openai.api_key", "sk-test"))
	require.NoError(t, store1.Set("search.default_limit", 5))
	require.NoError(t, store1.Set("search.rerank", true))

	// A fresh instance loads what the first one wrote.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", store2.GetString("openai.api_key"))
	assert.Equal(t, 5, store2.GetInt("search.default_limit"))
	assert.True(t, store2.GetBool("search.rerank"))
}

func TestConfigStore_DottedKeysSurviveReload(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("youtube.api_key", "yt-test"))

	// TOML round-trips dotted keys through nested tables; Load
	// flattens them back to dot notation.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "yt-test", store2.GetString("youtube.api_key"))
}

func TestConfigStore_Overwrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("pinecone.namespace", "dev"))
	require.NoError(t, store.Set("pinecone.namespace", "prod"))

	assert.Equal(t, "prod", store.GetString("pinecone.namespace"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("openai.api_key", "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# comment only\n"), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Load_Errors(t *testing.T) {
	t.Run("invalid TOML", func(t *testing.T) {
		store, err := NewConfigStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Set("valid", "data"))

		require.NoError(t, os.WriteFile(store.Path(), []byte("bad toml ][}{"), 0600))

		assert.Error(t, store.Load())
	})

	t.Run("unreadable file", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		store, err := NewConfigStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Set("valid", "data"))

		require.NoError(t, os.Chmod(store.Path(), 0000))
		t.Cleanup(func() { _ = os.Chmod(store.Path(), 0600) })

		err = store.Load()
		assert.Error(t, err)
		assert.False(t, os.IsNotExist(err))
	})
}

func TestConfigStore_Set_MarshalError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Channels cannot be marshaled to TOML.
	assert.Error(t, store.Set("bad", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
