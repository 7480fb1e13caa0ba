package upload

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		data, err := Read(strings.NewReader("a,b\n1,2\n"), 0)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(data))
	})

	t.Run("gzip", func(t *testing.T) {
		data, err := Read(bytes.NewReader(gzipped(t, "Date,Open\n")), 1024)
		require.NoError(t, err)
		assert.Equal(t, "Date,Open\n", string(data))
	})

	t.Run("single byte", func(t *testing.T) {
		data, err := Read(strings.NewReader("x"), 10)
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})

	t.Run("empty", func(t *testing.T) {
		data, err := Read(strings.NewReader(""), 10)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		data, err := Read(strings.NewReader("12345"), 5)
		require.NoError(t, err)
		assert.Len(t, data, 5)
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := Read(strings.NewReader("123456"), 5)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("gzip bomb is bounded", func(t *testing.T) {
		_, err := Read(bytes.NewReader(gzipped(t, strings.Repeat("a", 4096))), 100)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}), 100)
		assert.Error(t, err)
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")
	require.NoError(t, os.WriteFile(path, gzipped(t, "x,y\n"), 0644))

	data, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "x,y\n", string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"), 0)
	assert.Error(t, err)
}
