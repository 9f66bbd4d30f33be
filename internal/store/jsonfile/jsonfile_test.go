package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{Date: "2024-01-05", Category: "Food", Amount: -50, Description: "lunch"},
		{Date: "2024-01-10", Category: "Salary", Amount: 2000, Description: "pay"},
		{Date: "2024-02-01", Category: "Rent", Amount: -812.37, Description: "flat \"A\""},
		{Date: "2024-02-01", Category: "Rent", Amount: -812.37, Description: "flat \"A\""},
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "transactions.json"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.json")

	require.NoError(t, New(path).Save(ctx, sample()))
	first, err := New(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample(), first)

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, New(path).Save(ctx, first))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLoadReadsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	legacy := `[
    {
        "date": "2024-01-05",
        "category": "Food",
        "amount": -50.0,
        "description": "lunch"
    }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	got, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Transaction{{Date: "2024-01-05", Category: "Food", Amount: -50, Description: "lunch"}}, got)
}

func TestLoadCorruptDocument(t *testing.T) {
	docs := map[string]string{
		"truncated": `[{"date": "2024-01-05"`,
		"empty":     "",
		"object":    `{"date": "2024-01-05"}`,
		"null":      "null",
		"bad type":  `[{"amount": "ten"}]`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "transactions.json")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

			_, err := New(path).Load(context.Background())
			var dc *store.DataCorruptionError
			require.True(t, errors.As(err, &dc), "expected DataCorruptionError, got %v", err)
			assert.Equal(t, path, dc.Path)
		})
	}
}

func TestSaveFailureIsIOError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))
	path := filepath.Join(dir, "transactions.json")

	err := New(path).Save(context.Background(), sample())
	var ioErr *store.IOError
	require.True(t, errors.As(err, &ioErr), "expected IOError, got %v", err)
	assert.Equal(t, "create", ioErr.Op)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
