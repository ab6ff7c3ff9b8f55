package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trialops/trial-ingress/pkg/ingest"
	"github.com/trialops/trial-ingress/pkg/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSource_Load(t *testing.T) {
	t.Run("Should load rows and treat empty cells as absent", func(t *testing.T) {
		path := writeTempCSV(t, "a,b,c\n1,,3\n4,5,6\n")
		source, err := ingest.NewCSVSource(path, zap.NewNop())
		require.NoError(t, err)

		table, skipped, err := source.Load()
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, table.Columns)
		assert.Equal(t, 0, skipped)
		require.Equal(t, 2, table.Len())

		_, ok := table.Rows[0].Get("b")
		assert.False(t, ok)
		v, ok := table.Rows[1].Get("b")
		assert.True(t, ok)
		assert.Equal(t, "5", v)
	})

	t.Run("Should skip rows with the wrong column count", func(t *testing.T) {
		path := writeTempCSV(t, "a,b,c\n1,2,3\n4,5\n6,7,8,9\n10,11,12\n")
		source, err := ingest.NewCSVSource(path, zap.NewNop())
		require.NoError(t, err)

		table, skipped, err := source.Load()
		require.NoError(t, err)

		assert.Equal(t, 2, table.Len())
		assert.Equal(t, 2, skipped)
	})

	t.Run("Should fail when the file does not exist", func(t *testing.T) {
		source, err := ingest.NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), zap.NewNop())
		require.NoError(t, err)

		_, _, err = source.Load()
		assert.Error(t, err)
	})

	t.Run("Should reject an empty path", func(t *testing.T) {
		_, err := ingest.NewCSVSource("", zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("Should reject a nil logger", func(t *testing.T) {
		_, err := ingest.NewCSVSource("in.csv", nil)
		assert.Error(t, err)
	})
}

func TestCSVSink_WriteTable(t *testing.T) {
	t.Run("Should round-trip a table with absent values", func(t *testing.T) {
		dir := t.TempDir()
		sink, err := ingest.NewCSVSink(dir, zap.NewNop())
		require.NoError(t, err)

		table := &model.Table{Columns: []string{"a", "b"}}
		row := make(model.Row)
		row.Set("a", "x")
		table.Rows = append(table.Rows, row)

		require.NoError(t, sink.WriteTable("out.csv", table))

		source, err := ingest.NewCSVSource(filepath.Join(dir, "out.csv"), zap.NewNop())
		require.NoError(t, err)
		loaded, skipped, err := source.Load()
		require.NoError(t, err)

		assert.Equal(t, 0, skipped)
		assert.Equal(t, table.Columns, loaded.Columns)
		require.Equal(t, 1, loaded.Len())
		assert.Equal(t, table.Rows[0], loaded.Rows[0])
	})

	t.Run("Should create the output directory and report it", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		sink, err := ingest.NewCSVSink(dir, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, dir, sink.Dir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Should reject a nil table", func(t *testing.T) {
		sink, err := ingest.NewCSVSink(t.TempDir(), zap.NewNop())
		require.NoError(t, err)
		assert.Error(t, sink.WriteTable("out.csv", nil))
	})
}
