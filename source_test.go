package tabq

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllRows(t *testing.T, src RowSource) [][]string {
	t.Helper()
	var rows [][]string
	for {
		row, err := src.Read()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestNewStringSource(t *testing.T) {
	t.Parallel()

	t.Run("reads rows in order", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("a,1\nb,2\nc,3\n")
		require.NoError(t, err)
		defer src.Close()

		rows := readAllRows(t, src)
		assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}, rows)
	})

	t.Run("rewind restarts at row zero", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("a,1\nb,2\n")
		require.NoError(t, err)
		defer src.Close()

		_, err = src.Read()
		require.NoError(t, err)

		require.NoError(t, src.Rewind())
		row, err := src.Read()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "1"}, row)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("a;1\nb;2\n", WithDelimiter(';'))
		require.NoError(t, err)
		defer src.Close()

		rows := readAllRows(t, src)
		assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}}, rows)
	})

	t.Run("ragged rows pass through untouched", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("a,1,extra\nb\n")
		require.NoError(t, err)
		defer src.Close()

		rows := readAllRows(t, src)
		assert.Equal(t, [][]string{{"a", "1", "extra"}, {"b"}}, rows)
	})

	t.Run("blank lines never become rows", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("a,1\n\n\nb,2\n")
		require.NoError(t, err)
		defer src.Close()

		rows := readAllRows(t, src)
		assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}}, rows)
	})

	t.Run("reports UTF-8 byte-order mark", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("\xEF\xBB\xBFname,age\nAnn,30\n")
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, BOMUTF8, src.BOM())

		// The mark is reported, not consumed; the first field carries it.
		row, err := src.Read()
		require.NoError(t, err)
		assert.Equal(t, "\xEF\xBB\xBFname", row[0])
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		src, err := NewStringSource("")
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, BOMNone, src.BOM())
		_, err = src.Read()
		assert.Equal(t, io.EOF, err)
	})
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	t.Run("plain file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "sample.csv")
		require.NoError(t, os.WriteFile(path, []byte("name,age\nAnn,30\n"), 0o600))

		src, err := OpenFile(path)
		require.NoError(t, err)
		defer src.Close()

		rows := readAllRows(t, src)
		assert.Len(t, rows, 2)
	})

	t.Run("gzip file detected by extension", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := gz.Write([]byte("name,age\nAnn,30\n"))
		require.NoError(t, err)
		require.NoError(t, gz.Close())

		path := filepath.Join(t.TempDir(), "sample.csv.gz")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		src, err := OpenFile(path)
		require.NoError(t, err)
		defer src.Close()

		rows := readAllRows(t, src)
		assert.Equal(t, [][]string{{"name", "age"}, {"Ann", "30"}}, rows)

		// Rewind re-wraps decompression.
		require.NoError(t, src.Rewind())
		assert.Len(t, readAllRows(t, src), 2)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := OpenFile(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestCompressionFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want CompressionType
	}{
		{path: "data.csv", want: CompressionNone},
		{path: "data.csv.gz", want: CompressionGZ},
		{path: "data.csv.bz2", want: CompressionBZ2},
		{path: "data.csv.xz", want: CompressionXZ},
		{path: "data.csv.zst", want: CompressionZSTD},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, compressionFromPath(tt.path))
		})
	}
}

func TestSliceSource(t *testing.T) {
	t.Parallel()

	src := NewSliceSource([][]string{{"a", "1"}, {"b", "2"}})
	rows := readAllRows(t, src)
	assert.Len(t, rows, 2)

	require.NoError(t, src.Rewind())
	row, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "1"}, row)

	assert.Equal(t, BOMNone, src.BOM())
	assert.NoError(t, src.Close())
}
