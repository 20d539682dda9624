package tabq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStringSource(t *testing.T, data string, opts ...SourceOption) *Source {
	t.Helper()
	src, err := NewStringSource(data, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func collectRecords(t *testing.T, it RecordIterator) []Record {
	t.Helper()
	var records []Record
	for it.Next() {
		records = append(records, it.Record())
	}
	require.NoError(t, it.Err())
	return records
}

func TestReaderHeader(t *testing.T) {
	t.Parallel()

	t.Run("no header configured", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "a,1\nb,2\n"))

		header, err := r.Header()
		require.NoError(t, err)
		assert.Nil(t, header)
	})

	t.Run("header at position zero", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "name,age\nAnn,30\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		header, err := r.Header()
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age"}, header)
	})

	t.Run("header at a later position", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "junk,junk2\nname,age\nAnn,30\n"))
		require.NoError(t, r.SetHeaderOffset(1))

		header, err := r.Header()
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age"}, header)
	})

	t.Run("header row absent", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "name,age\n"))
		require.NoError(t, r.SetHeaderOffset(5))

		_, err := r.Header()
		assert.ErrorIs(t, err, ErrStructure)
	})

	t.Run("byte-order mark stripped from first header name", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "\xEF\xBB\xBFname,age\nAnn,30\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		header, err := r.Header()
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age"}, header)
	})

	t.Run("byte-order mark fused to quoted header name", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "\xEF\xBB\xBF\"name\",age\nAnn,30\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		header, err := r.Header()
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age"}, header)
	})

	t.Run("duplicate names resolve fine, iteration fails", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "a,a\n1,2\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		header, err := r.Header()
		require.NoError(t, err, "header access stays side-effect free")
		assert.Equal(t, []string{"a", "a"}, header)

		it := r.Records()
		assert.False(t, it.Next())
		assert.ErrorIs(t, it.Err(), ErrStructure)
	})

	t.Run("invalid offset", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "a,1\n"))
		assert.ErrorIs(t, r.SetHeaderOffset(-2), ErrValidation)
	})
}

func TestReaderRecords(t *testing.T) {
	t.Parallel()

	t.Run("positional records without header", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "a,1\nb,2\n"))

		records := collectRecords(t, r.Records())
		require.Len(t, records, 2)
		assert.Equal(t, []string{"a", "1"}, records[0].Values())
		assert.Equal(t, []string{"0", "1"}, records[0].Keys())
	})

	t.Run("header row excluded from data", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "name,age\nAnn,30\nBo,25\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		records := collectRecords(t, r.Records())
		require.Len(t, records, 2)
		v, ok := records[0].Get("name")
		require.True(t, ok)
		assert.Equal(t, "Ann", v)
	})

	t.Run("short row right-padded to header width", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "x,y\n1\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		records := collectRecords(t, r.Records())
		require.Len(t, records, 1)
		assert.Equal(t, []string{"x", "y"}, records[0].Keys())
		assert.Equal(t, []string{"1", ""}, records[0].Values())
	})

	t.Run("short row padded with configured value", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "x,y\n1\n"), WithPadding("N/A"))
		require.NoError(t, r.SetHeaderOffset(0))

		records := collectRecords(t, r.Records())
		require.Len(t, records, 1)
		assert.Equal(t, []string{"1", "N/A"}, records[0].Values())
	})

	t.Run("long row right-truncated to header width", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "x,y\n1,2,3\n"))
		require.NoError(t, r.SetHeaderOffset(0))

		records := collectRecords(t, r.Records())
		require.Len(t, records, 1)
		assert.Equal(t, []string{"1", "2"}, records[0].Values())
	})

	t.Run("byte-order mark stripped from first data field without header", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "\xEF\xBB\xBFa,1\nb,2\n"))

		records := collectRecords(t, r.Records())
		require.Len(t, records, 2)
		assert.Equal(t, []string{"a", "1"}, records[0].Values())
		assert.Equal(t, []string{"b", "2"}, records[1].Values())
	})

	t.Run("iterator is not restartable", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "a,1\nb,2\n"))

		it := r.Records()
		assert.Len(t, collectRecords(t, it), 2)
		assert.False(t, it.Next(), "drained iterator stays exhausted")

		// A fresh iteration starts over from the rewound source.
		assert.Len(t, collectRecords(t, r.Records()), 2)
	})
}

func TestReaderCount(t *testing.T) {
	t.Parallel()

	r := NewReader(mustStringSource(t, "name,age\nAnn,30\nBo,25\n"))
	require.NoError(t, r.SetHeaderOffset(0))

	n, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Cached on repeat.
	n, err = r.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Changing the header position clears the cache: with no header, the
	// former header row counts as data.
	require.NoError(t, r.SetHeaderOffset(NoHeader))
	n, err = r.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
