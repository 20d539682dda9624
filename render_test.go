package tabq

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSetRenderASCII(t *testing.T) {
	t.Parallel()

	t.Run("keyed records", func(t *testing.T) {
		t.Parallel()
		rs := processKeyed(t, "name,age\nAnn,30\nBo,25\n")
		var buf bytes.Buffer
		require.NoError(t, rs.RenderASCII(&buf))
		out := buf.String()
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "Ann")
		assert.Contains(t, out, "25")
		assert.Contains(t, out, "+")
	})

	t.Run("positional records render without a header row", func(t *testing.T) {
		t.Parallel()
		r := NewReader(mustStringSource(t, "a,1\nb,2\n"))
		rs, err := NewStatement().Process(r)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, rs.RenderASCII(&buf))
		out := buf.String()
		assert.Contains(t, out, "a")
		assert.Contains(t, out, "2")
	})

	t.Run("consumes the cursor", func(t *testing.T) {
		t.Parallel()
		rs := processKeyed(t, "name\nAnn\n")
		var buf bytes.Buffer
		require.NoError(t, rs.RenderASCII(&buf))
		records, err := rs.All()
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
