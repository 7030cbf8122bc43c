package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumDeterministic(t *testing.T) {
	image := []byte(`{"id":"A","seq":0}`)

	d1, err := Sum(image)
	require.NoError(t, err)

	d2, err := Sum(image)
	require.NoError(t, err)

	require.True(t, d1.Equal(d2))
	require.Equal(t, d1.String(), d2.String())
}

func TestSumDiffersOnContent(t *testing.T) {
	d1, err := Sum([]byte("one"))
	require.NoError(t, err)

	d2, err := Sum([]byte("two"))
	require.NoError(t, err)

	require.False(t, d1.Equal(d2))
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Sum([]byte("round-trip"))
	require.NoError(t, err)

	parsed, err := Parse(d.String())
	require.NoError(t, err)

	require.True(t, d.Equal(parsed))
}

func TestUndefIsInvalid(t *testing.T) {
	require.False(t, Undef.IsValid())
	require.Equal(t, "", Undef.String())
}

func TestEncodeCanonicalIsOrderIndependent(t *testing.T) {
	m1 := map[string]int{}
	m1["a"] = 1
	m1["b"] = 2

	m2 := map[string]int{}
	m2["b"] = 2
	m2["a"] = 1

	b1, err := Encode(m1)
	require.NoError(t, err)

	b2, err := Encode(m2)
	require.NoError(t, err)

	require.Equal(t, b1, b2)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	type doc struct {
		ID  string `codec:"id"`
		Seq int    `codec:"seq"`
	}

	original := doc{ID: "A", Seq: 3}

	raw, err := Encode(original)
	require.NoError(t, err)

	var decoded doc
	require.NoError(t, Decode(raw, &decoded))

	require.Equal(t, original, decoded)
}
