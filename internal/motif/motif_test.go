package motif

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldemailly/ismags/internal/linktype"
)

func translationFor(kinds map[byte]*linktype.Kind) map[byte]*linktype.Kind {
	return kinds
}

func TestParseDescriptionInvalidLength(t *testing.T) {
	r := linktype.NewRegistry()
	a := r.New(false, "P", "P")
	_, err := ParseDescription("AA", translationFor(map[byte]*linktype.Kind{'A': a}))
	require.Error(t, err)
}

func TestParseDescriptionTriangleUndirected(t *testing.T) {
	r := linktype.NewRegistry()
	a := r.New(false, "P", "P")
	m, err := ParseDescription("AAA", translationFor(map[byte]*linktype.Kind{'A': a}))
	require.NoError(t, err)
	require.Equal(t, 3, m.NumNodes)
	for i := 0; i < 3; i++ {
		require.Len(t, m.Conn[i], 2)
	}
}

func TestParseDescriptionDirectionFromCase(t *testing.T) {
	r := linktype.NewRegistry()
	a := r.New(true, "P", "P")
	m, err := ParseDescription("a", translationFor(map[byte]*linktype.Kind{'A': a}))
	require.NoError(t, err)
	require.Equal(t, 2, m.NumNodes)
	// lowercase => addLink(1, 0): start=1 end=0, forward id on node 1.
	require.Equal(t, a.Forward, m.Links[1][0].LinkID)
	require.Equal(t, a.Inverse, m.Links[0][0].LinkID)
}

func TestSerializeRoundTrip(t *testing.T) {
	r := linktype.NewRegistry()
	a := r.New(true, "P", "P")
	b := r.New(false, "Q", "Q")
	translation := map[byte]*linktype.Kind{'A': a, 'B': b}

	for _, desc := range []string{"A0B0a0", "000", "BBB", "Aa0000"} {
		m, err := ParseDescription(desc, translation)
		require.NoError(t, err, desc)
		require.Equal(t, desc, m.Serialize(), desc)
	}
}

func TestParseDescriptionUnknownLinkType(t *testing.T) {
	r := linktype.NewRegistry()
	a := r.New(false, "P", "P")
	_, err := ParseDescription("Z", translationFor(map[byte]*linktype.Kind{'A': a}))
	require.Error(t, err)
}
