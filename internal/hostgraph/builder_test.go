package hostgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldemailly/ismags/internal/linktype"
)

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o600))
	return p
}

func TestLoadFilesUndirected(t *testing.T) {
	dir := t.TempDir()
	r := linktype.NewRegistry()
	kind := r.New(false, "P", "P")

	f := writeTempFile(t, dir, "edges.tsv", "1\t2\n1\t3\n# comment\t1\n1\t1\n")

	g, err := LoadFiles([]string{f}, []*linktype.Kind{kind}, r.NumLinkIDs())
	require.NoError(t, err)

	require.Equal(t, 3, g.NumNodes())
	require.Equal(t, 2, g.NumLinks)

	n1, ok := g.NodeByDescription("1P")
	require.True(t, ok)
	require.Len(t, n1.NeighboursByType[kind.Forward], 2)
	require.Equal(t, "2P", n1.NeighboursByType[kind.Forward][0].Description)
	require.Equal(t, "3P", n1.NeighboursByType[kind.Forward][1].Description)

	n2, ok := g.NodeByDescription("2P")
	require.True(t, ok)
	require.Len(t, n2.NeighboursByType[kind.Forward], 1)
	require.Equal(t, "1P", n2.NeighboursByType[kind.Forward][0].Description)
}

func TestLoadFilesDuplicateEdgesIgnored(t *testing.T) {
	dir := t.TempDir()
	r := linktype.NewRegistry()
	kind := r.New(true, "A", "B")

	f := writeTempFile(t, dir, "edges.tsv", "1\t2\n1\t2\n1\t2\n")

	g, err := LoadFiles([]string{f}, []*linktype.Kind{kind}, r.NumLinkIDs())
	require.NoError(t, err)
	require.Equal(t, 1, g.NumLinks)

	n1, _ := g.NodeByDescription("1A")
	require.Len(t, n1.NeighboursByType[kind.Forward], 1)
}

func TestLoadFilesDirectedSeparatesDirections(t *testing.T) {
	dir := t.TempDir()
	r := linktype.NewRegistry()
	kind := r.New(true, "A", "B")

	f := writeTempFile(t, dir, "edges.tsv", "1\t2\n")

	g, err := LoadFiles([]string{f}, []*linktype.Kind{kind}, r.NumLinkIDs())
	require.NoError(t, err)

	n1, _ := g.NodeByDescription("1A")
	n2, _ := g.NodeByDescription("2B")
	require.Len(t, n1.NeighboursByType[kind.Forward], 1)
	require.Empty(t, n1.NeighboursByType[kind.Inverse])
	require.Len(t, n2.NeighboursByType[kind.Inverse], 1)
	require.Empty(t, n2.NeighboursByType[kind.Forward])
}
