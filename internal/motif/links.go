package motif

import (
	"bufio"
	"fmt"
	"os"

	"fortio.org/log"

	"github.com/ldemailly/ismags/internal/hostgraph"
)

// LinkPair is an unordered pair of host nodes participating in at least
// one discovered instance, canonically ordered by id (min, max).
type LinkPair [2]*hostgraph.Node

func NewLinkPair(a, b *hostgraph.Node) LinkPair {
	if a.ID <= b.ID {
		return LinkPair{a, b}
	}
	return LinkPair{b, a}
}

// WriteLinks writes the used-links set, one "descA;descB" pair per line,
// to the supplemental output file requested by -save-links.
func WriteLinks(pairs []LinkPair, output string) error {
	log.Infof("Writing used links to `%s`", output)
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating links file %q: %w", output, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%s;%s\n", p[0].Description, p[1].Description); err != nil {
			return fmt.Errorf("writing to %q: %w", output, err)
		}
	}
	return w.Flush()
}
