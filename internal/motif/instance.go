package motif

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"fortio.org/log"

	"github.com/ldemailly/ismags/internal/hostgraph"
)

// Instance is one occurrence of the motif in the host graph: Mapping[i] is
// the host node bound to motif node i.
type Instance struct {
	Mapping []*hostgraph.Node
}

func NewInstance(mapping []*hostgraph.Node) Instance {
	cp := make([]*hostgraph.Node, len(mapping))
	copy(cp, mapping)
	return Instance{Mapping: cp}
}

func (i Instance) String() string {
	parts := make([]string, len(i.Mapping))
	for idx, n := range i.Mapping {
		parts[idx] = n.Description
	}
	return strings.Join(parts, ";")
}

// WriteInstances writes one line per instance to the named output file.
func WriteInstances(instances []Instance, output string) error {
	log.Infof("Writing motif instances to `%s`", output)
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file %q: %w", output, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, inst := range instances {
		if _, err := fmt.Fprintln(w, inst.String()); err != nil {
			return fmt.Errorf("writing to %q: %w", output, err)
		}
	}
	return w.Flush()
}
