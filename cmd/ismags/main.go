// Command ismags runs the Index-based Subgraph Matching Algorithm with
// General Symmetries against a host network and a motif description,
// writing every discovered instance to an output file.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ldemailly/ismags/internal/hostgraph"
	"github.com/ldemailly/ismags/internal/linktype"
	"github.com/ldemailly/ismags/internal/motif"
	"github.com/ldemailly/ismags/internal/search"
)

var (
	linkTypesFlag = flag.String("l", "", "Link types separated by commas, e.g. \"A u P P\" or \"A u P P,A d P P\" (required)")
	networksFlag  = flag.String("n", "", "Network files separated by commas, e.g. file1.txt or file1.txt,file2.txt (required)")
	motifFlag     = flag.String("m", "", "Motif description, e.g. AA0A00 (required)")
	outputFlag    = flag.String("o", "", "Output file name (required)")
	folderFlag    = flag.String("f", "", "Folder path containing network files")
	saveLinksFlag = flag.Bool("save-links", false, "Also write the set of host node pairs used by any found instance to <output>.links")
)

func main() {
	cli.ArgsHelp = ""
	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()

	if *linkTypesFlag == "" || *networksFlag == "" || *motifFlag == "" || *outputFlag == "" {
		log.Fatalf("missing required flag: -l, -n, -m and -o must all be set")
	}

	linkTypeItems := splitTrim(*linkTypesFlag)
	networkFiles := splitTrim(*networksFlag)
	if *folderFlag != "" {
		prefix := *folderFlag
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		for i, f := range networkFiles {
			networkFiles[i] = prefix + f
		}
	}

	registry := linktype.NewRegistry()
	kindsForFiles, translation := buildLinkTypes(linkTypeItems, registry)
	if len(kindsForFiles) != len(networkFiles) {
		log.Fatalf("link types (%d) and network files (%d) count mismatch", len(kindsForFiles), len(networkFiles))
	}

	log.Infof("Reading in networks...")
	graph, err := hostgraph.LoadFiles(networkFiles, kindsForFiles, registry.NumLinkIDs())
	if err != nil {
		log.Fatalf("reading networks: %v", err)
	}

	log.Infof("Creating motif data structure...")
	m, err := motif.ParseDescription(*motifFlag, translation)
	if err != nil {
		log.Fatalf("parsing motif: %v", err)
	}

	finder := search.NewFinder(graph)
	instances, links := finder.Find(m, *saveLinksFlag)

	if err := motif.WriteInstances(instances, *outputFlag); err != nil {
		log.Errf("writing instances: %v", err)
		os.Exit(1)
	}

	if *saveLinksFlag {
		if err := motif.WriteLinks(links, *outputFlag+".links"); err != nil {
			log.Errf("writing links: %v", err)
			os.Exit(1)
		}
	}
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// buildLinkTypes walks the link-type items (one per network file, tetrad
// form "<char> <u|d> <sourceNetwork> <destinationNetwork>") and returns
// the kind to use for each file plus the uppercase-char translation table
// ParseDescription needs. A tetrad that doesn't have exactly four
// whitespace-separated tokens is dropped with a warning; if it's the only
// item given, the program exits instead.
func buildLinkTypes(items []string, registry *linktype.Registry) ([]*linktype.Kind, map[byte]*linktype.Kind) {
	kinds := make([]*linktype.Kind, 0, len(items))
	translation := make(map[byte]*linktype.Kind)
	byChar := make(map[string]*linktype.Kind)

	log.Infof("Creating link types...")
	for _, item := range items {
		tokens := strings.Fields(item)
		if len(tokens) != 4 {
			log.Warnf("link type `%s` isn't \"<char> <u|d> <src> <dst>\", ignoring it.", item)
			if len(items) == 1 {
				log.Fatalf("no valid link types to process, exiting.")
			}
			continue
		}

		char, dir, srcNet, dstNet := tokens[0], tokens[1], tokens[2], tokens[3]
		kind, ok := byChar[char]
		if !ok {
			kind = registry.New(dir == "d", srcNet, dstNet)
			byChar[char] = kind
		}
		kinds = append(kinds, kind)
		if len(char) > 0 {
			translation[upperByte(char[0])] = kind
		}
	}
	return kinds, translation
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
