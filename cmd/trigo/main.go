package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/oxtrig/trig/pkg/rdfterm"
	"github.com/oxtrig/trig/pkg/trig"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: trigo <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo         - Parse and rewrite a small built-in sample document")
		fmt.Println("  cat <file>   - Parse a TriG file and rewrite it as collapsed TriG")
		fmt.Println("  count <file> - Parse a TriG file and report the quad count per graph")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		runDemo()
	case "cat":
		if len(os.Args) < 3 {
			fmt.Println("Usage: trigo cat <file>")
			os.Exit(1)
		}
		runCat(os.Args[2])
	case "count":
		if len(os.Args) < 3 {
			fmt.Println("Usage: trigo count <file>")
			os.Exit(1)
		}
		runCount(os.Args[2])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

const sampleDoc = `@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix ex: <http://example.org/> .

ex:alice foaf:name "Alice" ;
	foaf:age 30 ;
	foaf:knows ex:bob .

ex:graph1 {
	ex:alice foaf:name "Alice in Graph1" .
	ex:bob foaf:name "Bob in Graph1" .
}
`

func runDemo() {
	fmt.Println("=== trigo demo ===")
	fmt.Println()
	fmt.Println("Input:")
	fmt.Println(sampleDoc)

	r := trig.NewReader(trig.NewConfig())
	r.Extend([]byte(sampleDoc))
	r.End()

	quads, errs := drainAll(r)
	for _, e := range errs {
		log.Printf("parse error: %v", e)
	}
	fmt.Printf("Parsed %d quads\n\n", len(quads))

	fmt.Println("Rewritten:")
	w := trig.NewWriter(os.Stdout)
	for _, q := range quads {
		if err := w.WriteQuad(q); err != nil {
			log.Fatalf("write error: %v", err)
		}
	}
	if err := w.Finish(); err != nil {
		log.Fatalf("write error: %v", err)
	}
}

func runCat(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	pr := trig.NewPullReader(f, trig.NewConfig().WithQuotedTriples())
	w := trig.NewWriter(os.Stdout)
	for {
		q, err := pr.Next()
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		if q == nil {
			break
		}
		if err := w.WriteQuad(q); err != nil {
			log.Fatalf("write error: %v", err)
		}
	}
	if err := w.Finish(); err != nil {
		log.Fatalf("write error: %v", err)
	}
}

func runCount(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	pr := trig.NewPullReader(f, trig.NewConfig().WithQuotedTriples())
	counts := make(map[string]int)
	var order []string
	for {
		q, err := pr.Next()
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		if q == nil {
			break
		}
		g := q.Graph.String()
		if _, seen := counts[g]; !seen {
			order = append(order, g)
		}
		counts[g]++
	}

	for _, g := range order {
		fmt.Printf("%-40s %d\n", g, counts[g])
	}
}

// drainAll pulls every quad the reader has ready, including what End
// unblocks for a trailing statement with no following whitespace.
func drainAll(r *trig.Reader) ([]*rdfterm.Quad, []error) {
	var quads []*rdfterm.Quad
	var errs []error
	for {
		q, err := r.ReadNext()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if q == nil {
			if r.IsEnd() {
				return quads, errs
			}
			return quads, append(errs, io.ErrUnexpectedEOF)
		}
		quads = append(quads, q)
	}
}
