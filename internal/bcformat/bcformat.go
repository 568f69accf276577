// Package bcformat reads the Beasley-Christofides benchmark text format the
// CLI accepts as input: a header line of counts, two resource-bound lines,
// then one edge line per edge. This parser is the CLI's concern, not the
// core engine's — it exists only to turn a benchmark file into
// engine.Engine construction calls.
//
// Format (whitespace-delimited, one record per line, blank lines and lines
// starting with '#' ignored):
//
//	numVertices numEdges numResources sourceID sinkID
//	minRes_1 minRes_2 ... minRes_R
//	maxRes_1 maxRes_2 ... maxRes_R
//	tail head cost r_1 r_2 ... r_R   (repeated numEdges times)
package bcformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rcspp-go/rcspp/engine"
)

// ErrMalformed is wrapped with line-specific context for any parse failure.
var ErrMalformed = errors.New("bcformat: malformed instance")

// EdgeRecord is one parsed edge line.
type EdgeRecord struct {
	Tail, Head int
	Cost       float64
	Resources  []float64
}

// Instance is a fully parsed BC-format benchmark file, not yet built into a
// graph.
type Instance struct {
	NumVertices   int
	NumResources  int
	SourceID      int
	SinkID        int
	MinResources  []float64
	MaxResources  []float64
	Edges         []EdgeRecord
}

// Parse reads r to completion and returns the parsed Instance.
func Parse(r io.Reader) (*Instance, error) {
	lines, err := significantLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected at least a header and two resource-bound lines", ErrMalformed)
	}

	header := strings.Fields(lines[0])
	if len(header) != 5 {
		return nil, fmt.Errorf("%w: header line %q: want 5 fields, got %d", ErrMalformed, lines[0], len(header))
	}
	numVertices, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header numVertices: %v", ErrMalformed, err)
	}
	numEdges, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("%w: header numEdges: %v", ErrMalformed, err)
	}
	numResources, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, fmt.Errorf("%w: header numResources: %v", ErrMalformed, err)
	}
	sourceID, err := strconv.Atoi(header[3])
	if err != nil {
		return nil, fmt.Errorf("%w: header sourceID: %v", ErrMalformed, err)
	}
	sinkID, err := strconv.Atoi(header[4])
	if err != nil {
		return nil, fmt.Errorf("%w: header sinkID: %v", ErrMalformed, err)
	}

	minRes, err := parseFloatRow(lines[1], numResources)
	if err != nil {
		return nil, fmt.Errorf("%w: min-resource line: %v", ErrMalformed, err)
	}
	maxRes, err := parseFloatRow(lines[2], numResources)
	if err != nil {
		return nil, fmt.Errorf("%w: max-resource line: %v", ErrMalformed, err)
	}

	edgeLines := lines[3:]
	if len(edgeLines) != numEdges {
		return nil, fmt.Errorf("%w: header declares %d edges, found %d edge lines", ErrMalformed, numEdges, len(edgeLines))
	}

	edges := make([]EdgeRecord, 0, numEdges)
	for i, line := range edgeLines {
		fields := strings.Fields(line)
		if len(fields) != 3+numResources {
			return nil, fmt.Errorf("%w: edge line %d %q: want %d fields, got %d", ErrMalformed, i, line, 3+numResources, len(fields))
		}
		tail, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: edge line %d tail: %v", ErrMalformed, i, err)
		}
		head, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: edge line %d head: %v", ErrMalformed, i, err)
		}
		cost, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: edge line %d cost: %v", ErrMalformed, i, err)
		}
		resources, err := parseFloatRow(strings.Join(fields[3:], " "), numResources)
		if err != nil {
			return nil, fmt.Errorf("%w: edge line %d resources: %v", ErrMalformed, i, err)
		}
		edges = append(edges, EdgeRecord{Tail: tail, Head: head, Cost: cost, Resources: resources})
	}

	return &Instance{
		NumVertices:  numVertices,
		NumResources: numResources,
		SourceID:     sourceID,
		SinkID:       sinkID,
		MinResources: minRes,
		MaxResources: maxRes,
		Edges:        edges,
	}, nil
}

// Build constructs an engine.Engine from the parsed instance: every vertex
// id in [0, NumVertices) is registered, then every edge is added. The
// caller still owns calling Set* and Run.
func (inst *Instance) Build() (*engine.Engine, error) {
	e, err := engine.New(inst.NumVertices, len(inst.Edges), inst.SourceID, inst.SinkID, inst.MaxResources, inst.MinResources)
	if err != nil {
		return nil, err
	}
	for v := 0; v < inst.NumVertices; v++ {
		if err := e.AddNode(v); err != nil {
			return nil, err
		}
	}
	for _, edge := range inst.Edges {
		if err := e.AddEdge(edge.Tail, edge.Head, edge.Cost, edge.Resources); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseFloatRow(line string, want int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) != want {
		return nil, fmt.Errorf("want %d values, got %d", want, len(fields))
	}
	out := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// significantLines returns every line of r with comments and blank lines
// stripped, preserving order.
func significantLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bcformat: scan: %w", err)
	}
	return lines, nil
}
