package webgraph

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/linkrank/pkg/errors"
)

// maxLineBytes bounds a single edge-list line. URLs are long but not that long.
const maxLineBytes = 1 << 20

// Build constructs a Graph from a line-oriented edge list.
//
// Each line must contain exactly two whitespace-separated tokens,
// "source target", describing one directed edge. Lines are not trimmed of
// semantic content: a blank line, a single token, or three tokens all fail
// with a MALFORMED_INPUT error naming the offending line number, and no
// graph is returned. Edges are not deduplicated and identifiers are not
// validated as URLs.
func Build(r io.Reader) (*Graph, error) {
	g := New()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"line %d: expected 2 whitespace-separated fields, got %d", line, len(fields))
		}
		if err := g.AddEdge(fields[0], fields[1]); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "reading edge list")
	}

	return g, nil
}
