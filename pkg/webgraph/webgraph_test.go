package webgraph

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/linkrank/pkg/errors"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:      "Empty",
			input:     "",
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:      "SingleEdge",
			input:     "a b\n",
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g *Graph) {
				if got := g.Out("a"); !slices.Equal(got, []string{"b"}) {
					t.Errorf("Out(a) = %v, want [b]", got)
				}
				if !g.HasNode("b") {
					t.Error("target-only node b should be in the node set")
				}
			},
		},
		{
			name:      "DuplicateEdgesPreserved",
			input:     "a b\na b\na c\n",
			wantNodes: 3,
			wantEdges: 3,
			check: func(t *testing.T, g *Graph) {
				if got := g.Out("a"); !slices.Equal(got, []string{"b", "b", "c"}) {
					t.Errorf("Out(a) = %v, want [b b c]", got)
				}
				if g.OutDegree("a") != 3 {
					t.Errorf("OutDegree(a) = %d, want 3", g.OutDegree("a"))
				}
			},
		},
		{
			name:      "DanglingTarget",
			input:     "a b\nc a\n",
			wantNodes: 3,
			wantEdges: 2,
			check: func(t *testing.T, g *Graph) {
				if g.OutDegree("b") != 0 {
					t.Errorf("OutDegree(b) = %d, want 0", g.OutDegree("b"))
				}
				if g.Out("b") != nil {
					t.Errorf("Out(b) = %v, want nil", g.Out("b"))
				}
			},
		},
		{
			name:      "SelfLoop",
			input:     "a a\n",
			wantNodes: 1,
			wantEdges: 1,
		},
		{
			name:      "NoTrailingNewline",
			input:     "a b",
			wantNodes: 2,
			wantEdges: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Build error: %v", err)
			}
			nodes, edges := g.Stats()
			if nodes != tt.wantNodes {
				t.Errorf("node count = %d, want %d", nodes, tt.wantNodes)
			}
			if edges != tt.wantEdges {
				t.Errorf("edge count = %d, want %d", edges, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"OneToken", "onlyonetoken\n"},
		{"ThreeTokens", "a b c\n"},
		{"BlankLine", "a b\n\nc d\n"},
		{"TrailingBlankLine", "a b\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Build should fail on malformed input")
			}
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("error code = %s, want MALFORMED_INPUT", errors.GetCode(err))
			}
			if g != nil {
				t.Error("no graph should be returned on failure")
			}
		})
	}
}

func TestBuildMalformedNamesLine(t *testing.T) {
	_, err := Build(strings.NewReader("a b\nc d\nbroken\n"))
	if err == nil {
		t.Fatal("Build should fail")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name line 3: %v", err)
	}
}

func TestNodesFirstSeenOrder(t *testing.T) {
	g, err := Build(strings.NewReader("b a\na c\nd b\n"))
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := []string{"b", "a", "c", "d"}
	if got := g.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}

	// Returned slice is a copy.
	g.Nodes()[0] = "mutated"
	if g.Nodes()[0] != "b" {
		t.Error("Nodes() should return a copy")
	}
}

func TestAddEdgeEmptyID(t *testing.T) {
	g := New()
	if err := g.AddEdge("", "b"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty source should fail with INVALID_INPUT, got %v", err)
	}
	if err := g.AddEdge("a", ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty target should fail with INVALID_INPUT, got %v", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("failed AddEdge should not register nodes, count = %d", g.NodeCount())
	}
}
