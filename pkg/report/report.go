// Package report defines the canonical wire format for ranking results.
//
// This package sits at the serialization boundary: the same JSON document
// is written by `linkrank rank -o`, stored by the result cache, and
// returned by the HTTP API. The text rendering mirrors the classic
// rank-per-line output:
//
//	66.67	http://example.org/a
//	33.33	http://example.org/b
//
// where the score column is the raw score scaled by 100 with two decimals,
// highest first.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/linkrank/pkg/rank"
)

// Result is the canonical serialization of one ranking run.
type Result struct {
	ID      string       `json:"id,omitempty"` // run identifier (set by the API)
	Method  string       `json:"method"`       // "stochastic" or "distribution"
	Steps   int          `json:"steps"`        // transitions or iterations performed
	Seed    *int64       `json:"seed,omitempty"`
	Nodes   int          `json:"nodes"`
	Edges   int          `json:"edges"`
	Entries []rank.Entry `json:"entries"` // top-N, score descending
	Elapsed Duration     `json:"elapsed_ms"`
	Cached  bool         `json:"cached,omitempty"`
}

// Duration serializes as integer milliseconds for a stable wire format.
type Duration time.Duration

// MarshalJSON encodes the duration as whole milliseconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).Milliseconds())
}

// UnmarshalJSON decodes whole milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// Marshal converts a Result to indented JSON bytes.
func Marshal(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a Result as indented JSON to w.
func Write(r *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// Read decodes a Result from JSON.
func Read(rd io.Reader) (*Result, error) {
	var r Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &r, nil
}

// Unmarshal decodes a Result from JSON bytes.
func Unmarshal(data []byte) (*Result, error) {
	return Read(bytes.NewReader(data))
}

// FormatEntry renders one ranking line: the score scaled by 100 with two
// decimals, a tab, and the node identifier.
func FormatEntry(e rank.Entry) string {
	return fmt.Sprintf("%.2f\t%s", 100*e.Score, e.Node)
}

// WriteText renders the entries of a Result in rank-per-line form.
func WriteText(r *Result, w io.Writer) error {
	for _, e := range r.Entries {
		if _, err := fmt.Fprintln(w, FormatEntry(e)); err != nil {
			return err
		}
	}
	return nil
}
