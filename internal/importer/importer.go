// Package importer parses CSV exports into ledger transactions. Formats
// register themselves in a registry and can be picked explicitly or sniffed
// from the header row.
package importer

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/kmellea/moneylens/internal/model"
)

// Result is the outcome of parsing one file.
type Result struct {
	Txns    []model.Transaction
	Skipped int
}

// Parser converts one CSV export into ledger transactions.
type Parser interface {
	// Format names the parser for --format and detection output.
	Format() string
	// Sniff reports whether a header row belongs to this format.
	Sniff(header []string) bool
	// Parse reads the whole file including the header row.
	Parse(r io.Reader) (Result, error)
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
	order   []string
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, key)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists registered format names sorted.
func (r *Registry) Formats() []string {
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// Detect returns the first parser whose Sniff accepts the header, or nil.
func (r *Registry) Detect(header []string) Parser {
	norm := normalizeHeader(header)
	for _, key := range r.order {
		if p := r.parsers[key]; p.Sniff(norm) {
			return p
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MoneyManagerParser{})
	r.Register(&GenericParser{})
	return r
}

// normalizeHeader lowercases and trims header cells and drops a UTF-8 BOM
// on the first one, which bank exports love to carry.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "﻿")
		}
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// readHeader pulls the first CSV record out of raw file bytes.
func readHeader(data []byte) ([]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	return cr.Read()
}
