// Package histfile parses the combined-histogram and conditional-combined
// text formats (spec.md §6) into internal/prob.Combined / prob.Conditional
// values. Both grammars are bespoke to this engine, so — like enumset —
// parsing is hand-rolled on bufio.Scanner and regexp rather than a
// third-party format library (see DESIGN.md).
package histfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/prob"
)

var (
	headerRe    = regexp.MustCompile(`^@(\w+)\s*=\s*(.+)$`)
	exactLineRe = regexp.MustCompile(`^p\(X\)\s*=\s*([-0-9.eE]+)\s+for\s+X\s*=\s*\{\s*(.+?)\s*\}$`)
	bucketLineRe = regexp.MustCompile(`^p\(X\)\s*=\s*([-0-9.eE]+)\s+for\s+X\s*=\s*\{\s*x\s+in\s+\[\s*([-0-9.eE]+)\s*,\s*([-0-9.eE]+)\s*\)\s*\}$`)
	conditionRe = regexp.MustCompile(`^@condition\s*=\s*\[\s*([-0-9.eE]+)\s*,\s*([-0-9.eE]+)\s*\)$`)
)

// lineScanner wraps bufio.Scanner with 1-indexed line tracking and
// comment/blank-line skipping shared by both grammars.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
	path string
}

func newLineScanner(path string, r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &lineScanner{sc: sc, path: path}
}

func (ls *lineScanner) next() (string, bool) {
	for ls.sc.Scan() {
		ls.line++
		text := ls.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		return text, true
	}
	return "", false
}

func (ls *lineScanner) errf(format string, args ...any) error {
	return generr.NewDataFormatError(ls.path, ls.line, fmt.Sprintf(format, args...))
}

// LoadCombined parses one combined-histogram block (spec.md §6).
func LoadCombined(path string, r io.Reader) (prob.Combined, error) {
	ls := newLineScanner(path, r)
	return loadCombinedFrom(ls)
}

func loadCombinedFrom(ls *lineScanner) (prob.Combined, error) {
	e, err := expectHeaderInt(ls, "numberofexactvals")
	if err != nil {
		return prob.Combined{}, err
	}
	b, err := expectHeaderInt(ls, "numberofbins")
	if err != nil {
		return prob.Combined{}, err
	}
	nullProb, err := expectHeaderFloat(ls, "nullprobability")
	if err != nil {
		return prob.Combined{}, err
	}

	exact := make([]prob.ExactValue, 0, e)
	for i := 0; i < e; i++ {
		text, ok := ls.next()
		if !ok {
			return prob.Combined{}, ls.errf("expected %d exact-value lines, found %d", e, i)
		}
		m := exactLineRe.FindStringSubmatch(text)
		if m == nil {
			return prob.Combined{}, ls.errf("malformed exact-value line %q", text)
		}
		p, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return prob.Combined{}, ls.errf("malformed probability: %v", err)
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return prob.Combined{}, ls.errf("malformed exact value: %v", err)
		}
		exact = append(exact, prob.ExactValue{Value: v, Prob: p})
	}

	buckets := make([]prob.Bucket, 0, b)
	for i := 0; i < b; i++ {
		text, ok := ls.next()
		if !ok {
			return prob.Combined{}, ls.errf("expected %d bucket lines, found %d", b, i)
		}
		m := bucketLineRe.FindStringSubmatch(text)
		if m == nil {
			return prob.Combined{}, ls.errf("malformed bucket line %q", text)
		}
		p, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return prob.Combined{}, ls.errf("malformed probability: %v", err)
		}
		min, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return prob.Combined{}, ls.errf("malformed bucket min: %v", err)
		}
		max, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return prob.Combined{}, ls.errf("malformed bucket max: %v", err)
		}
		buckets = append(buckets, prob.Bucket{Min: min, Max: max, Prob: p})
	}

	return prob.NewCombined(exact, buckets, nullProb), nil
}

func expectHeaderInt(ls *lineScanner, key string) (int, error) {
	text, ok := ls.next()
	if !ok {
		return 0, ls.errf("expected @%s header", key)
	}
	m := headerRe.FindStringSubmatch(text)
	if m == nil || m[1] != key {
		return 0, ls.errf("expected @%s header, got %q", key, text)
	}
	n, err := strconv.Atoi(strings.TrimSpace(m[2]))
	if err != nil {
		return 0, ls.errf("malformed @%s value: %v", key, err)
	}
	return n, nil
}

func expectHeaderFloat(ls *lineScanner, key string) (float64, error) {
	text, ok := ls.next()
	if !ok {
		return 0, ls.errf("expected @%s header", key)
	}
	m := headerRe.FindStringSubmatch(text)
	if m == nil || m[1] != key {
		return 0, ls.errf("expected @%s header, got %q", key, text)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
	if err != nil {
		return 0, ls.errf("malformed @%s value: %v", key, err)
	}
	return v, nil
}
