// Package enumset loads the enumerated-set text file format (spec.md §6):
// a header line "@numberofvalues = N", then N lines of "<i>TAB<value>",
// optionally followed by a "# comment". Values may be quoted; \" and \n are
// recognised escapes. Once loaded a Set is immutable for the run and shared
// by every record that references its domain.
package enumset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lattice-data/seqgen/internal/generr"
)

// Set is an ordered sequence of distinct string labels for one domain name.
type Set struct {
	Name   string
	Values []string
}

// Len returns the number of values in the domain.
func (s *Set) Len() int { return len(s.Values) }

// IndexOf returns the index of v in the domain, or false if v is not a
// member.
func (s *Set) IndexOf(v string) (int, bool) {
	for i, x := range s.Values {
		if x == v {
			return i, true
		}
	}
	return -1, false
}

const headerPrefix = "@numberofvalues"

// Load parses one enum-set file from r; name is used for error reporting
// and as the Set's domain name.
func Load(name string, r io.Reader) (*Set, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			line++
			text := stripComment(scanner.Text())
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			return text, true
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, generr.NewDataFormatError(name, line, "empty enum-set file, expected @numberofvalues header")
	}
	n, err := parseHeaderCount(header)
	if err != nil {
		return nil, generr.NewDataFormatError(name, line, err.Error())
	}

	set := &Set{Name: name, Values: make([]string, 0, n)}
	for len(set.Values) < n {
		text, ok := nextLine()
		if !ok {
			return nil, generr.NewDataFormatError(name, line, fmt.Sprintf("expected %d values, found %d", n, len(set.Values)))
		}
		tab := strings.IndexByte(text, '\t')
		if tab < 0 {
			return nil, generr.NewDataFormatError(name, line, "expected <index>TAB<value>")
		}
		idxStr, rawValue := text[:tab], text[tab+1:]
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil {
			return nil, generr.NewDataFormatError(name, line, "malformed index: "+err.Error())
		}
		if idx != len(set.Values) {
			return nil, generr.NewDataFormatError(name, line, fmt.Sprintf("out-of-order index %d, expected %d", idx, len(set.Values)))
		}
		value, err := unquote(rawValue)
		if err != nil {
			return nil, generr.NewDataFormatError(name, line, err.Error())
		}
		set.Values = append(set.Values, value)
	}
	return set, nil
}

func stripComment(s string) string {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return s[:i]
			}
		}
	}
	return s
}

func parseHeaderCount(header string) (int, error) {
	if !strings.HasPrefix(header, headerPrefix) {
		return 0, fmt.Errorf("expected %q header, got %q", headerPrefix, header)
	}
	parts := strings.SplitN(header, "=", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed header %q", header)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("malformed value count: %w", err)
	}
	return n, nil
}

// unquote strips an optional surrounding pair of double quotes and resolves
// \" and \n escapes (spec.md §6).
func unquote(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			switch raw[i+1] {
			case '"':
				b.WriteByte('"')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(raw[i])
	}
	return b.String(), nil
}
