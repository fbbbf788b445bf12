// Package hostsfile implements reading, mutating and writing the system
// hosts file.
package hostsfile

import (
	"strings"
)

// Entry represents a single line of the hosts file: an optional address, an
// ordered list of hostnames and an optional trailing comment.
type Entry struct {
	Address   string
	Hostnames []string
	Comment   string
	// HasComment distinguishes a line with no comment from a line whose
	// comment is the empty string (a bare "#").
	HasComment bool
}

// IsBlank reports whether the entry carries no data at all. Blank lines in
// the source file parse to blank entries and are preserved on write.
func (e Entry) IsBlank() bool {
	return e.Address == "" && len(e.Hostnames) == 0 && !e.HasComment
}

// HasHostname reports whether the entry maps the given hostname.
// Matching is case-insensitive.
func (e Entry) HasHostname(name string) bool {
	for _, h := range e.Hostnames {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

// ParseLine parses one raw line of a hosts file. It never fails: malformed
// lines yield an entry with fewer populated fields. Everything after the
// first '#' is the comment, kept verbatim. The remainder is split on
// whitespace runs; the first token is the address, the rest are hostnames.
// No address syntax validation is performed.
func ParseLine(raw string) Entry {
	var e Entry

	data := raw
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		e.Comment = raw[idx+1:]
		e.HasComment = true
		data = raw[:idx]
	}

	fields := strings.Fields(data)
	if len(fields) == 0 {
		return e
	}

	e.Address = fields[0]
	if len(fields) > 1 {
		e.Hostnames = fields[1:]
	}
	return e
}

// Line renders the entry back to its hosts-file text form: address, a single
// tab, hostnames joined by single spaces, then the comment. The space before
// '#' is omitted only when the line carries no address and no hostnames.
func (e Entry) Line() string {
	var sb strings.Builder

	if e.Address != "" {
		sb.WriteString(e.Address)
		sb.WriteByte('\t')
	}
	sb.WriteString(strings.Join(e.Hostnames, " "))

	if e.HasComment {
		if e.Address != "" || len(e.Hostnames) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('#')
		sb.WriteString(e.Comment)
	}

	return sb.String()
}

// Serialize renders the entry collection to the line-oriented hosts format,
// in order, with the overall buffer trimmed of leading and trailing
// whitespace. For entries produced by ParseLine this is the exact inverse of
// parsing, modulo collapsing of whitespace runs to single separators.
func Serialize(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
