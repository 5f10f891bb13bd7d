package serverconfig

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"beammp-manager/core/errs"
)

// Section is the table holding the managed fields.
const Section = "General"

// Managed field names, in template order.
const (
	FieldName       = "Name"
	FieldPort       = "Port"
	FieldAuthKey    = "AuthKey"
	FieldMaxPlayers = "MaxPlayers"
	FieldMap        = "Map"
)

// ManagedFields lists every field this package may overwrite.
var ManagedFields = []string{FieldName, FieldPort, FieldAuthKey, FieldMaxPlayers, FieldMap}

// Authoritative is the caller's source of truth for the managed fields.
type Authoritative struct {
	ServerID   string
	ServerName string
	Port       int
	AuthKey    string
	MaxPlayers int
	StartMap   string
}

// rendered returns the TOML value token for each managed field.
func (a Authoritative) rendered() map[string]string {
	return map[string]string{
		FieldName:       quote(a.ServerName),
		FieldPort:       strconv.Itoa(a.Port),
		FieldAuthKey:    quote(a.AuthKey),
		FieldMaxPlayers: strconv.Itoa(a.MaxPlayers),
		FieldMap:        quote(a.StartMap),
	}
}

// Document is the raw content of a config file.
type Document struct {
	content []byte
}

// NewDocument wraps raw file content.
func NewDocument(content []byte) Document {
	return Document{content: bytes.Clone(content)}
}

// Bytes returns a copy of the content.
func (d Document) Bytes() []byte {
	return bytes.Clone(d.content)
}

// String returns the content as text.
func (d Document) String() string {
	return string(d.content)
}

// Equal reports whether two documents are byte-identical.
func (d Document) Equal(other Document) bool {
	return bytes.Equal(d.content, other.content)
}

// Report describes what Reconcile changed.
type Report struct {
	// Updated lists managed fields whose existing assignment was rewritten.
	Updated []string `json:"updated"`
	// Appended lists managed fields that were missing and have been added.
	Appended []string `json:"appended"`
	// Changed is true when the output differs from the input.
	Changed bool `json:"changed"`
}

// Reconcile rewrites the managed fields of doc with the values from a.
func Reconcile(doc Document, a Authoritative) (Document, Report, error) {
	if err := checkText(doc.content); err != nil {
		return Document{}, Report{}, err
	}

	values := a.rendered()
	lines := splitLines(string(doc.content))
	seen := make(map[string]bool, len(ManagedFields))
	var report Report

	out := make([]line, 0, len(lines)+len(ManagedFields)+2)
	section := ""
	generalEnd := -1 // index in out after which missing fields are inserted

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if name, ok := sectionHeader(ln.text); ok {
			section = name
			out = append(out, ln)
			if section == Section {
				generalEnd = len(out) - 1
			}
			continue
		}

		asg, isAssignment := parseAssignment(ln.text)
		if section == Section && isAssignment {
			if v, managed := values[asg.key]; managed {
				consumed, rewritten := asg.rewrite(lines, i, v)
				out = append(out, rewritten)
				i += consumed
				if !seen[asg.key] {
					report.Updated = append(report.Updated, asg.key)
				}
				seen[asg.key] = true
				generalEnd = len(out) - 1
				continue
			}
		}
		if isAssignment && asg.open != "" {
			// Lines inside an unmanaged multi-line string are value text.
			end := multilineEnd(lines, i, asg.open)
			out = append(out, lines[i:end+1]...)
			if section == Section {
				generalEnd = len(out) - 1
			}
			i = end
			continue
		}
		if section == Section {
			if strings.TrimSpace(ln.text) != "" {
				out = append(out, ln)
				generalEnd = len(out) - 1
				continue
			}
		}
		out = append(out, ln)
	}

	var missing []string
	for _, f := range ManagedFields {
		if !seen[f] {
			missing = append(missing, f)
		}
	}

	if len(missing) > 0 {
		eol := detectEOL(lines)
		trailing := len(out) == 0 || out[len(out)-1].eol != ""
		block := make([]line, 0, len(missing)+2)
		if generalEnd < 0 {
			if len(out) > 0 {
				block = append(block, line{eol: eol})
			}
			block = append(block, line{text: "[" + Section + "]", eol: eol})
		}
		for _, f := range missing {
			block = append(block, line{text: f + " = " + values[f], eol: eol})
		}

		insertAt := len(out)
		if generalEnd >= 0 {
			insertAt = generalEnd + 1
		}
		if insertAt == len(out) {
			if len(out) > 0 && out[len(out)-1].eol == "" {
				out[len(out)-1].eol = eol
			}
			if !trailing {
				block[len(block)-1].eol = ""
			}
		}
		out = append(out[:insertAt], append(block, out[insertAt:]...)...)
		report.Appended = missing
	}

	result := Document{content: []byte(joinLines(out))}
	report.Changed = !result.Equal(doc)
	return result, report, nil
}

// MissingFields lists managed fields with no assignment in the [General]
// section.
func MissingFields(doc Document) ([]string, error) {
	if err := checkText(doc.content); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	section := ""
	lines := splitLines(string(doc.content))
	for i := 0; i < len(lines); i++ {
		if name, ok := sectionHeader(lines[i].text); ok {
			section = name
			continue
		}
		asg, ok := parseAssignment(lines[i].text)
		if !ok {
			continue
		}
		if section == Section {
			seen[asg.key] = true
		}
		if asg.open != "" {
			i = multilineEnd(lines, i, asg.open)
		}
	}
	var missing []string
	for _, f := range ManagedFields {
		if !seen[f] {
			missing = append(missing, f)
		}
	}
	return missing, nil
}

func checkText(content []byte) error {
	if !utf8.Valid(content) {
		return errs.Newf(errs.KindMalformedConfig, "parse config", "document is not valid UTF-8")
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return errs.Newf(errs.KindMalformedConfig, "parse config", "document contains NUL bytes")
	}
	return nil
}

type line struct {
	text string
	eol  string
}

func splitLines(s string) []line {
	var lines []line
	for len(s) > 0 {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			lines = append(lines, line{text: s})
			break
		}
		text, eol := s[:idx], "\n"
		if strings.HasSuffix(text, "\r") {
			text, eol = text[:len(text)-1], "\r\n"
		}
		lines = append(lines, line{text: text, eol: eol})
		s = s[idx+1:]
	}
	return lines
}

func joinLines(lines []line) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.text)
		b.WriteString(ln.eol)
	}
	return b.String()
}

func detectEOL(lines []line) string {
	for _, ln := range lines {
		if ln.eol != "" {
			return ln.eol
		}
	}
	return "\n"
}

// sectionHeader parses "[name]" or "[[name]]" with an optional trailing comment.
func sectionHeader(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "[") {
		return "", false
	}
	end := strings.IndexByte(t, ']')
	if end < 0 {
		return "", false
	}
	name := strings.Trim(t[:end], "[ \t")
	return strings.Trim(name, `"`), true
}

// assignment is a "key = value # comment" line split into its parts.
type assignment struct {
	key string
	// head is everything up to and including the whitespace after '='.
	head string
	// value is the existing value token.
	value string
	// tail is whatever follows the value on its final line.
	tail string
	// open is set for a multi-line string value not closed on this line.
	open string
}

func parseAssignment(text string) (assignment, bool) {
	rest := strings.TrimLeft(text, " \t")
	if rest == "" || rest[0] == '#' {
		return assignment{}, false
	}
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return assignment{}, false
	}
	key := strings.TrimSpace(text[:eq])
	if key == "" || strings.ContainsAny(key, "#\"'[") {
		return assignment{}, false
	}

	valueStart := eq + 1
	for valueStart < len(text) && (text[valueStart] == ' ' || text[valueStart] == '\t') {
		valueStart++
	}
	a := assignment{key: key, head: text[:valueStart]}
	v := text[valueStart:]

	var n int
	switch {
	case strings.HasPrefix(v, `"""`) || strings.HasPrefix(v, `'''`):
		delim := v[:3]
		if end := closingDelim(v[3:], delim); end >= 0 {
			n = 3 + end + 3
		} else {
			a.value, a.open = v, delim
			return a, true
		}
	case strings.HasPrefix(v, `"`):
		n = basicStringEnd(v)
	case strings.HasPrefix(v, `'`):
		if end := strings.IndexByte(v[1:], '\''); end >= 0 {
			n = end + 2
		} else {
			n = len(v)
		}
	default:
		n = len(v)
		if idx := strings.IndexByte(v, '#'); idx >= 0 {
			n = idx
		}
		n = len(strings.TrimRight(v[:n], " \t"))
	}
	a.value, a.tail = v[:n], v[n:]
	return a, true
}

// rewrite replaces the value token with v. For an unterminated multi-line
// string it consumes the following lines up to the closing delimiter and
// returns how many extra lines were consumed.
func (a assignment) rewrite(lines []line, i int, v string) (int, line) {
	head := a.head
	if !strings.HasSuffix(head, " ") && !strings.HasSuffix(head, "\t") {
		head += " "
	}
	if a.open == "" {
		return 0, line{text: head + v + a.tail, eol: lines[i].eol}
	}
	j := multilineEnd(lines, i, a.open)
	if j > i {
		if end := closingDelim(lines[j].text, a.open); end >= 0 {
			return j - i, line{text: head + v + lines[j].text[end+3:], eol: lines[j].eol}
		}
	}
	// Unterminated until EOF: the string swallows the rest of the file.
	return j - i, line{text: head + v, eol: lines[j].eol}
}

// multilineEnd returns the index of the line closing a multi-line string
// opened on line i, or the last line when it is never closed.
func multilineEnd(lines []line, i int, delim string) int {
	for j := i + 1; j < len(lines); j++ {
		if closingDelim(lines[j].text, delim) >= 0 {
			return j
		}
	}
	return len(lines) - 1
}

// closingDelim returns the index of the delimiter that closes a multi-line
// string, or -1. A run of up to five quotes ends the string with its last
// three characters.
func closingDelim(s, delim string) int {
	q := delim[0]
	for i := 0; i+3 <= len(s); i++ {
		if q == '"' && s[i] == '\\' {
			i++
			continue
		}
		if s[i:i+3] != delim {
			continue
		}
		run := 3
		for i+run < len(s) && s[i+run] == q {
			run++
		}
		return i + min(run-3, 2)
	}
	return -1
}

// basicStringEnd returns the length of the "..." token at the start of v.
func basicStringEnd(v string) int {
	for i := 1; i < len(v); i++ {
		switch v[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(v)
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
