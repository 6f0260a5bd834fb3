// Package parset reads LOFAR parameter sets: "key = value" text files with
// '#' comments, optional quoting and backslash line continuation.
//
// A Parset is immutable once parsed. Derived values are applied with With,
// which returns a new Parset and leaves the receiver untouched.
package parset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

// None is the literal that marks a value as explicitly unspecified.
const None = "NONE"

// Parset is an ordered, immutable key/value mapping.
type Parset struct {
	keys   []string
	values map[string]string
}

// Load reads and parses the parset at path.
func Load(path string) (*Parset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening parset: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing parset %s: %w", path, err)
	}
	return p, nil
}

// Parse reads a parset from r. Later assignments of a key replace earlier
// ones but keep the key's original position.
func Parse(r io.Reader) (*Parset, error) {
	p := &Parset{values: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var pending strings.Builder
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// A comment never continues onto the next line.
		if pending.Len() == 0 && strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, `\`) {
			pending.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}
		if pending.Len() > 0 {
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no '=': %q", domain.ErrInvalidInput, lineNo, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: line %d has an empty key", domain.ErrInvalidInput, lineNo)
		}
		p.set(key, cleanValue(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending.Len() > 0 {
		return nil, fmt.Errorf("%w: file ends inside a continued line", domain.ErrInvalidInput)
	}
	return p, nil
}

// FromMap builds a Parset from a map. Keys are ordered alphabetically.
func FromMap(m map[string]string) *Parset {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := &Parset{values: make(map[string]string, len(m))}
	for _, k := range keys {
		p.set(k, m[k])
	}
	return p
}

// set stores a value, keeping first-seen key order.
func (p *Parset) set(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// cleanValue strips surrounding whitespace, a trailing comment outside
// quotes, and one level of matching quotes.
func cleanValue(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') {
		if end := strings.IndexByte(v[1:], v[0]); end >= 0 {
			return v[1 : end+1]
		}
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}

// With returns a copy of p with overrides applied. New keys are appended
// in alphabetical order.
func (p *Parset) With(overrides map[string]string) *Parset {
	out := &Parset{
		keys:   append([]string(nil), p.keys...),
		values: make(map[string]string, len(p.values)+len(overrides)),
	}
	for k, v := range p.values {
		out.values[k] = v
	}

	added := make([]string, 0, len(overrides))
	for k := range overrides {
		added = append(added, k)
	}
	sort.Strings(added)
	for _, k := range added {
		out.set(k, overrides[k])
	}
	return out
}

// Keys returns the keys in file order.
func (p *Parset) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of keys.
func (p *Parset) Len() int {
	return len(p.keys)
}

// Get retrieves a raw value by key.
func (p *Parset) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// String retrieves a value, failing with domain.ErrMissingKey when absent.
func (p *Parset) String(key string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingKey, key)
	}
	return v, nil
}

// Int retrieves a value as an integer.
func (p *Parset) Int(key string) (int, error) {
	v, err := p.String(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", domain.ErrValueKind, key, v)
	}
	return n, nil
}

// Bool retrieves a value as a boolean. The LOFAR spellings true/false,
// t/f, yes/no, y/n, on/off and 1/0 are accepted in any case.
func (p *Parset) Bool(key string) (bool, error) {
	v, err := p.String(key)
	if err != nil {
		return false, err
	}
	b, ok := parseBool(v)
	if !ok {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", domain.ErrValueKind, key, v)
	}
	return b, nil
}

// IsNone reports whether key is set to the NONE literal (any case).
func (p *Parset) IsNone(key string) bool {
	v, ok := p.values[key]
	return ok && strings.EqualFold(strings.TrimSpace(v), None)
}

// OptionalInt is Int, except that NONE yields nil.
func (p *Parset) OptionalInt(key string) (*int, error) {
	if p.IsNone(key) {
		return nil, nil
	}
	n, err := p.Int(key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// OptionalBool is Bool, except that NONE yields nil.
func (p *Parset) OptionalBool(key string) (*bool, error) {
	if p.IsNone(key) {
		return nil, nil
	}
	b, err := p.Bool(key)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Encode renders the parset in file order as "key=value" lines.
func (p *Parset) Encode() string {
	var sb strings.Builder
	for _, k := range p.keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(p.values[k])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	default:
		return false, false
	}
}
