package headers

import (
	"iter"
	"strings"
)

type entry struct {
	name  string
	value string
}

// Headers is an ordered set of header fields. Names are unique and keep the
// position of their first insertion; setting an existing name overwrites its
// value in place.
type Headers struct {
	entries []entry
	index   map[string]int
}

func NewHeaders() *Headers {
	return &Headers{
		index: make(map[string]int),
	}
}

// Get returns the value stored under name
func (h *Headers) Get(name string) (string, bool) {
	i, ok := h.index[name]
	if !ok {
		return "", false
	}
	return h.entries[i].value, true
}

// Set inserts name at the end, or replaces the value if name is already present
func (h *Headers) Set(name, value string) {
	if i, ok := h.index[name]; ok {
		h.entries[i].value = value
		return
	}
	h.index[name] = len(h.entries)
	h.entries = append(h.entries, entry{name: name, value: value})
}

// Del removes a header
func (h *Headers) Del(name string) {
	i, ok := h.index[name]
	if !ok {
		return
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	delete(h.index, name)
	for j := i; j < len(h.entries); j++ {
		h.index[h.entries[j].name] = j
	}
}

func (h *Headers) Len() int {
	return len(h.entries)
}

// Names returns header names in insertion order
func (h *Headers) Names() []string {
	names := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		names = append(names, e.name)
	}
	return names
}

// All iterates over name/value pairs in insertion order
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range h.entries {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// ParseLine reads a "Name: value" line. The line is split on its first colon
// and both sides are trimmed; the header is stored only when neither side is
// empty. Reports whether a header was stored.
func (h *Headers) ParseLine(line string) bool {
	name, value, ok := parseHeader(line)
	if !ok {
		return false
	}
	h.Set(name, value)
	return true
}

// Format renders the headers as a header block without the trailing CRLF
func (h *Headers) Format() string {
	var b strings.Builder
	for i, e := range h.entries {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(e.name)
		b.WriteString(": ")
		b.WriteString(e.value)
	}
	return b.String()
}

func parseHeader(line string) (string, string, bool) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}

	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return "", "", false
	}

	return name, value, true
}
