package specs

import (
	"strings"
)

type Mode string

const (
	ModeEmpty    Mode = "empty"
	ModePairs    Mode = "pairs"
	ModeKeyValue Mode = "keyvalue"
	ModeBullets  Mode = "bullets"
)

type Entry struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

type Specification struct {
	Mode    Mode    `json:"mode"`
	Entries []Entry `json:"entries"`
}

func (s Specification) IsEmpty() bool {
	return len(s.Entries) == 0
}

// Parse reads a free text specification blob. A "Detail" line switches to
// alternating key/value lines, "key: value" lists are split on commas and
// everything else is treated as one bullet per line.
func Parse(blob string) Specification {
	lines := splitLines(blob)
	if len(lines) == 0 {
		return Specification{Mode: ModeEmpty, Entries: []Entry{}}
	}
	if marker := detailMarker(lines); marker >= 0 {
		return Specification{Mode: ModePairs, Entries: pairs(lines[marker+1:])}
	}
	if entries, ok := keyValues(lines); ok {
		return Specification{Mode: ModeKeyValue, Entries: entries}
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = appendEntry(entries, "", line)
	}
	return Specification{Mode: ModeBullets, Entries: entries}
}

func splitLines(blob string) []string {
	raw := strings.Split(blob, "\n")
	ret := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			ret = append(ret, trimmed)
		}
	}
	return ret
}

func detailMarker(lines []string) int {
	for i, line := range lines {
		l := strings.ToLower(line)
		if l == "detail" || l == "details" {
			return i
		}
	}
	return -1
}

func pairs(lines []string) []Entry {
	ret := make([]Entry, 0, len(lines)/2+1)
	for i := 0; i < len(lines); i += 2 {
		value := ""
		if i+1 < len(lines) {
			value = lines[i+1]
		}
		ret = appendEntry(ret, lines[i], value)
	}
	return ret
}

// keyValues accepts the blob only when every comma separated segment either
// starts a "key: value" entry or continues the previous value.
func keyValues(lines []string) ([]Entry, bool) {
	ret := make([]Entry, 0)
	var current *Entry
	flush := func() {
		if current != nil {
			ret = appendEntry(ret, current.Key, current.Value)
			current = nil
		}
	}
	for _, line := range lines {
		for _, segment := range strings.Split(line, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			key, value, found := strings.Cut(segment, ":")
			key = strings.TrimSpace(key)
			// a scheme like "https://" is not a key
			if found && key != "" && !strings.HasPrefix(value, "//") {
				flush()
				current = &Entry{Key: key, Value: strings.TrimSpace(value)}
				continue
			}
			if current == nil {
				return nil, false
			}
			current.Value = strings.TrimSpace(current.Value + ", " + segment)
		}
		flush()
	}
	return ret, true
}

func appendEntry(entries []Entry, key, value string) []Entry {
	if value == "" || strings.EqualFold(value, "Description") {
		return entries
	}
	return append(entries, Entry{Key: key, Value: value})
}
