// Package domain contains the core models of the repository index: entries,
// snapshots, and the fuzzy name resolution performed against them.
package domain

import (
	"strings"
	"time"
	"unique"
)

// TagSeparator separates the tool name from its tag in an entry name.
const TagSeparator = ":"

// Entry is one immediate child of the repository root, e.g. "samtools:1.21".
// Entries are values and are never modified after the scanner creates them.
type Entry struct {
	EntryName string  `json:"entry_name"`
	ToolName  string  `json:"tool_name"`
	Tag       *string `json:"tag"`
	Path      string  `json:"path"`
	SizeBytes int64   `json:"size_bytes"`
	// MTime is the modification time in seconds since the Unix epoch.
	MTime float64 `json:"mtime"`
}

// ParseEntryName splits name on the first separator into a tool name and an
// optional tag. A name without a separator is its own tool name and has no tag.
func ParseEntryName(name string) (toolName string, tag *string) {
	tool, rest, found := strings.Cut(name, TagSeparator)
	if !found {
		return intern(name), nil
	}
	return intern(tool), &rest
}

// NewEntry builds an Entry for the child called name located at path.
func NewEntry(name, path string, size int64, modTime time.Time) Entry {
	tool, tag := ParseEntryName(name)
	return Entry{
		EntryName: name,
		ToolName:  tool,
		Tag:       tag,
		Path:      path,
		SizeBytes: size,
		MTime:     UnixSeconds(modTime),
	}
}

// HasTag reports whether the entry carries a tag.
func (e Entry) HasTag() bool {
	return e.Tag != nil
}

// TagOrEmpty returns the tag, or "" when the entry has none.
func (e Entry) TagOrEmpty() string {
	if e.Tag == nil {
		return ""
	}
	return *e.Tag
}

// Reconstruct joins the tool name and tag back into an entry name.
func (e Entry) Reconstruct() string {
	if e.Tag == nil {
		return e.ToolName
	}
	return e.ToolName + TagSeparator + *e.Tag
}

// Consistent reports whether the parsed fields reproduce the entry name and
// the tool name is exactly what parsing the entry name would give.
func (e Entry) Consistent() bool {
	return !strings.Contains(e.ToolName, TagSeparator) && e.Reconstruct() == e.EntryName
}

// UnixSeconds converts t to fractional seconds since the Unix epoch.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// intern canonicalizes tool names, which repeat once per tag across a large
// repository, so every entry of a tool shares one backing string.
func intern(s string) string {
	return unique.Make(s).Value()
}
