package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Snapshot is one full index generation of a repository root.
// A Snapshot is never mutated once built or loaded; replacing it means
// publishing a new one.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Root        string    `json:"root"`
	EntryCount  int       `json:"entry_count"`
	Entries     []Entry   `json:"entries"`
	ToolNames   []string  `json:"tool_names"`
}

// NewSnapshot assembles a snapshot from entries in scan order, deriving the
// tool name set and stamping generatedAt in UTC.
func NewSnapshot(root string, entries []Entry, generatedAt time.Time) *Snapshot {
	if entries == nil {
		entries = []Entry{}
	}
	return &Snapshot{
		GeneratedAt: generatedAt.UTC(),
		Root:        root,
		EntryCount:  len(entries),
		Entries:     entries,
		ToolNames:   DeriveToolNames(entries),
	}
}

// DeriveToolNames returns the sorted set of unique tool names across entries.
func DeriveToolNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.ToolName)
	}
	slices.Sort(names)
	return slices.Clip(slices.Compact(names))
}

// Validate checks the internal consistency of the snapshot: the entry count,
// the parsing invariant of every entry, and the derived tool name set.
func (s *Snapshot) Validate() error {
	if s.EntryCount != len(s.Entries) {
		err := zerr.With(zerr.New("entry_count does not match entries"), "entry_count", s.EntryCount)
		return Kind(ErrCacheCorrupt, zerr.With(err, "entries", len(s.Entries)))
	}

	for i, e := range s.Entries {
		if e.EntryName == "" || !e.Consistent() {
			err := zerr.With(zerr.New("entry does not match its parsed name"), "index", i)
			return Kind(ErrCacheCorrupt, zerr.With(err, "entry_name", e.EntryName))
		}
	}

	if !slices.Equal(s.ToolNames, DeriveToolNames(s.Entries)) {
		return Kind(ErrCacheCorrupt, zerr.New("tool_names is not the sorted set of entry tool names"))
	}

	return nil
}

// Versions returns every entry whose tool name equals tool, ignoring case,
// in snapshot order.
func (s *Snapshot) Versions(tool string) []Entry {
	want := strings.ToLower(tool)
	var out []Entry
	for _, e := range s.Entries {
		if strings.ToLower(e.ToolName) == want {
			out = append(out, e)
		}
	}
	return out
}

// DefaultListLimit is the number of tool names listed when the caller gives no limit.
const DefaultListLimit = 50

// ListToolNames returns the first limit tool names in sorted order.
// A limit of zero or more than the number of tools returns all of them.
func (s *Snapshot) ListToolNames(limit int) []string {
	if limit <= 0 || limit >= len(s.ToolNames) {
		return slices.Clone(s.ToolNames)
	}
	return slices.Clone(s.ToolNames[:limit])
}
