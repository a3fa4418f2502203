package store

import (
	"bytes"
	"encoding/json"
	"time"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/zerr"
)

// document mirrors the persisted snapshot with pointer fields so a missing
// field can be told apart from a zero value.
type document struct {
	GeneratedAt *string          `json:"generated_at"`
	Root        *string          `json:"root"`
	LegacyRoot  *string          `json:"cvmfs_root"`
	EntryCount  *int             `json:"entry_count"`
	Entries     *[]entryDocument `json:"entries"`
	ToolNames   *[]string        `json:"tool_names"`
}

type entryDocument struct {
	EntryName *string  `json:"entry_name"`
	ToolName  *string  `json:"tool_name"`
	Tag       *string  `json:"tag"`
	Path      *string  `json:"path"`
	SizeBytes *int64   `json:"size_bytes"`
	MTime     *float64 `json:"mtime"`
}

// timestampLayouts are tried in order. The last one accepts timestamps
// written without an offset, which are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func decode(data []byte) (*domain.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, corrupt(zerr.New("snapshot file is empty"))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupt(zerr.Wrap(err, "failed to parse snapshot"))
	}

	root := doc.Root
	if root == nil {
		root = doc.LegacyRoot
	}

	switch {
	case doc.GeneratedAt == nil:
		return nil, missing("generated_at")
	case root == nil:
		return nil, missing("root")
	case doc.EntryCount == nil:
		return nil, missing("entry_count")
	case doc.Entries == nil:
		return nil, missing("entries")
	case doc.ToolNames == nil:
		return nil, missing("tool_names")
	}

	generatedAt, err := parseTimestamp(*doc.GeneratedAt)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, len(*doc.Entries))
	for i, ed := range *doc.Entries {
		e, err := ed.entry()
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		entries[i] = e
	}

	return &domain.Snapshot{
		GeneratedAt: generatedAt,
		Root:        *root,
		EntryCount:  *doc.EntryCount,
		Entries:     entries,
		ToolNames:   *doc.ToolNames,
	}, nil
}

func (ed entryDocument) entry() (domain.Entry, error) {
	switch {
	case ed.EntryName == nil:
		return domain.Entry{}, missing("entry_name")
	case ed.ToolName == nil:
		return domain.Entry{}, missing("tool_name")
	case ed.Path == nil:
		return domain.Entry{}, missing("path")
	case ed.SizeBytes == nil:
		return domain.Entry{}, missing("size_bytes")
	case ed.MTime == nil:
		return domain.Entry{}, missing("mtime")
	}
	return domain.Entry{
		EntryName: *ed.EntryName,
		ToolName:  *ed.ToolName,
		Tag:       ed.Tag,
		Path:      *ed.Path,
		SizeBytes: *ed.SizeBytes,
		MTime:     *ed.MTime,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, corrupt(zerr.With(zerr.New("generated_at is not an ISO-8601 timestamp"), "generated_at", s))
}

func missing(field string) error {
	return corrupt(zerr.With(zerr.New("missing required field"), "field", field))
}

func corrupt(err error) error {
	return domain.Kind(domain.ErrCacheCorrupt, err)
}
