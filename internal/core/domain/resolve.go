package domain

import (
	"cmp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DefaultLimit is the default maximum number of suggestions per missing query.
	DefaultLimit = 5
	// DefaultCutoff is the default minimum similarity for a suggestion.
	DefaultCutoff = 0.7
)

// ResolutionResult is the answer to one resolve call.
type ResolutionResult struct {
	// Found holds the queries that matched a known tool name, in input order.
	Found []string `json:"found"`
	// Missing holds the queries without an exact match, in input order.
	Missing []string `json:"missing"`
	// Count is the number of queries, duplicates included.
	Count int `json:"count"`
	// Suggestions maps a missing query to its ranked near matches. Queries
	// with no candidate above the cutoff have no key.
	Suggestions map[string][]string `json:"suggestions"`
	// Entries holds every stored entry of every found tool, in snapshot order.
	Entries []Entry `json:"entries"`
}

// ResolveOptions tunes the suggestion ranking.
type ResolveOptions struct {
	Limit  int
	Cutoff float64
	// Scorer overrides the similarity metric. Nil means Similarity.
	Scorer Scorer
}

// DefaultResolveOptions returns the documented defaults.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{Limit: DefaultLimit, Cutoff: DefaultCutoff}
}

// Validate rejects a negative limit or a cutoff outside [0,1].
func (o ResolveOptions) Validate() error {
	if o.Limit < 0 {
		return Kind(ErrValidation, zerr.With(zerr.New("limit must not be negative"), "limit", o.Limit))
	}
	if !(o.Cutoff >= 0 && o.Cutoff <= 1) {
		return Kind(ErrValidation, zerr.With(zerr.New("cutoff must be within [0, 1]"), "cutoff", o.Cutoff))
	}
	return nil
}

func (o ResolveOptions) score(a, b string) (float64, bool) {
	if o.Scorer == nil {
		return similarityAtLeast(a, b, o.Cutoff)
	}
	s := o.Scorer(a, b)
	return s, s >= o.Cutoff
}

// EmptyResolution returns a result with every collection empty and a zero count.
func EmptyResolution() ResolutionResult {
	return ResolutionResult{
		Found:       []string{},
		Missing:     []string{},
		Suggestions: map[string][]string{},
		Entries:     []Entry{},
	}
}

// Resolve matches queries against the tool names of snap, case-insensitively.
// It is a pure function of its inputs and is safe to call concurrently on
// the same snapshot.
func Resolve(queries []string, snap *Snapshot, opts ResolveOptions) (ResolutionResult, error) {
	if err := opts.Validate(); err != nil {
		return ResolutionResult{}, err
	}

	res := EmptyResolution()
	if len(queries) == 0 {
		return res, nil
	}
	if snap == nil {
		return ResolutionResult{}, ErrNoSnapshot
	}

	known := make(map[string]struct{}, len(snap.ToolNames))
	for _, name := range snap.ToolNames {
		known[strings.ToLower(name)] = struct{}{}
	}

	var lowered []string
	foundSet := make(map[string]struct{})
	scored := make(map[string]struct{})
	for _, q := range queries {
		lq := strings.ToLower(q)
		if _, ok := known[lq]; ok {
			res.Found = append(res.Found, q)
			foundSet[lq] = struct{}{}
			continue
		}

		res.Missing = append(res.Missing, q)
		if _, done := scored[q]; done {
			continue
		}
		scored[q] = struct{}{}
		if lowered == nil {
			lowered = lowerAll(snap.ToolNames)
		}
		if matches := closeMatches(lq, snap.ToolNames, lowered, opts); len(matches) > 0 {
			res.Suggestions[q] = matches
		}
	}
	res.Count = len(queries)

	if len(foundSet) > 0 {
		for _, e := range snap.Entries {
			if _, ok := foundSet[strings.ToLower(e.ToolName)]; ok {
				res.Entries = append(res.Entries, e)
			}
		}
	}

	return res, nil
}

type candidate struct {
	name  string
	score float64
}

// closeMatches ranks names by similarity to query, best first, breaking
// ties by name, keeping at most opts.Limit names at or above opts.Cutoff.
func closeMatches(query string, names, lowered []string, opts ResolveOptions) []string {
	if opts.Limit == 0 {
		return nil
	}

	var cands []candidate
	for i, name := range names {
		if score, ok := opts.score(query, lowered[i]); ok {
			cands = append(cands, candidate{name: name, score: score})
		}
	}

	slices.SortFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	if len(cands) > opts.Limit {
		cands = cands[:opts.Limit]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

func lowerAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
