package logger

import (
	"errors"
	"maps"
	"slices"
)

// metadataCarrier matches errors that carry key/value context, such as zerr.Error.
type metadataCarrier interface {
	Metadata() map[string]any
}

// errorAttrs flattens err into slog attributes: the full message under
// "error", followed by any metadata found along the chain, sorted by key.
// Outer values win over inner ones with the same key.
func errorAttrs(err error) []any {
	if err == nil {
		return nil
	}
	attrs := []any{"error", err.Error()}

	merged := make(map[string]any)
	for current := err; current != nil; {
		var mc metadataCarrier
		if !errors.As(current, &mc) {
			break
		}
		for k, v := range mc.Metadata() {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
		current = errors.Unwrap(mc.(error))
	}

	for _, k := range slices.Sorted(maps.Keys(merged)) {
		attrs = append(attrs, k, merged[k])
	}
	return attrs
}
