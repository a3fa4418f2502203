package ports

import (
	"context"
	"time"
)

// Watcher reports changes to a file.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch calls onChange after path is created, written, or replaced and
	// no further change happened for debounce. It blocks until ctx is done.
	Watch(ctx context.Context, path string, debounce time.Duration, onChange func(context.Context)) error
}
