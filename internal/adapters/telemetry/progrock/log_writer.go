package progrock

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/biofind/internal/core/ports"
)

var _ progrock.Writer = (*LogWriter)(nil)

// LogWriter is a progrock.Writer that turns status updates into log lines:
// one line per vertex log line and one when a vertex completes.
type LogWriter struct {
	logger ports.Logger

	mu       sync.Mutex
	names    map[string]string
	reported map[string]bool
}

// NewLogWriter creates a LogWriter writing to logger.
func NewLogWriter(logger ports.Logger) *LogWriter {
	return &LogWriter{
		logger:   logger,
		names:    make(map[string]string),
		reported: make(map[string]bool),
	}
}

// WriteStatus logs the vertices and log lines carried by update.
func (w *LogWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		w.names[v.Id] = v.Name
	}

	for _, l := range update.Logs {
		name := w.names[l.Vertex]
		for _, line := range bytes.Split(bytes.TrimRight(l.Data, "\n"), []byte("\n")) {
			if len(line) > 0 {
				w.logger.Info(name + ": " + string(line))
			}
		}
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil || w.reported[v.Id] {
			continue
		}
		w.reported[v.Id] = true

		switch {
		case v.Error != nil:
			w.logger.Warn(fmt.Sprintf("%s failed: %s", v.Name, *v.Error))
		case v.Cached:
			w.logger.Info(v.Name + ": unchanged")
		default:
			w.logger.Info(fmt.Sprintf("%s: done in %s", v.Name, elapsed(v)))
		}
	}

	return nil
}

// Close implements progrock.Writer.
func (w *LogWriter) Close() error {
	return nil
}

func elapsed(v *progrock.Vertex) time.Duration {
	if v.Started == nil || v.Completed == nil {
		return 0
	}
	return v.Completed.AsTime().Sub(v.Started.AsTime()).Round(time.Millisecond)
}
