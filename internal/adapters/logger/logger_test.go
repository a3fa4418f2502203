package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/biofind/internal/adapters/logger"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Info("some message")
	lg.Warn("some warning")
	lg.Error(os.ErrPermission)

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"some message\"")
	assert.Contains(t, out, "level=WARN msg=\"some warning\"")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.SetLevel(domain.LogLevelWarn)
	lg.Info("hidden")
	lg.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	lg.SetLevel(domain.LogLevelDebug)
	lg.Info("visible again")
	assert.Contains(t, buf.String(), "visible again")
}

func TestLogger_ErrorMetadata(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	inner := zerr.With(zerr.New("failed to stat entry"), "path", "/repo/bwa:1")
	outer := zerr.With(zerr.Wrap(inner, "scan interrupted"), "root", "/repo")
	lg.Error(domain.Kind(domain.ErrPermission, outer))

	out := buf.String()
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "root=/repo")
	assert.Contains(t, out, "path=/repo/bwa:1")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(nil)
	assert.Contains(t, buf.String(), "operation failed")
}

func TestNew(t *testing.T) {
	assert.NotNil(t, logger.New())
}
