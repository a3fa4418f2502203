// Package indexer builds snapshots of a repository root and persists them.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
)

const (
	phaseScan  = "scan"
	phaseWrite = "write"
)

// Builder runs scan, snapshot and write as one build.
type Builder struct {
	scanner   ports.Scanner
	store     ports.SnapshotStore
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time
}

// NewBuilder creates a new Builder.
func NewBuilder(
	scanner ports.Scanner,
	store ports.SnapshotStore,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Builder {
	return &Builder{
		scanner:   scanner,
		store:     store,
		hasher:    hasher,
		telemetry: telemetry,
		logger:    logger,
		now:       time.Now,
	}
}

// Build scans root and replaces the snapshot at outputPath. The file is
// rewritten even when its content is unchanged, so generated_at always
// reflects the latest build; the report marks that case as Unchanged.
func (b *Builder) Build(ctx context.Context, root, outputPath string, workers int) (*domain.BuildReport, error) {
	scanCtx, scanVertex := b.telemetry.Record(ctx, phaseScan)
	res, err := b.scanner.Scan(scanCtx, root, workers)
	if err != nil {
		scanVertex.Complete(err)
		return nil, err
	}
	scanVertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d entries, %d skipped", len(res.Entries), len(res.Diagnostics)))
	scanVertex.Complete(nil)

	snap := domain.NewSnapshot(res.Root, res.Entries, b.now())
	report := &domain.BuildReport{
		Snapshot:    snap,
		OutputPath:  outputPath,
		Diagnostics: res.Diagnostics,
		Fingerprint: b.hasher.ComputeSnapshotHash(snap),
	}

	_, writeVertex := b.telemetry.Record(ctx, phaseWrite)
	if prev := b.previousFingerprint(outputPath); prev == report.Fingerprint {
		report.Unchanged = true
		writeVertex.Cached()
	}

	if err := b.store.Save(outputPath, snap); err != nil {
		writeVertex.Complete(err)
		return nil, err
	}
	writeVertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d tools written to %s", len(snap.ToolNames), outputPath))
	writeVertex.Complete(nil)

	return report, nil
}

// previousFingerprint returns the fingerprint of the snapshot currently at
// path, or "" when there is none or it cannot be read.
func (b *Builder) previousFingerprint(path string) string {
	prev, err := b.store.Load(path)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			b.logger.Warn("replacing unreadable snapshot: " + err.Error())
		}
		return ""
	}
	return b.hasher.ComputeSnapshotHash(prev)
}
