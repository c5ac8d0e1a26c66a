// Package audit provides sinks for administrative audit entries.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"tutorly/internal/models"
)

// Recorder receives audit entries.
type Recorder interface {
	RecordAudit(ctx context.Context, entry *models.AuditLog) error
}

// LogRecorder writes audit entries to a structured logger.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRecorder{logger: logger.With("component", "audit")}
}

func (r *LogRecorder) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	level := slog.LevelInfo
	switch entry.Severity {
	case models.AuditSeverityWarning:
		level = slog.LevelWarn
	case models.AuditSeverityCritical:
		level = slog.LevelError
	}

	r.logger.Log(ctx, level, "audit",
		"audit_id", entry.ID,
		"admin_id", entry.AdminID,
		"admin_name", entry.AdminName,
		"action", entry.Action,
		"target_id", entry.TargetID,
		"severity", entry.Severity,
		"timestamp", entry.Timestamp,
	)
	return nil
}

// MultiRecorder fans an entry out to every recorder and joins their errors.
type MultiRecorder struct {
	recorders []Recorder
}

func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	return &MultiRecorder{recorders: recorders}
}

func (m *MultiRecorder) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.RecordAudit(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
