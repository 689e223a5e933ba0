package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Filter struct {
	Action string
	Entity string
	UserID string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// Sink persists audit rows.
type Sink interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	sink Sink
}

func New(sink Sink) *Logger {
	return &Logger{sink: sink}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: ev.At,
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	return l.sink.CreateAuditLog(ctx, &log)
}
