package admin

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const defaultAuditPageSize = 50

type AuditLogPage struct {
	Logs  []models.AuditLog `json:"logs"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ListAuditLogs struct {
	sink audit.Sink
}

func NewListAuditLogs(sink audit.Sink) *ListAuditLogs {
	return &ListAuditLogs{sink: sink}
}

func (uc *ListAuditLogs) Execute(ctx context.Context, f audit.Filter) (*AuditLogPage, error) {
	if f.Limit < 1 {
		f.Limit = defaultAuditPageSize
	}
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)

	logs, total, err := uc.sink.ListAuditLogs(ctx, f)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	return &AuditLogPage{Logs: logs, Total: total, Page: f.Page, Limit: f.Limit}, nil
}
