package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAdmin "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/admin"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	list *ucAdmin.ListAuditLogs
	tz   string
	log  zerolog.Logger
}

func NewAuditLogsHandler(list *ucAdmin.ListAuditLogs, tz string, log zerolog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{list: list, tz: tz, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		UserID: c.Query("userId"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional day range, "to" inclusive
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := timezone.ParseDate(h.tz, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
		f.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := timezone.ParseDate(h.tz, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	res, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}
