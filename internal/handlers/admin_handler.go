package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucAdmin "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/admin"
)

type AdminHandler struct {
	listDoctors *ucAdmin.ListDoctors
	stats       *ucAdmin.GetDashboardStats
	log         zerolog.Logger
}

func NewAdminHandler(
	listDoctors *ucAdmin.ListDoctors,
	stats *ucAdmin.GetDashboardStats,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{listDoctors: listDoctors, stats: stats, log: log}
}

func (h *AdminHandler) ListDoctors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(ucAdmin.DefaultPageSize)))

	res, err := h.listDoctors.Execute(c.Request.Context(), account.DoctorFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	res, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}
