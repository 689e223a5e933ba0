package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAccess "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/access"
)

type PermissionHandler struct {
	grants *ucAccess.Grants
	log    zerolog.Logger
}

func NewPermissionHandler(grants *ucAccess.Grants, log zerolog.Logger) *PermissionHandler {
	return &PermissionHandler{grants: grants, log: log}
}

func (h *PermissionHandler) List(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	items, err := h.grants.List(c.Request.Context(), patient.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

type GrantRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
}

func (h *PermissionHandler) Grant(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	grant, err := h.grants.Grant(c.Request.Context(), patient.UserID, req.DoctorID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Access granted.", grant)
}

func (h *PermissionHandler) Revoke(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	if err := h.grants.Revoke(c.Request.Context(), patient.UserID, c.Param("doctorId")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Access revoked.", nil)
}
