package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

type ProfileHandler struct {
	get    *ucAccount.GetProfile
	update *ucAccount.UpdateProfile
	log    zerolog.Logger
}

func NewProfileHandler(get *ucAccount.GetProfile, update *ucAccount.UpdateProfile, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{get: get, update: update, log: log}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	me := middleware.MustIdentity(c)

	user, err := h.get.Execute(c.Request.Context(), me.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewProfileDTO(user))
}

// UpdateProfileRequest fields are optional; absent fields stay unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	DOB     *string `json:"dob"`
	Address *string `json:"address"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	me := middleware.MustIdentity(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	user, err := h.update.Execute(c.Request.Context(), me.UserID, ucAccount.UpdateProfileInput{
		Name:    req.Name,
		DOB:     req.DOB,
		Address: req.Address,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Profile updated.", dto.NewProfileDTO(user))
}
