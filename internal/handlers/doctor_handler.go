package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type DoctorHandler struct {
	list     *ucAppointment.ListDoctorAppointments
	get      *ucAppointment.GetAppointment
	decline  *ucAppointment.DeclineAppointment
	confirm  *ucAppointment.ConfirmAppointment
	complete *ucAppointment.CompleteAppointment
	log      zerolog.Logger
}

func NewDoctorHandler(
	list *ucAppointment.ListDoctorAppointments,
	get *ucAppointment.GetAppointment,
	decline *ucAppointment.DeclineAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	log zerolog.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		list:     list,
		get:      get,
		decline:  decline,
		confirm:  confirm,
		complete: complete,
		log:      log,
	}
}

func (h *DoctorHandler) ListAppointments(c *gin.Context) {
	doctor := middleware.MustIdentity(c)

	items, err := h.list.Execute(c.Request.Context(), doctor.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *DoctorHandler) GetAppointment(c *gin.Context) {
	doctor := middleware.MustIdentity(c)

	ap, err := h.get.Execute(c.Request.Context(), doctor.UserID, doctor.Role, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *DoctorHandler) Decline(c *gin.Context) {
	doctor := middleware.MustIdentity(c)

	ap, err := h.decline.Execute(c.Request.Context(), doctor.UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Appointment declined.", ap)
}

func (h *DoctorHandler) Confirm(c *gin.Context) {
	doctor := middleware.MustIdentity(c)

	ap, err := h.confirm.Execute(c.Request.Context(), doctor.UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Appointment confirmed.", ap)
}

func (h *DoctorHandler) Complete(c *gin.Context) {
	doctor := middleware.MustIdentity(c)

	ap, err := h.complete.Execute(c.Request.Context(), doctor.UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Appointment completed.", ap)
}
