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
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	findDoctors  *ucAccount.FindDoctors
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.BookAppointment
	list         *ucAppointment.ListPatientAppointments
	get          *ucAppointment.GetAppointment
	cancel       *ucAppointment.CancelAppointment
	dashboard    *ucAppointment.GetPatientDashboard
	log          zerolog.Logger
}

type PatientHandlerDeps struct {
	FindDoctors  *ucAccount.FindDoctors
	Availability *ucAppointment.GetAvailability
	Book         *ucAppointment.BookAppointment
	List         *ucAppointment.ListPatientAppointments
	Get          *ucAppointment.GetAppointment
	Cancel       *ucAppointment.CancelAppointment
	Dashboard    *ucAppointment.GetPatientDashboard
}

func NewPatientHandler(deps PatientHandlerDeps, log zerolog.Logger) *PatientHandler {
	return &PatientHandler{
		findDoctors:  deps.FindDoctors,
		availability: deps.Availability,
		book:         deps.Book,
		list:         deps.List,
		get:          deps.Get,
		cancel:       deps.Cancel,
		dashboard:    deps.Dashboard,
		log:          log,
	}
}

// ======================================================
// DOCTORS
// ======================================================

func (h *PatientHandler) FindDoctors(c *gin.Context) {
	doctors, err := h.findDoctors.Execute(c.Request.Context(), c.Query("category"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.NewDoctorList(doctors))
}

func (h *PatientHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// APPOINTMENTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

func (h *PatientHandler) Book(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID: patient.UserID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Appointment booked successfully.", gin.H{
		"appointmentId": ap.ID,
		"status":        ap.Status,
	})
}

func (h *PatientHandler) ListAppointments(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	items, err := h.list.Execute(c.Request.Context(), patient.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *PatientHandler) GetAppointment(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	ap, err := h.get.Execute(c.Request.Context(), patient.UserID, patient.Role, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *PatientHandler) Cancel(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	ap, err := h.cancel.Execute(c.Request.Context(), patient.UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Appointment cancelled.", ap)
}

func (h *PatientHandler) Dashboard(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	res, err := h.dashboard.Execute(c.Request.Context(), patient.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}
