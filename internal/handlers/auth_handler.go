package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	registerPatient *ucAccount.RegisterUser
	registerDoctor  *ucAccount.RegisterUser
	login           *ucAccount.Login
	log             zerolog.Logger
}

func NewAuthHandler(
	registerPatient *ucAccount.RegisterUser,
	registerDoctor *ucAccount.RegisterUser,
	login *ucAccount.Login,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerPatient: registerPatient,
		registerDoctor:  registerDoctor,
		login:           login,
		log:             log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	DOB       string `json:"dob"`
	Telephone string `json:"telephone"`
	Address   string `json:"address"`
	Category  string `json:"category"`
}

func (r RegisterRequest) input() ucAccount.RegisterInput {
	return ucAccount.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		DOB:       r.DOB,
		Telephone: r.Telephone,
		Address:   r.Address,
		Category:  r.Category,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	user, err := h.registerPatient.Execute(c.Request.Context(), "", req.input())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Patient registered successfully.", gin.H{"userId": user.ID})
}

func (h *AuthHandler) RegisterDoctor(c *gin.Context) {
	admin := middleware.MustIdentity(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	user, err := h.registerDoctor.Execute(c.Request.Context(), admin.UserID, req.input())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Doctor registered successfully.", gin.H{"userId": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Write(c, http.StatusOK, "Login successful.", res)
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Invalid request body.")
}
