package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const bookingDay = "2099-05-01"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

type apiFixture struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
	jwt    *identity.JWTProvider
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{
		Env:            "test",
		Timezone:       "UTC",
		ClinicOpen:     "08:00",
		ClinicClose:    "20:00",
		LunchStart:     "12:00",
		LunchEnd:       "13:00",
		MaxUploadBytes: 1 << 20,
	}
	log := zerolog.New(io.Discard)
	store := memory.NewStore()
	jwt := identity.NewJWTProvider("secret", time.Hour)

	dispatcher := audit.NewDispatcher(audit.New(store), log)
	t.Cleanup(dispatcher.Close)

	for _, u := range []models.User{
		{ID: "admin", Email: "admin@clinic.io", FirstName: "Ada", LastName: "Admin", Role: "admin"},
		{ID: "doc-a", Email: "a@clinic.io", FirstName: "Alice", LastName: "House", Role: "doctor", Category: "general"},
		{ID: "doc-b", Email: "b@clinic.io", FirstName: "Bob", LastName: "Grey", Role: "doctor", Category: "cardiology"},
		{ID: "pat-1", Email: "p1@mail.io", FirstName: "Pat", LastName: "One", Role: "patient"},
		{ID: "pat-2", Email: "p2@mail.io", FirstName: "Pam", LastName: "Two", Role: "patient"},
	} {
		u := u
		require.NoError(t, store.CreateUser(context.Background(), &u))
	}

	r := gin.New()
	r.MaxMultipartMemory = 1 << 20
	r.Use(middleware.RequestID(), middleware.Recovery(log))

	RegisterRoutes(r, Deps{
		Config:       cfg,
		Log:          log,
		Appointments: store,
		Users:        store,
		Grants:       store,
		AuditSink:    store,
		Audit:        dispatcher,
		Locker:       lock.NewLocalLocker(time.Second),
		Records:      storage.NewMemoryStore(),
		Tokens:       jwt,
		Health:       map[string]handlers.Pinger{"memory": store},
		Version:      "test",
	})

	return &apiFixture{t: t, router: r, store: store, jwt: jwt}
}

func (f *apiFixture) token(userID string, role access.Role) string {
	f.t.Helper()
	tok, err := f.jwt.Issue(userID, role)
	require.NoError(f.t, err)
	return tok
}

func (f *apiFixture) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	f.t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return f.send(req, token)
}

func (f *apiFixture) upload(token, filename string, content []byte) *httptest.ResponseRecorder {
	f.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(f.t, err)
	_, err = part.Write(content)
	require.NoError(f.t, err)
	require.NoError(f.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/patient/medical-records/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return f.send(req, token)
}

func (f *apiFixture) book(token, doctorID, at string) *httptest.ResponseRecorder {
	return f.do(http.MethodPost, "/api/patient/appointments/book", token, gin.H{
		"doctorId": doctorID,
		"date":     bookingDay,
		"time":     at,
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func bookedID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data struct {
		AppointmentID string `json:"appointmentId"`
		Status        string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "pending", data.Status)
	return data.AppointmentID
}

// ======================================================
// BOOKING
// ======================================================

func TestBooking_OverlapAndTouchingBoundary(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)
	p2 := f.token("pat-2", access.RolePatient)

	bookedID(t, f.book(p1, "doc-a", "10:00"))

	rec := f.book(p2, "doc-a", "10:30")
	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "slot_conflict", env.ErrorCode)

	bookedID(t, f.book(p2, "doc-a", "11:00"))

	// another doctor is unaffected
	bookedID(t, f.book(p2, "doc-b", "10:30"))
}

func TestBooking_CancelFreesSlotAndIsIdempotent(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)
	p2 := f.token("pat-2", access.RolePatient)

	id := bookedID(t, f.book(p1, "doc-a", "10:00"))

	rec := f.do(http.MethodDelete, "/api/patient/appointments/cancel/"+id, p2, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "appointment_forbidden", decode(t, rec).ErrorCode)

	for i := 0; i < 2; i++ {
		rec = f.do(http.MethodDelete, "/api/patient/appointments/cancel/"+id, p1, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var ap models.Appointment
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &ap))
		assert.Equal(t, "cancelled", ap.Status)
	}

	bookedID(t, f.book(p2, "doc-a", "10:00"))
}

func TestBooking_Validation(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)

	rec := f.do(http.MethodPost, "/api/patient/appointments/book", p1, gin.H{
		"doctorId": "doc-a", "date": "2099-13-40", "time": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/patient/appointments/book", p1, gin.H{"doctorId": "doc-a"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode(t, rec).ErrorCode)

	rec = f.book(p1, "pat-2", "10:00")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "doctor_not_found", decode(t, rec).ErrorCode)
}

// ======================================================
// DOCTOR TRANSITIONS
// ======================================================

func TestDoctor_CannotDeclineAnotherDoctorsAppointment(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)
	docA := f.token("doc-a", access.RoleDoctor)
	docB := f.token("doc-b", access.RoleDoctor)

	id := bookedID(t, f.book(p1, "doc-b", "09:00"))

	rec := f.do(http.MethodPut, "/api/doctor/appointments/decline/"+id, docA, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "appointment_forbidden", decode(t, rec).ErrorCode)

	rec = f.do(http.MethodPut, "/api/doctor/appointments/decline/"+id, docB, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPut, "/api/doctor/appointments/confirm/"+id, docB, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", decode(t, rec).ErrorCode)
}

func TestDoctor_ConfirmThenComplete(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)
	docA := f.token("doc-a", access.RoleDoctor)

	id := bookedID(t, f.book(p1, "doc-a", "14:00"))

	require.Equal(t, http.StatusOK, f.do(http.MethodPut, "/api/doctor/appointments/confirm/"+id, docA, nil).Code)
	rec := f.do(http.MethodPut, "/api/doctor/appointments/complete/"+id, docA, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &ap))
	assert.Equal(t, "completed", ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	rec = f.do(http.MethodGet, "/api/doctor/appointments", docA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []models.Appointment `json:"items"`
		Total int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &list))
	assert.Equal(t, 1, list.Total)

	rec = f.do(http.MethodGet, "/api/patient/dashboard", p1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"upcomingAppointments":0,"totalVisits":1}`, string(decode(t, rec).Data))
}

// ======================================================
// MEDICAL RECORDS
// ======================================================

func TestRecords_GrantUnlocksDoctorAccess(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)
	docQ := f.token("doc-b", access.RoleDoctor)
	content := []byte("%PDF-1.4 lab results")

	rec := f.upload(p1, "labs.pdf", content)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(decode(t, rec).Data), "medical-records/pat-1/labs.pdf")

	rec = f.do(http.MethodGet, "/api/patient/medical-records/download?filename=labs.pdf", p1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.Bytes())

	rec = f.do(http.MethodGet, "/api/doctor/medical-records/pat-1/download?filename=labs.pdf", docQ, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "record_access_denied", decode(t, rec).ErrorCode)

	rec = f.do(http.MethodGet, "/api/doctor/medical-records/pat-1", docQ, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/api/patient/permissions", p1, gin.H{"doctorId": "doc-b"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/doctor/medical-records/pat-1/download?filename=labs.pdf", docQ, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.Bytes())

	rec = f.do(http.MethodGet, "/api/doctor/medical-records/pat-1", docQ, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"labs.pdf"`)

	rec = f.do(http.MethodDelete, "/api/patient/permissions/doc-b", p1, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/doctor/medical-records/pat-1", docQ, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecords_MissingFilename(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)

	rec := f.do(http.MethodGet, "/api/patient/medical-records/download", p1, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_filename", decode(t, rec).ErrorCode)

	rec = f.do(http.MethodGet, "/api/patient/medical-records/download?filename=nope.pdf", p1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "record_not_found", decode(t, rec).ErrorCode)
}

// countingReader records how much of the request body the server pulled.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func oversizedUpload(t *testing.T, size int) (*bytes.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "scan.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{'x'}, size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return bytes.NewReader(buf.Bytes()), mw.FormDataContentType()
}

func TestRecords_UploadLimitStopsReadingEarly(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)
	const payload = 8 << 20

	t.Run("unknown length is cut off by the reader", func(t *testing.T) {
		raw, contentType := oversizedUpload(t, payload)
		body := &countingReader{r: raw}

		req := httptest.NewRequest(http.MethodPost, "/api/patient/medical-records/upload", body)
		req.Header.Set("Content-Type", contentType)
		require.Equal(t, int64(-1), req.ContentLength)

		rec := f.send(req, p1)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file_too_large", decode(t, rec).ErrorCode)
		assert.LessOrEqual(t, body.n, int64(2<<20), "read %d of %d bytes", body.n, raw.Size())
	})

	t.Run("declared length is rejected before reading", func(t *testing.T) {
		raw, contentType := oversizedUpload(t, payload)
		body := &countingReader{r: raw}

		req := httptest.NewRequest(http.MethodPost, "/api/patient/medical-records/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = raw.Size()

		rec := f.send(req, p1)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file_too_large", decode(t, rec).ErrorCode)
		assert.Zero(t, body.n)
	})

	t.Run("file just over the limit fits the body but not the store", func(t *testing.T) {
		rec := f.upload(p1, "scan.pdf", bytes.Repeat([]byte{'x'}, 1<<20+1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file_too_large", decode(t, rec).ErrorCode)
	})

	t.Run("file within the limit is stored", func(t *testing.T) {
		rec := f.upload(p1, "scan.pdf", bytes.Repeat([]byte{'x'}, 1<<20))
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}

// ======================================================
// AUTH / ROLE GATE
// ======================================================

func TestRoleGate(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/admin/doctors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_authorization_header", decode(t, rec).ErrorCode)

	rec = f.do(http.MethodGet, "/api/admin/doctors", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", decode(t, rec).ErrorCode)

	rec = f.do(http.MethodGet, "/api/admin/doctors", f.token("pat-1", access.RolePatient), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "insufficient_role", decode(t, rec).ErrorCode)

	// the stored role wins over the role claimed in the token
	rec = f.do(http.MethodGet, "/api/admin/doctors", f.token("pat-1", access.RoleAdmin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodGet, "/api/admin/doctors?limit=1", f.token("admin", access.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Doctors    []map[string]any `json:"doctors"`
		Total      int64            `json:"total"`
		TotalPages int              `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Len(t, page.Doctors, 1)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/register/patient", "", gin.H{
		"email":     "New.Patient@Mail.io",
		"password":  "secret123",
		"firstName": "New",
		"lastName":  "Patient",
		"dob":       "1990-02-03",
		"telephone": "555-0101",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/auth/register/patient", "", gin.H{
		"email": "new.patient@mail.io", "password": "secret123", "firstName": "N", "lastName": "P",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email_already_registered", decode(t, rec).ErrorCode)

	rec = f.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "new.patient@mail.io", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "new.patient@mail.io", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &login))
	assert.Equal(t, "patient", login.Role)

	rec = f.do(http.MethodGet, "/api/patient/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"new.patient@mail.io"`)

	// only admins register doctors
	doctor := gin.H{"email": "doc@clinic.io", "password": "secret123", "firstName": "D", "lastName": "R", "category": "Neurology"}
	rec = f.do(http.MethodPost, "/api/auth/register/doctor", login.Token, doctor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = f.do(http.MethodPost, "/api/auth/register/doctor", f.token("admin", access.RoleAdmin), doctor)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/patient/doctors?category=neurology", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"doc@clinic.io"`)
}

func TestProfileUpdate(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)

	rec := f.do(http.MethodPut, "/api/patient/profile/update", p1, gin.H{"name": "Patricia Van One", "address": "1 Main St"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
		Email     string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &profile))
	assert.Equal(t, "Patricia", profile.FirstName)
	assert.Equal(t, "Van One", profile.LastName)
	assert.Equal(t, "1 Main St", profile.Address)
	assert.Equal(t, "p1@mail.io", profile.Email)
}

func TestAvailabilityAndHealth(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.token("pat-1", access.RolePatient)

	bookedID(t, f.book(p1, "doc-a", "09:00"))

	rec := f.do(http.MethodGet, "/api/patient/doctors/doc-a/availability?date="+bookingDay, p1, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, `"start":"08:00"`)
	assert.Contains(t, body, `"start":"10:00"`)
	assert.NotContains(t, body, `"start":"09:00"`)
	assert.NotContains(t, body, `"start":"12:00"`)

	rec = f.do(http.MethodGet, "/api/patient/doctors/doc-a/availability", p1, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"memory":"ok"`)
}
