package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/record"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucRecord "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/record"
)

// multipartOverhead is the room left for boundaries and part headers on
// top of the file size limit.
const multipartOverhead = 64 << 10

type RecordHandler struct {
	broker   *ucRecord.Broker
	maxBytes int64
	log      zerolog.Logger
}

func NewRecordHandler(broker *ucRecord.Broker, maxBytes int64, log zerolog.Logger) *RecordHandler {
	return &RecordHandler{broker: broker, maxBytes: maxBytes, log: log}
}

// limitedBody remembers whether the wrapped MaxBytesReader hit its limit,
// however the multipart parser wraps the error.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.exceeded = true
	}
	return n, err
}

// ======================================================
// PATIENT
// ======================================================

func (h *RecordHandler) Upload(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	// --------------------------------------------------
	// Bound the body before the multipart parser reads it
	// --------------------------------------------------
	limit := h.maxBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		httperr.Respond(c, h.log, record.ErrFileTooLarge)
		return
	}
	body := &limitedBody{ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, limit)}
	c.Request.Body = body

	fh, err := c.FormFile("file")
	if body.exceeded {
		h.log.Warn().
			Str("user_id", patient.UserID).
			Int64("limit", limit).
			Msg("upload rejected, body over limit")
		httperr.Respond(c, h.log, record.ErrFileTooLarge)
		return
	}
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A multipart field named file is required.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, h.log, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	url, err := h.broker.Store(
		c.Request.Context(),
		patient.UserID,
		fh.Filename,
		fh.Header.Get("Content-Type"),
		fh.Size,
		f,
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Medical record uploaded.", gin.H{"url": url})
}

func (h *RecordHandler) ListOwn(c *gin.Context) {
	patient := middleware.MustIdentity(c)

	items, err := h.broker.List(c.Request.Context(), patient.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *RecordHandler) DownloadOwn(c *gin.Context) {
	patient := middleware.MustIdentity(c)
	h.download(c, patient.UserID)
}

// ======================================================
// DOCTOR
// ======================================================

func (h *RecordHandler) ListForPatient(c *gin.Context) {
	doctor := middleware.MustIdentity(c)

	items, err := h.broker.ListFor(c.Request.Context(), c.Param("patientId"), doctor.UserID, doctor.Role)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *RecordHandler) DownloadForPatient(c *gin.Context) {
	h.download(c, c.Param("patientId"))
}

func (h *RecordHandler) download(c *gin.Context, patientID string) {
	requester := middleware.MustIdentity(c)

	body, info, err := h.broker.Read(
		c.Request.Context(),
		patientID,
		c.Query("filename"),
		requester.UserID,
		requester.Role,
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, info.Size, "application/octet-stream", body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", info.Name),
	})
}
