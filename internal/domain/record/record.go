package record

import (
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	keyRoot        = "medical-records"
	maxFilenameLen = 255
)

var ErrObjectNotFound = errors.New("object not found")

var (
	ErrMissingFilename = httperr.Validation("missing_filename", "Filename is required.")
	ErrInvalidFilename = httperr.Validation("invalid_filename", "Filename must be a plain file name.")
	ErrFileTooLarge    = httperr.Validation("file_too_large", "File exceeds the upload size limit.")
	ErrRecordNotFound  = httperr.ErrBusiness(httperr.KindNotFound, "record_not_found", "Medical record not found.")
)

// Info is the metadata exposed to clients; Name has no storage prefix.
type Info struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Prefix is where every record of patientID lives.
func Prefix(patientID string) string {
	return keyRoot + "/" + patientID + "/"
}

func Key(patientID, filename string) string {
	return Prefix(patientID) + filename
}

func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingFilename
	}
	if name == "." || name == ".." || len(name) > maxFilenameLen {
		return ErrInvalidFilename
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidFilename
	}
	return nil
}

// InfoFrom strips prefix from obj.Key.
func InfoFrom(prefix string, obj ObjectInfo) Info {
	return Info{
		Name:        strings.TrimPrefix(obj.Key, prefix),
		Size:        obj.Size,
		ContentType: obj.ContentType,
		UpdatedAt:   obj.UpdatedAt,
	}
}
