package record

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/record"
)

// Broker mediates every read and write of medical records. Reads check the
// requester's permission before touching storage, so a caller without
// access learns nothing about which files exist.
type Broker struct {
	store    domain.ObjectStore
	resolver *access.Resolver
	audit    *audit.Dispatcher
	maxBytes int64
}

func NewBroker(
	store domain.ObjectStore,
	resolver *access.Resolver,
	audit *audit.Dispatcher,
	maxBytes int64,
) *Broker {
	return &Broker{
		store:    store,
		resolver: resolver,
		audit:    audit,
		maxBytes: maxBytes,
	}
}

// Store uploads a record for its owning patient and returns a link to it.
func (b *Broker) Store(
	ctx context.Context,
	patientID string,
	filename string,
	contentType string,
	size int64,
	body io.Reader,
) (string, error) {

	if err := domain.ValidateFilename(filename); err != nil {
		return "", err
	}
	if b.maxBytes > 0 && size > b.maxBytes {
		return "", domain.ErrFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := domain.Key(patientID, filename)
	if err := b.store.Put(ctx, key, contentType, size, body); err != nil {
		return "", fmt.Errorf("store record: %w", err)
	}

	url, err := b.store.URL(ctx, key)
	if err != nil {
		return "", err
	}

	b.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(patientID),
		Action:   "record_uploaded",
		Entity:   "medical_record",
		EntityID: audit.StringPtr(filename),
		Metadata: map[string]any{"size": size, "contentType": contentType},
	})

	return url, nil
}

// List returns the metadata of every record of patientID.
func (b *Broker) List(ctx context.Context, patientID string) ([]domain.Info, error) {
	prefix := domain.Prefix(patientID)
	objects, err := b.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]domain.Info, 0, len(objects))
	for _, obj := range objects {
		out = append(out, domain.InfoFrom(prefix, obj))
	}
	return out, nil
}

func (b *Broker) ListFor(
	ctx context.Context,
	patientID string,
	requesterID string,
	requesterRole access.Role,
) ([]domain.Info, error) {

	if err := b.authorize(ctx, patientID, requesterID, requesterRole); err != nil {
		return nil, err
	}
	return b.List(ctx, patientID)
}

// Read streams one record. The caller closes the reader.
func (b *Broker) Read(
	ctx context.Context,
	patientID string,
	filename string,
	requesterID string,
	requesterRole access.Role,
) (io.ReadCloser, *domain.Info, error) {

	if err := domain.ValidateFilename(filename); err != nil {
		return nil, nil, err
	}
	if err := b.authorize(ctx, patientID, requesterID, requesterRole); err != nil {
		return nil, nil, err
	}

	body, obj, err := b.store.Get(ctx, domain.Key(patientID, filename))
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			return nil, nil, domain.ErrRecordNotFound
		}
		return nil, nil, fmt.Errorf("read record: %w", err)
	}

	info := domain.InfoFrom(domain.Prefix(patientID), *obj)
	return body, &info, nil
}

func (b *Broker) authorize(
	ctx context.Context,
	patientID string,
	requesterID string,
	requesterRole access.Role,
) error {

	ok, err := b.resolver.CanReadRecords(ctx, requesterID, requesterRole, patientID)
	if err != nil {
		return err
	}
	if !ok {
		b.audit.Dispatch(audit.Event{
			UserID:   audit.StringPtr(requesterID),
			Action:   "record_access_denied",
			Entity:   "medical_record",
			EntityID: audit.StringPtr(patientID),
		})
		return access.ErrAccessDenied
	}
	return nil
}
