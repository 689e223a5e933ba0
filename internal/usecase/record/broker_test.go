package record

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/record"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fixture struct {
	store  *memory.Store
	broker *Broker
}

func newFixture(maxBytes int64) *fixture {
	store := memory.NewStore()
	return &fixture{
		store:  store,
		broker: NewBroker(storage.NewMemoryStore(), access.NewResolver(store), nil, maxBytes),
	}
}

func (f *fixture) upload(t *testing.T, patientID, name, body string) string {
	t.Helper()
	url, err := f.broker.Store(context.Background(), patientID, name, "application/pdf", int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	return url
}

func TestStoreAndOwnerRead(t *testing.T) {
	f := newFixture(1 << 20)
	ctx := context.Background()

	url := f.upload(t, "p", "scan.pdf", "%PDF")
	assert.Equal(t, "memory://medical-records/p/scan.pdf", url)

	list, err := f.broker.List(ctx, "p")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "scan.pdf", list[0].Name)
	assert.Equal(t, int64(4), list[0].Size)

	body, info, err := f.broker.Read(ctx, "p", "scan.pdf", "p", access.RolePatient)
	require.NoError(t, err)
	defer body.Close()
	data, _ := io.ReadAll(body)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, "scan.pdf", info.Name)
}

func TestStoreValidation(t *testing.T) {
	f := newFixture(4)
	ctx := context.Background()

	_, err := f.broker.Store(ctx, "p", "../q/x.pdf", "", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidFilename)

	_, err = f.broker.Store(ctx, "p", "", "", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrMissingFilename)

	_, err = f.broker.Store(ctx, "p", "big.pdf", "", 5, strings.NewReader("12345"))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestDoctorNeedsGrant(t *testing.T) {
	f := newFixture(1 << 20)
	ctx := context.Background()
	f.upload(t, "p", "scan.pdf", "%PDF")

	_, err := f.broker.ListFor(ctx, "p", "q", access.RoleDoctor)
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	require.NoError(t, f.store.CreateGrant(ctx, &models.PermissionGrant{ID: "g", PatientID: "p", DoctorID: "q"}))

	list, err := f.broker.ListFor(ctx, "p", "q", access.RoleDoctor)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	body, _, err := f.broker.Read(ctx, "p", "scan.pdf", "q", access.RoleDoctor)
	require.NoError(t, err)
	body.Close()
}

func TestPermissionIsCheckedBeforeExistence(t *testing.T) {
	f := newFixture(1 << 20)
	ctx := context.Background()
	f.upload(t, "p", "scan.pdf", "%PDF")

	_, _, errExisting := f.broker.Read(ctx, "p", "scan.pdf", "q", access.RoleDoctor)
	_, _, errMissing := f.broker.Read(ctx, "p", "nothing.pdf", "q", access.RoleDoctor)
	assert.ErrorIs(t, errExisting, access.ErrAccessDenied)
	assert.ErrorIs(t, errMissing, access.ErrAccessDenied)

	_, _, err := f.broker.Read(ctx, "p", "scan.pdf", "p2", access.RolePatient)
	assert.ErrorIs(t, err, access.ErrAccessDenied, "other patients are denied")

	_, _, err = f.broker.Read(ctx, "p", "nothing.pdf", "p", access.RolePatient)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDeniedReadsAreAudited(t *testing.T) {
	store := memory.NewStore()
	d := audit.NewDispatcher(audit.New(store), zerolog.New(io.Discard))
	broker := NewBroker(storage.NewMemoryStore(), access.NewResolver(store), d, 0)

	_, err := broker.ListFor(context.Background(), "p", "q", access.RoleDoctor)
	require.ErrorIs(t, err, access.ErrAccessDenied)
	d.Close()

	logs, total, err := store.ListAuditLogs(context.Background(), audit.Filter{Action: "record_access_denied"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "q", *logs[0].UserID)
}
