package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func seedDoctors(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, store.CreateUser(context.Background(), &models.User{
			ID:        fmt.Sprintf("d%02d", i),
			Email:     fmt.Sprintf("d%02d@clinic.io", i),
			FirstName: fmt.Sprintf("Doc%02d", i),
			LastName:  "Silva",
			Role:      "doctor",
			Category:  "general",
		}))
	}
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))

	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = NormalizePage(2, 1000)
	assert.Equal(t, MaxPageSize, limit)
}

func TestListDoctors(t *testing.T) {
	store := memory.NewStore()
	seedDoctors(t, store, 25)
	require.NoError(t, store.CreateUser(context.Background(), &models.User{ID: "p", Email: "p@clinic.io", Role: "patient"}))

	got, err := NewListDoctors(store).Execute(context.Background(), account.DoctorFilter{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(25), got.Total)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, 3, got.Page)
	require.Len(t, got.Doctors, 5)
	assert.Equal(t, "Doc20 Silva", got.Doctors[0].Name)
}

func TestDashboardStats(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	seedDoctors(t, store, 2)
	require.NoError(t, store.CreateUser(ctx, &models.User{ID: "p", Email: "p@clinic.io", Role: "patient"}))
	require.NoError(t, store.CreateUser(ctx, &models.User{ID: "a", Email: "a@clinic.io", Role: "admin"}))

	start := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, status := range []appointment.Status{
		appointment.StatusPending,
		appointment.StatusConfirmed,
		appointment.StatusCancelled,
		appointment.StatusCompleted,
	} {
		ap := appointment.NewPending("p", "d00", start.Add(time.Duration(i)*time.Hour), start)
		ap.Status = string(status)
		require.NoError(t, store.CreateAppointment(ctx, ap))
	}

	got, err := NewGetDashboardStats(store, store).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{TotalDoctors: 2, TotalPatients: 1, ActiveAppointments: 2}, got)
}

func TestListAuditLogsDefaults(t *testing.T) {
	store := memory.NewStore()
	got, err := NewListAuditLogs(store).Execute(context.Background(), audit.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, got.Logs)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 50, got.Limit)
}
