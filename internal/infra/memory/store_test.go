package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func mustTime(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", v)
	require.NoError(t, err)
	return ts
}

func TestUsers(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@x.io", Role: "patient"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &models.User{ID: "u2", Email: "a@x.io"}), account.ErrEmailTaken)

	u, err := s.GetUserByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, account.ErrUserNotFound)

	assert.ErrorIs(t, s.UpdateUser(ctx, &models.User{ID: "missing"}), account.ErrUserNotFound)
}

func TestListDoctorsPaging(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cat := "cardiology"
		if i%2 == 1 {
			cat = "dermatology"
		}
		require.NoError(t, s.CreateUser(ctx, &models.User{
			ID:        fmt.Sprintf("d%d", i),
			Email:     fmt.Sprintf("d%d@x.io", i),
			FirstName: fmt.Sprintf("Doc%d", i),
			LastName:  "House",
			Role:      "doctor",
			Category:  cat,
		}))
	}
	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "p", Email: "p@x.io", Role: "patient"}))

	docs, total, err := s.ListDoctors(ctx, account.DoctorFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, docs, 2)
	assert.Equal(t, "d2", docs[0].ID)

	docs, total, _ = s.ListDoctors(ctx, account.DoctorFilter{Category: "Dermatology"})
	assert.Equal(t, int64(2), total)
	assert.Len(t, docs, 2)

	docs, _, _ = s.ListDoctors(ctx, account.DoctorFilter{Name: "doc3 house"})
	require.Len(t, docs, 1)
	assert.Equal(t, "d3", docs[0].ID)

	docs, _, _ = s.ListDoctors(ctx, account.DoctorFilter{Page: 9, Limit: 2})
	assert.Empty(t, docs)

	n, _ := s.CountByRole(ctx, "doctor")
	assert.Equal(t, int64(5), n)
}

func TestAppointmentsOrderingAndTransitions(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	early := appointment.NewPending("p1", "d1", mustTime(t, "2030-01-01 09:00"), time.Now())
	late := appointment.NewPending("p1", "d1", mustTime(t, "2030-01-01 15:00"), time.Now())
	next := appointment.NewPending("p1", "d1", mustTime(t, "2030-01-02 08:00"), time.Now())
	for _, ap := range []*models.Appointment{early, late, next} {
		require.NoError(t, s.CreateAppointment(ctx, ap))
	}

	list, err := s.ListForDoctor(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{next.ID, late.ID, early.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	day, _ := s.ListForDoctorOnDate(ctx, "d1", "2030-01-01")
	assert.Len(t, day, 2)

	ok, err := s.TransitionStatus(ctx, early.ID, appointment.StatusPending, appointment.StatusCancelled, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.TransitionStatus(ctx, early.ID, appointment.StatusPending, appointment.StatusDeclined, time.Now())
	assert.False(t, ok, "stale from-status does not write")

	got, _ := s.GetAppointment(ctx, early.ID)
	assert.Equal(t, "cancelled", got.Status)
	assert.NotNil(t, got.CancelledAt)

	active, _ := s.CountActive(ctx)
	assert.Equal(t, int64(2), active)

	upcoming, _ := s.CountUpcomingForPatient(ctx, "p1", mustTime(t, "2030-01-01 12:00"))
	assert.Equal(t, int64(2), upcoming)

	_, err = s.GetAppointment(ctx, "missing")
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)
}

func TestGrants(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.CreateGrant(ctx, &models.PermissionGrant{ID: "g1", PatientID: "p", DoctorID: "q"}))
	assert.ErrorIs(t, s.CreateGrant(ctx, &models.PermissionGrant{ID: "g2", PatientID: "p", DoctorID: "q"}), access.ErrGrantExists)

	ok, _ := s.GrantExists(ctx, "p", "q")
	assert.True(t, ok)
	ok, _ = s.GrantExists(ctx, "q", "p")
	assert.False(t, ok, "grants are directional")

	list, _ := s.ListGrantsForPatient(ctx, "p")
	assert.Len(t, list, 1)

	removed, _ := s.DeleteGrant(ctx, "p", "q")
	assert.True(t, removed)
	removed, _ = s.DeleteGrant(ctx, "p", "q")
	assert.False(t, removed)
}

func TestAuditLogs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := mustTime(t, "2030-01-01 09:00")

	for i, action := range []string{"a", "b", "a"} {
		require.NoError(t, s.CreateAuditLog(ctx, &models.AuditLog{
			Action:    action,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	logs, total, err := s.ListAuditLogs(ctx, audit.Filter{Action: "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, uint(3), logs[0].ID, "newest first")

	from := base.Add(30 * time.Minute)
	logs, _, _ = s.ListAuditLogs(ctx, audit.Filter{From: &from, Page: 1, Limit: 1})
	require.Len(t, logs, 1)
	assert.Equal(t, uint(3), logs[0].ID)
}
