// Package memory keeps every repository in process memory. It backs
// PERSISTENCE_DRIVER=memory and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]models.User
	appointments map[string]models.Appointment
	grants       map[string]models.PermissionGrant
	auditLogs    []models.AuditLog

	days *lock.LocalLocker
}

var (
	_ appointment.Repository = (*Store)(nil)
	_ account.Repository     = (*Store)(nil)
	_ access.GrantRepository = (*Store)(nil)
	_ audit.Sink             = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		users:        make(map[string]models.User),
		appointments: make(map[string]models.Appointment),
		grants:       make(map[string]models.PermissionGrant),
		days:         lock.NewLocalLocker(30 * time.Second),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

// ======================================================
// Users
// ======================================================

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return account.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return account.ErrUserNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) ListDoctors(_ context.Context, f account.DoctorFilter) ([]models.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(f.Name))
	var matched []models.User
	for _, u := range s.users {
		if u.Role != string(access.RoleDoctor) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(u.Category, f.Category) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(u.FullName()), name) {
			continue
		}
		matched = append(matched, u)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.ID < b.ID
	})

	total := int64(len(matched))
	if f.Limit > 0 {
		matched = page(matched, f.Offset(), f.Limit)
	}
	return matched, total, nil
}

func (s *Store) CountByRole(_ context.Context, role string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ======================================================
// Appointments
// ======================================================

func (s *Store) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (s *Store) ListForDoctorOnDate(_ context.Context, doctorID, date string) ([]models.Appointment, error) {
	return s.filterAppointments(func(ap models.Appointment) bool {
		return ap.DoctorID == doctorID && ap.Date == date
	}, false), nil
}

func (s *Store) ListForDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	return s.filterAppointments(func(ap models.Appointment) bool {
		return ap.DoctorID == doctorID
	}, true), nil
}

func (s *Store) ListForPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return s.filterAppointments(func(ap models.Appointment) bool {
		return ap.PatientID == patientID
	}, true), nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = now
	}
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) TransitionStatus(_ context.Context, id string, from, to appointment.Status, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok || ap.Status != string(from) {
		return false, nil
	}
	appointment.Apply(&ap, to, at)
	s.appointments[id] = ap
	return true, nil
}

func (s *Store) CountUpcomingForPatient(_ context.Context, patientID string, now time.Time) (int64, error) {
	return s.countAppointments(func(ap models.Appointment) bool {
		return ap.PatientID == patientID && isActive(ap.Status) && ap.StartTime.After(now)
	}), nil
}

func (s *Store) CountByPatientAndStatus(_ context.Context, patientID string, status appointment.Status) (int64, error) {
	return s.countAppointments(func(ap models.Appointment) bool {
		return ap.PatientID == patientID && ap.Status == string(status)
	}), nil
}

func (s *Store) CountActive(context.Context) (int64, error) {
	return s.countAppointments(func(ap models.Appointment) bool {
		return isActive(ap.Status)
	}), nil
}

func (s *Store) WithDoctorDays(
	ctx context.Context,
	doctorID string,
	dates []string,
	fn func(ctx context.Context, tx appointment.Repository) error,
) error {
	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, doctorID+":"+date)
	}
	return lock.WithLocks(ctx, s.days, keys, func(ctx context.Context) error {
		return fn(ctx, s)
	})
}

func (s *Store) filterAppointments(keep func(models.Appointment) bool, newestFirst bool) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, ap := range s.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return (a.Date > b.Date) == newestFirst
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.After(b.StartTime) == newestFirst
		}
		return a.ID < b.ID
	})
	return out
}

func (s *Store) countAppointments(keep func(models.Appointment) bool) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, ap := range s.appointments {
		if keep(ap) {
			n++
		}
	}
	return n
}

func isActive(status string) bool {
	return status == string(appointment.StatusPending) || status == string(appointment.StatusConfirmed)
}

// ======================================================
// Permission grants
// ======================================================

func grantKey(patientID, doctorID string) string {
	return patientID + "|" + doctorID
}

func (s *Store) GrantExists(_ context.Context, patientID, doctorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.grants[grantKey(patientID, doctorID)]
	return ok, nil
}

func (s *Store) CreateGrant(_ context.Context, g *models.PermissionGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := grantKey(g.PatientID, g.DoctorID)
	if _, ok := s.grants[key]; ok {
		return access.ErrGrantExists
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	s.grants[key] = *g
	return nil
}

func (s *Store) DeleteGrant(_ context.Context, patientID, doctorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := grantKey(patientID, doctorID)
	if _, ok := s.grants[key]; !ok {
		return false, nil
	}
	delete(s.grants, key)
	return true, nil
}

func (s *Store) ListGrantsForPatient(_ context.Context, patientID string) ([]models.PermissionGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PermissionGrant, 0)
	for _, g := range s.grants {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].DoctorID < out[j].DoctorID
	})
	return out, nil
}

// ======================================================
// Audit
// ======================================================

func (s *Store) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = uint(len(s.auditLogs) + 1)
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.AuditLog
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.UserID != "" && (l.UserID == nil || *l.UserID != f.UserID) {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if f.Limit > 0 {
		offset := 0
		if f.Page > 1 {
			offset = (f.Page - 1) * f.Limit
		}
		matched = page(matched, offset, f.Limit)
	}
	return matched, total, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
