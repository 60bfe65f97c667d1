package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingRepo "caresched/database/repository/booking"
	patientRepo "caresched/database/repository/patient"
	providerRepo "caresched/database/repository/provider"
	"caresched/models"
	"caresched/utils"
)

type mockProviderRepo struct {
	providers map[string]*models.Provider
}

func (m *mockProviderRepo) GetByID(id string) (*models.Provider, error) {
	p, ok := m.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProviderRepo) GetByEmail(string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (m *mockProviderRepo) GetByTokenHash(string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (m *mockProviderRepo) Create(p *models.Provider) error {
	m.providers[p.ID] = p
	return nil
}

func (m *mockProviderRepo) Update(p *models.Provider) error {
	m.providers[p.ID] = p
	return nil
}

func (m *mockProviderRepo) Delete(id string) error {
	delete(m.providers, id)
	return nil
}

func (m *mockProviderRepo) UpdateScheduleConfig(id string, cfg models.ScheduleConfig) error {
	p, ok := m.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.ScheduleConfig = cfg
	return nil
}

func (m *mockProviderRepo) UpdateTokenHash(id, hash string) error {
	return nil
}

type mockPatientRepo struct {
	patients map[string]*models.Patient
}

func (m *mockPatientRepo) GetByID(id string) (*models.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patientRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPatientRepo) GetByEmail(string) (*models.Patient, error) {
	return nil, patientRepo.ErrNotFound
}

func (m *mockPatientRepo) GetByTokenHash(string) (*models.Patient, error) {
	return nil, patientRepo.ErrNotFound
}

func (m *mockPatientRepo) Create(p *models.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Update(p *models.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(id string) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) UpdateTokenHash(id, hash string) error {
	return nil
}

// mockBookingRepo serializes CreateIfNoOverlap with a mutex, matching the
// atomicity the transactional store provides.
type mockBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (m *mockBookingRepo) GetByID(id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			cp := m.bookings[i]
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (m *mockBookingRepo) FindConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ProviderID == providerID && b.Status == models.BookingStatusBooked && b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ProviderID == providerID && b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) CreateIfNoOverlap(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ProviderID == booking.ProviderID && b.Status == models.BookingStatusBooked && b.Overlaps(booking.Start, booking.End) {
			return bookingRepo.ErrOverlap
		}
	}
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *mockBookingRepo) Cancel(id, reason string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			if m.bookings[i].Status != models.BookingStatusBooked {
				cp := m.bookings[i]
				return &cp, bookingRepo.ErrNotCancellable
			}
			now := time.Now().UTC()
			m.bookings[i].Status = models.BookingStatusCancelled
			m.bookings[i].CancelledAt = &now
			m.bookings[i].CancellationReason = reason
			cp := m.bookings[i]
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (m *mockBookingRepo) MarkElapsedCompleted(before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.bookings {
		if m.bookings[i].Status == models.BookingStatusBooked && m.bookings[i].End.Before(before) {
			m.bookings[i].Status = models.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

var testNow = time.Date(2026, time.January, 4, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultBookingService, *mockBookingRepo) {
	bookings := &mockBookingRepo{}
	svc := &DefaultBookingService{
		Providers: &mockProviderRepo{providers: map[string]*models.Provider{
			"prov-1": {ID: "prov-1", ScheduleConfig: models.ScheduleConfig{
				Timezone:         "UTC",
				MinNoticeMinutes: 120,
				MaxDaysAhead:     30,
			}},
		}},
		Patients: &mockPatientRepo{patients: map[string]*models.Patient{
			"pat-1": {ID: "pat-1", Name: "Test Patient"},
			"pat-2": {ID: "pat-2", Name: "Other Patient"},
		}},
		Bookings: bookings,
		Now:      func() time.Time { return testNow },
	}
	return svc, bookings
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID: "prov-1",
		PatientID:  "pat-1",
		Start:      time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC),
	}
}

func TestCreateBookingIntervalValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"zero start", func(r *CreateBookingRequest) { r.Start = time.Time{} }},
		{"zero end", func(r *CreateBookingRequest) { r.End = time.Time{} }},
		{"end before start", func(r *CreateBookingRequest) { r.End = r.Start.Add(-time.Hour) }},
		{"end equals start", func(r *CreateBookingRequest) { r.End = r.Start }},
		{"too short", func(r *CreateBookingRequest) { r.End = r.Start.Add(4 * time.Minute) }},
		{"too long", func(r *CreateBookingRequest) { r.End = r.Start.Add(481 * time.Minute) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.CreateBooking(ctx, req)
			if !utils.IsKind(err, utils.ErrKindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestCreateBookingUnknownParties(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := validRequest()
	req.ProviderID = "no-such"
	if _, err := svc.CreateBooking(ctx, req); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("unknown provider: got %v, want not-found", err)
	}

	req = validRequest()
	req.PatientID = "no-such"
	if _, err := svc.CreateBooking(ctx, req); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("unknown patient: got %v, want not-found", err)
	}
}

func TestCreateBookingNoticeAndHorizon(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Minimum notice is 120 min, so anything before 14:00 is too soon.
	req := validRequest()
	req.Start = testNow.Add(time.Hour)
	req.End = req.Start.Add(30 * time.Minute)
	if _, err := svc.CreateBooking(ctx, req); !utils.IsKind(err, utils.ErrKindConflict) {
		t.Errorf("inside notice window: got %v, want conflict", err)
	}

	// 30-day horizon: day 31 is out.
	req = validRequest()
	req.Start = testNow.AddDate(0, 0, 31)
	req.End = req.Start.Add(30 * time.Minute)
	if _, err := svc.CreateBooking(ctx, req); !utils.IsKind(err, utils.ErrKindConflict) {
		t.Errorf("beyond horizon: got %v, want conflict", err)
	}

	// A start exactly at the earliest bookable instant passes.
	req = validRequest()
	req.Start = testNow.Add(120 * time.Minute)
	req.End = req.Start.Add(30 * time.Minute)
	if _, err := svc.CreateBooking(ctx, req); err != nil {
		t.Errorf("start at earliest instant: unexpected error %v", err)
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	svc, repo := newTestService()

	b, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == "" {
		t.Error("booking should be assigned an ID")
	}
	if b.Status != models.BookingStatusBooked {
		t.Errorf("status = %q, want %q", b.Status, models.BookingStatusBooked)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestCreateBookingOverlapConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, validRequest()); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	base := validRequest()
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"identical interval", base.Start, base.End},
		{"partial overlap", base.Start.Add(15 * time.Minute), base.End.Add(15 * time.Minute)},
		{"containing interval", base.Start.Add(-15 * time.Minute), base.End.Add(15 * time.Minute)},
		{"contained interval", base.Start.Add(10 * time.Minute), base.End.Add(-10 * time.Minute)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Start, req.End = tc.start, tc.end
			if _, err := svc.CreateBooking(ctx, req); !utils.IsKind(err, utils.ErrKindConflict) {
				t.Errorf("got %v, want conflict", err)
			}
		})
	}

	// Touching endpoints do not overlap.
	req := validRequest()
	req.Start, req.End = base.End, base.End.Add(30*time.Minute)
	if _, err := svc.CreateBooking(ctx, req); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
}

func TestCreateBookingAfterCancellationFreesSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, validRequest())
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, first.ID, "patient request"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	req := validRequest()
	req.PatientID = "pat-2"
	if _, err := svc.CreateBooking(ctx, req); err != nil {
		t.Errorf("rebooking a cancelled interval should succeed, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validRequest())
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	cancelled, err := svc.CancelBooking(ctx, b.ID, "patient request")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want %q", cancelled.Status, models.BookingStatusCancelled)
	}
	if cancelled.CancelledAt == nil {
		t.Error("CancelledAt should be stamped")
	}
	if cancelled.CancellationReason != "patient request" {
		t.Errorf("reason = %q, want %q", cancelled.CancellationReason, "patient request")
	}

	// Second cancel is a conflict, not a silent no-op.
	if _, err := svc.CancelBooking(ctx, b.ID, "again"); !utils.IsKind(err, utils.ErrKindConflict) {
		t.Errorf("double cancel: got %v, want conflict", err)
	}

	if _, err := svc.CancelBooking(ctx, "no-such", ""); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("unknown booking: got %v, want not-found", err)
	}
}

func TestConcurrentCreateBookingOneWinner(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	const racers = 8
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case utils.IsKind(err, utils.ErrKindConflict):
			conflicts++
		default:
			t.Errorf("unexpected error kind: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("got %d successful bookings for one interval, want exactly 1", successes)
	}
	if conflicts != racers-1 {
		t.Errorf("got %d conflicts, want %d", conflicts, racers-1)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("store holds %d bookings, want 1", len(repo.bookings))
	}
}

func TestListProviderBookings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, validRequest()); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	from := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	got, err := svc.ListProviderBookings(ctx, "prov-1", from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d bookings, want 1", len(got))
	}

	if _, err := svc.ListProviderBookings(ctx, "prov-1", from, from); !utils.IsKind(err, utils.ErrKindValidation) {
		t.Errorf("empty range: got %v, want validation error", err)
	}
	if _, err := svc.ListProviderBookings(ctx, "no-such", from, from.AddDate(0, 0, 1)); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("unknown provider: got %v, want not-found", err)
	}
}
