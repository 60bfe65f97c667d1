package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "caresched/database/repository/booking"
	patientRepo "caresched/database/repository/patient"
	providerRepo "caresched/database/repository/provider"
	"caresched/models"
	"caresched/services/availability"
	"caresched/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Providers providerRepo.ProviderRepository
	Patients  patientRepo.PatientRepository
	Bookings  bookingRepo.BookingRepository
	Cache     *redis.Client
	Logger    *zap.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateBooking runs the checks in order: interval shape, duration bounds,
// provider/patient existence, notice and horizon window, then the overlap
// check fused with the insert in one transaction. Conflicts always abort
// before any mutation.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := validateInterval(req.Start, req.End); err != nil {
		return nil, err
	}

	provider, err := s.Providers.GetByID(req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("provider %s not found", req.ProviderID)
		}
		return nil, fmt.Errorf("failed to load provider %s: %w", req.ProviderID, err)
	}
	if _, err := s.Patients.GetByID(req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("patient %s not found", req.PatientID)
		}
		return nil, fmt.Errorf("failed to load patient %s: %w", req.PatientID, err)
	}

	cfg := provider.ScheduleConfig
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, utils.NewValidationError("provider has an invalid timezone %q", cfg.Timezone)
	}
	earliest, latest := availability.NoticeHorizonWindow(cfg, s.now().In(loc))
	if req.Start.Before(earliest) {
		return nil, utils.NewConflictError("booking start violates the provider's minimum notice period")
	}
	if req.Start.After(latest) {
		return nil, utils.NewConflictError("booking start is beyond the provider's booking horizon")
	}

	now := s.now()
	booking := &models.Booking{
		ID:         uuid.New().String(),
		ProviderID: req.ProviderID,
		PatientID:  req.PatientID,
		Start:      req.Start.UTC(),
		End:        req.End.UTC(),
		Status:     models.BookingStatusBooked,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Bookings.CreateIfNoOverlap(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrOverlap) {
			return nil, utils.NewConflictError("slot already booked")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	availability.BumpProviderCacheVersion(ctx, s.Cache, req.ProviderID)
	if s.Logger != nil {
		s.Logger.Info("booking created",
			zap.String("bookingID", booking.ID),
			zap.String("providerID", booking.ProviderID),
			zap.Time("start", booking.Start),
			zap.Time("end", booking.End))
	}
	return booking, nil
}

// CancelBooking transitions booked→cancelled. Cancelling a booking that is
// already cancelled (or otherwise terminal) is a conflict.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	cancelled, err := s.Bookings.Cancel(bookingID, reason)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, utils.NewNotFoundError("booking %s not found", bookingID)
		case errors.Is(err, bookingRepo.ErrNotCancellable):
			if cancelled != nil && cancelled.Status == models.BookingStatusCancelled {
				return nil, utils.NewConflictError("booking is already cancelled")
			}
			return nil, utils.NewConflictError("booking can no longer be cancelled")
		default:
			return nil, fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
		}
	}

	availability.BumpProviderCacheVersion(ctx, s.Cache, cancelled.ProviderID)
	if s.Logger != nil {
		s.Logger.Info("booking cancelled", zap.String("bookingID", bookingID))
	}
	return cancelled, nil
}

// GetBooking retrieves a single booking by ID.
func (s *DefaultBookingService) GetBooking(_ context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	return b, nil
}

// ListProviderBookings returns the provider's bookings intersecting [from, to).
func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	if !to.After(from) {
		return nil, utils.NewValidationError("invalid range: end must be after start")
	}
	if _, err := s.Providers.GetByID(providerID); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("provider %s not found", providerID)
		}
		return nil, fmt.Errorf("failed to load provider %s: %w", providerID, err)
	}
	return s.Bookings.ListByProvider(ctx, providerID, from, to)
}
