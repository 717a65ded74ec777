package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/metrics"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
)

const bookingListLimit = 20

// Layouts accepted for the booking time, the first being what datetime-local inputs send.
var bookingLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

type BookingService struct {
	Repo     *repo.GormRepo
	Events   events.Publisher
	Location *time.Location
}

type BookingInput struct {
	ServiceID string
	StartsAt  string
	Note      string
}

func (s *BookingService) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// ParseStartsAt reads wall-clock input in the salon's zone and returns the instant in UTC.
func (s *BookingService) ParseStartsAt(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range bookingLayouts {
		if t, err := time.ParseInLocation(layout, v, s.loc()); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("Invalid date time")
}

func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, in BookingInput) (*models.Booking, error) {
	l := logging.FromContext(ctx).With("svc", "booking.create")

	if strings.TrimSpace(in.ServiceID) == "" || strings.TrimSpace(in.StartsAt) == "" {
		return nil, invalid("Missing service or time")
	}
	serviceID, err := uuid.Parse(strings.TrimSpace(in.ServiceID))
	if err != nil {
		return nil, invalid("Unknown service")
	}
	startsAt, err := s.ParseStartsAt(in.StartsAt)
	if err != nil {
		return nil, err
	}

	b := models.Booking{
		UserID:    userID,
		ServiceID: serviceID,
		StartsAt:  startsAt,
		Status:    models.BookingRequested,
		Note:      optional(in.Note),
	}
	if err := s.Repo.CreateBooking(ctx, &b); err != nil {
		l.Error("create_booking_error", "error", err)
		return nil, storage("create booking", err)
	}
	metrics.BookingsCreated.Inc()
	publish(ctx, s.Events, events.Event{Type: events.BookingCreated, UserID: userID.String(), Paths: []string{"/booking", "/admin"}, IDs: map[string]string{"booking": b.ID.String()}})
	return &b, nil
}

// SetStatus moves a booking to any recognised status; there is no transition graph.
func (s *BookingService) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	st := models.BookingStatus(strings.TrimSpace(status))
	if st == "" {
		st = models.BookingRequested
	}
	if !slices.Contains(models.BookingStatuses, st) {
		return invalid("Invalid booking status")
	}
	if err := s.Repo.SetBookingStatus(ctx, id, st); err != nil {
		return storage("set booking status", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.BookingStatusSet, Paths: []string{"/booking", "/admin"}, IDs: map[string]string{"booking": id.String(), "status": string(st)}})
	return nil
}

func (s *BookingService) ForUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	out, err := s.Repo.UserBookings(ctx, userID, bookingListLimit)
	return out, storage("list bookings", err)
}

func (s *BookingService) Recent(ctx context.Context) ([]models.Booking, error) {
	out, err := s.Repo.RecentBookings(ctx, bookingListLimit)
	return out, storage("list bookings", err)
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
