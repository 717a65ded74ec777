package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

func (r *GormRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SetBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	return r.UpdateColumn(ctx, &models.Booking{}, id, "status", status)
}

func (r *GormRepo) UserBookings(ctx context.Context, userID uuid.UUID, limit int) ([]models.Booking, error) {
	var out []models.Booking
	if err := r.DB.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("starts_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) RecentBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	var out []models.Booking
	if err := r.DB.WithContext(ctx).
		Preload("Service").
		Order("starts_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
