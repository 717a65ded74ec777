package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

func (r *GormRepo) CreateRoutineItem(ctx context.Context, item *models.RoutineItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) DeactivateRoutineItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.RoutineItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("active", false).Error
}

func (r *GormRepo) RoutineItemOwned(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.RoutineItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) ActiveRoutineItems(ctx context.Context, userID uuid.UUID) ([]models.RoutineItem, error) {
	var out []models.RoutineItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetRoutineDone writes the target done state for one (user, item, day) in a single upsert.
func (r *GormRepo) SetRoutineDone(ctx context.Context, log *models.RoutineLog) error {
	log.UpdatedAt = time.Now().UTC()
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "routine_item_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"done", "updated_at"}),
	}).Create(log).Error
}

// DoneOn returns the done flag per item for one day.
func (r *GormRepo) DoneOn(ctx context.Context, userID uuid.UUID, day string) (map[uuid.UUID]bool, error) {
	var logs []models.RoutineLog
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, day).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(logs))
	for _, l := range logs {
		out[l.RoutineItemID] = l.Done
	}
	return out, nil
}

func (r *GormRepo) RoutineLogs(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) ([]models.RoutineLog, error) {
	var out []models.RoutineLog
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND routine_item_id = ?", userID, itemID).
		Order("log_date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
