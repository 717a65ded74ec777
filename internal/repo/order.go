package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

// MakeOrder copies the user's cart into an order request with one item per line and
// empties the cart. Every step runs in one transaction.
func (r *GormRepo) MakeOrder(ctx context.Context, userID uuid.UUID, note *string) (*models.OrderRequest, error) {
	var order models.OrderRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrNoCartItems
		}

		order = models.OrderRequest{UserID: userID, Status: models.OrderRequested, Note: note}
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderRequestItem, 0, len(cart))
		for _, c := range cart {
			items = append(items, models.OrderRequestItem{
				OrderRequestID: order.ID,
				ProductID:      c.ProductID,
				Quantity:       c.Quantity,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.UpdateColumn(ctx, &models.OrderRequest{}, id, "status", status)
}

func (r *GormRepo) UserOrders(ctx context.Context, userID uuid.UUID, limit int) ([]models.OrderRequest, error) {
	var out []models.OrderRequest
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) RecentOrders(ctx context.Context, limit int) ([]models.OrderRequest, error) {
	var out []models.OrderRequest
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
