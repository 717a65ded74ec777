package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

func (r *GormRepo) CreateService(ctx context.Context, s *models.Service) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// UpdateColumn sets one column on the row with the given id of model's table.
// A missing id affects no rows and is not an error.
func (r *GormRepo) UpdateColumn(ctx context.Context, model any, id uuid.UUID, column string, value any) error {
	return r.DB.WithContext(ctx).Model(model).Where("id = ?", id).Update(column, value).Error
}

func (r *GormRepo) Services(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	q := r.DB.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) Products(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	var out []models.Product
	q := r.DB.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
