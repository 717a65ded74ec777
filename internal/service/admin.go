package service

import (
	"context"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

// AdminService reads what the console shows. Mutations go through the owning services.
type AdminService struct {
	Catalog   *CatalogService
	Bookings  *BookingService
	Community *CommunityService
	Store     *StoreService
}

type Dashboard struct {
	Services []models.Service
	Products []models.Product
	Posts    []models.Post
	Bookings []models.Booking
	Orders   []models.OrderRequest
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.Services, err = s.Catalog.AllServices(ctx); err != nil {
		return nil, err
	}
	if d.Products, err = s.Catalog.AllProducts(ctx); err != nil {
		return nil, err
	}
	if d.Posts, err = s.Community.Recent(ctx); err != nil {
		return nil, err
	}
	if d.Bookings, err = s.Bookings.Recent(ctx); err != nil {
		return nil, err
	}
	if d.Orders, err = s.Store.RecentOrders(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}
