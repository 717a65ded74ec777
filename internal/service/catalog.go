package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/money"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
)

type Kind string

const (
	KindService Kind = "service"
	KindProduct Kind = "product"
)

func (k Kind) model() (any, bool) {
	switch k {
	case KindService:
		return &models.Service{}, true
	case KindProduct:
		return &models.Product{}, true
	}
	return nil, false
}

var catalogPaths = []string{"/admin", "/booking", "/store"}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

type CatalogInput struct {
	Kind     Kind
	Name     string
	Price    string
	Duration string
}

// Create inserts an active service or product. Duration is only read for services.
func (s *CatalogService) Create(ctx context.Context, in CatalogInput) (uuid.UUID, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create", "kind", in.Kind)

	dataErr := invalid("Invalid " + string(in.Kind) + " data")
	priceErr := invalid("Invalid " + string(in.Kind) + " price")

	if _, ok := in.Kind.model(); !ok {
		return uuid.Nil, invalid("Unknown catalog kind")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return uuid.Nil, dataErr
	}
	price, err := money.ToMinorUnits(in.Price)
	if err != nil {
		return uuid.Nil, priceErr
	}

	var id uuid.UUID
	switch in.Kind {
	case KindService:
		duration, err := strconv.Atoi(strings.TrimSpace(in.Duration))
		if err != nil || duration <= 0 {
			return uuid.Nil, dataErr
		}
		svc := models.Service{Name: name, DurationMinutes: duration, PriceCents: price, Active: true}
		if err := s.Repo.CreateService(ctx, &svc); err != nil {
			l.Error("create_error", "error", err)
			return uuid.Nil, storage("create service", err)
		}
		id = svc.ID
	case KindProduct:
		p := models.Product{Name: name, PriceCents: price, Active: true}
		if err := s.Repo.CreateProduct(ctx, &p); err != nil {
			l.Error("create_error", "error", err)
			return uuid.Nil, storage("create product", err)
		}
		id = p.ID
	}

	publish(ctx, s.Events, events.Event{Type: events.CatalogUpdated, Paths: catalogPaths, IDs: map[string]string{string(in.Kind): id.String()}})
	return id, nil
}

// SetActive flips visibility. Unknown ids are a no-op.
func (s *CatalogService) SetActive(ctx context.Context, kind Kind, id uuid.UUID, active bool) error {
	m, ok := kind.model()
	if !ok {
		return invalid("Unknown catalog kind")
	}
	if err := s.Repo.UpdateColumn(ctx, m, id, "active", active); err != nil {
		return storage("set active", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.CatalogUpdated, Paths: catalogPaths, IDs: map[string]string{string(kind): id.String()}})
	return nil
}

func (s *CatalogService) SetPrice(ctx context.Context, kind Kind, id uuid.UUID, price string) error {
	m, ok := kind.model()
	if !ok {
		return invalid("Unknown catalog kind")
	}
	priceErr := invalid("Invalid " + string(kind) + " price")
	if id == uuid.Nil {
		return priceErr
	}
	minor, err := money.ToMinorUnits(price)
	if err != nil {
		return priceErr
	}
	if err := s.Repo.UpdateColumn(ctx, m, id, "price_cents", minor); err != nil {
		return storage("set price", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.CatalogUpdated, Paths: catalogPaths, IDs: map[string]string{string(kind): id.String()}})
	return nil
}

func (s *CatalogService) ActiveServices(ctx context.Context) ([]models.Service, error) {
	out, err := s.Repo.Services(ctx, true)
	return out, storage("list services", err)
}

func (s *CatalogService) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	out, err := s.Repo.Products(ctx, true)
	return out, storage("list products", err)
}

func (s *CatalogService) AllServices(ctx context.Context) ([]models.Service, error) {
	out, err := s.Repo.Services(ctx, false)
	return out, storage("list services", err)
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]models.Product, error) {
	out, err := s.Repo.Products(ctx, false)
	return out, storage("list products", err)
}
