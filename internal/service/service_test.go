package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/beauty_portal/internal/db/dbtest"
	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
)

type fixture struct {
	repo      *repo.GormRepo
	events    *events.Recorder
	auth      *AuthService
	catalog   *CatalogService
	bookings  *BookingService
	community *CommunityService
	routine   *RoutineService
	store     *StoreService
	admin     *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := repo.New(dbtest.New(t))
	rec := &events.Recorder{}
	blantyre, err := time.LoadLocation("Africa/Blantyre")
	require.NoError(t, err)

	f := &fixture{
		repo:      r,
		events:    rec,
		auth:      &AuthService{Repo: r, AccessSecret: []byte("access"), RefreshSecret: []byte("refresh"), Events: rec},
		catalog:   &CatalogService{Repo: r, Events: rec},
		bookings:  &BookingService{Repo: r, Events: rec, Location: blantyre},
		community: &CommunityService{Repo: r, Events: rec},
		routine:   &RoutineService{Repo: r, Events: rec, Location: blantyre},
		store:     &StoreService{Repo: r, Events: rec},
	}
	f.admin = &AdminService{Catalog: f.catalog, Bookings: f.bookings, Community: f.community, Store: f.store}
	return f
}

func (f *fixture) product(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	id, err := f.catalog.Create(context.Background(), CatalogInput{Kind: KindProduct, Name: name, Price: price})
	require.NoError(t, err)
	return id
}

func (f *fixture) service(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id, err := f.catalog.Create(context.Background(), CatalogInput{Kind: KindService, Name: name, Price: "25", Duration: "60"})
	require.NoError(t, err)
	return id
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.repo.DB.Model(model).Count(&n).Error)
	return n
}
