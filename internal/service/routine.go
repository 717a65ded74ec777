package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
)

const dayLayout = "2006-01-02"

type RoutineService struct {
	Repo     *repo.GormRepo
	Events   events.Publisher
	Location *time.Location
	Now      func() time.Time
}

type RoutineDay struct {
	Day   string
	Items []RoutineEntry
}

type RoutineEntry struct {
	models.RoutineItem
	Done bool
}

// Today is the current calendar day in the configured zone, as YYYY-MM-DD.
func (s *RoutineService) Today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc).Format(dayLayout)
}

func ParseTimeOfDay(v string) (models.TimeOfDay, bool) {
	switch t := models.TimeOfDay(strings.ToLower(strings.TrimSpace(v))); t {
	case "":
		return models.AnyTime, true
	case models.AnyTime, models.Morning, models.Night:
		return t, true
	}
	return "", false
}

func (s *RoutineService) CreateItem(ctx context.Context, userID uuid.UUID, name, timeOfDay string) (*models.RoutineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Missing routine name")
	}
	tod, ok := ParseTimeOfDay(timeOfDay)
	if !ok {
		return nil, invalid("Invalid time of day")
	}
	item := models.RoutineItem{UserID: userID, Name: name, TimeOfDay: tod, Active: true}
	if err := s.Repo.CreateRoutineItem(ctx, &item); err != nil {
		return nil, storage("create routine item", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.RoutineUpdated, UserID: userID.String(), Paths: []string{"/routine"}})
	return &item, nil
}

// Deactivate hides the item without deleting its history. Other users' items are untouched.
func (s *RoutineService) Deactivate(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.Repo.DeactivateRoutineItem(ctx, userID, itemID); err != nil {
		return storage("deactivate routine item", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.RoutineUpdated, UserID: userID.String(), Paths: []string{"/routine"}})
	return nil
}

// SetDone stores the target state for the item on day (today when empty).
// The caller sends the state it wants, not a flip.
func (s *RoutineService) SetDone(ctx context.Context, userID, itemID uuid.UUID, day string, done bool) error {
	day = strings.TrimSpace(day)
	if day == "" {
		day = s.Today()
	}
	if _, err := time.Parse(dayLayout, day); err != nil {
		return invalid("Invalid date")
	}
	if itemID == uuid.Nil {
		return invalid("Missing routine item")
	}
	owned, err := s.Repo.RoutineItemOwned(ctx, userID, itemID)
	if err != nil {
		return storage("find routine item", err)
	}
	if !owned {
		return ErrNotFound
	}
	log := models.RoutineLog{UserID: userID, RoutineItemID: itemID, LogDate: day, Done: done}
	if err := s.Repo.SetRoutineDone(ctx, &log); err != nil {
		return storage("set routine done", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.RoutineUpdated, UserID: userID.String(), Paths: []string{"/routine"}, IDs: map[string]string{"item": itemID.String(), "day": day}})
	return nil
}

// Day returns the active items, newest first, with their done state for today.
func (s *RoutineService) Day(ctx context.Context, userID uuid.UUID) (*RoutineDay, error) {
	day := s.Today()
	items, err := s.Repo.ActiveRoutineItems(ctx, userID)
	if err != nil {
		return nil, storage("list routine items", err)
	}
	done, err := s.Repo.DoneOn(ctx, userID, day)
	if err != nil {
		return nil, storage("list routine logs", err)
	}
	out := &RoutineDay{Day: day, Items: make([]RoutineEntry, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, RoutineEntry{RoutineItem: it, Done: done[it.ID]})
	}
	return out, nil
}
