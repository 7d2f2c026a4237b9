package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatherly/contexts/event-planning/event-service/adapters/memory"
	"gatherly/contexts/event-planning/event-service/domain/entities"
	domainerrors "gatherly/contexts/event-planning/event-service/domain/errors"
	"gatherly/contexts/event-planning/event-service/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, IDGen: store}
}

func createEvent(t *testing.T, service Service) entities.Event {
	t.Helper()
	event, err := service.CreateEvent(context.Background(), ports.CreateEventInput{
		Title:     "Team offsite",
		CreatedBy: "organizer-1",
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	return event
}

func TestCreateEventAssignsIDAndTimestamps(t *testing.T) {
	service := newTestService()

	event := createEvent(t, service)
	if event.EventID == "" {
		t.Fatal("event id not assigned")
	}
	if event.CreatedAt.IsZero() || event.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}

	loaded, err := service.GetEvent(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if loaded.Title != "Team offsite" {
		t.Fatalf("title = %q", loaded.Title)
	}
}

func TestCreateEventValidatesInput(t *testing.T) {
	service := newTestService()

	if _, err := service.CreateEvent(context.Background(), ports.CreateEventInput{
		Title: "   ", CreatedBy: "organizer-1",
	}); !errors.Is(err, domainerrors.ErrInvalidEventInput) {
		t.Fatalf("blank title error = %v, want ErrInvalidEventInput", err)
	}

	start := time.Date(2026, time.June, 2, 12, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	if _, err := service.CreateEvent(context.Background(), ports.CreateEventInput{
		Title: "Offsite", CreatedBy: "organizer-1", StartsAt: &start, EndsAt: &end,
	}); !errors.Is(err, domainerrors.ErrInvalidSchedule) {
		t.Fatalf("inverted window error = %v, want ErrInvalidSchedule", err)
	}
}

func TestUpdateEventPatchesTitleAndSchedule(t *testing.T) {
	service := newTestService()
	event := createEvent(t, service)

	title := "Summer offsite"
	start := time.Date(2026, time.June, 2, 12, 0, 0, 0, time.UTC)
	updated, err := service.UpdateEvent(context.Background(), event.EventID, ports.UpdateEventInput{
		Title:    &title,
		StartsAt: &start,
	})
	if err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title = %q, want %q", updated.Title, title)
	}
	if updated.StartsAt == nil || !updated.StartsAt.Equal(start) {
		t.Fatalf("starts_at = %v, want %v", updated.StartsAt, start)
	}
}

func TestUpdateEventCannotTouchLocation(t *testing.T) {
	// Location is owned by poll resolution; the patch input has no field for
	// it, so an update must leave it untouched.
	service := newTestService()
	event, err := service.CreateEvent(context.Background(), ports.CreateEventInput{
		Title:     "Offsite",
		CreatedBy: "organizer-1",
		Location:  "TBD",
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	title := "Renamed offsite"
	updated, err := service.UpdateEvent(context.Background(), event.EventID, ports.UpdateEventInput{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}
	if updated.Location != "TBD" {
		t.Fatalf("location = %q, want unchanged", updated.Location)
	}
}

func TestGetEventUnknown(t *testing.T) {
	service := newTestService()
	if _, err := service.GetEvent(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("GetEvent() error = %v, want ErrEventNotFound", err)
	}
}
