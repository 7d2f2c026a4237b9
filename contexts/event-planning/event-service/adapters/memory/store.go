package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"gatherly/contexts/event-planning/event-service/domain/entities"
	domainerrors "gatherly/contexts/event-planning/event-service/domain/errors"
	"gatherly/contexts/event-planning/event-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	events map[string]entities.Event
}

func NewStore() *Store {
	return &Store{events: make(map[string]entities.Event)}
}

func (s *Store) SaveEvent(_ context.Context, event entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[strings.TrimSpace(event.EventID)] = event
	return nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (entities.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return entities.Event{}, domainerrors.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
