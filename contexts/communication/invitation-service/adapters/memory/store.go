package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gatherly/contexts/communication/invitation-service/domain/entities"
	domainerrors "gatherly/contexts/communication/invitation-service/domain/errors"
	"gatherly/contexts/communication/invitation-service/ports"
)

type Store struct {
	mu          sync.RWMutex
	memberships map[string]entities.Membership
	events      map[string]ports.EventProjection
}

func NewStore() *Store {
	return &Store{
		memberships: make(map[string]entities.Membership),
		events:      make(map[string]ports.EventProjection),
	}
}

func (s *Store) SetEvent(event ports.EventProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[strings.TrimSpace(event.EventID)] = event
}

func (s *Store) CreateMembership(_ context.Context, membership entities.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := membershipKey(membership.EventID, membership.UserID)
	if _, exists := s.memberships[key]; exists {
		return domainerrors.ErrAlreadyInvited
	}
	s.memberships[key] = membership
	return nil
}

func (s *Store) GetMembership(_ context.Context, eventID string, userID string) (entities.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	membership, ok := s.memberships[membershipKey(eventID, userID)]
	if !ok {
		return entities.Membership{}, domainerrors.ErrInviteNotFound
	}
	return membership, nil
}

func (s *Store) UpdateMembership(_ context.Context, membership entities.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := membershipKey(membership.EventID, membership.UserID)
	if _, ok := s.memberships[key]; !ok {
		return domainerrors.ErrInviteNotFound
	}
	s.memberships[key] = membership
	return nil
}

func (s *Store) ListMemberships(_ context.Context, eventID string) ([]entities.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]entities.Membership, 0)
	for _, membership := range s.memberships {
		if membership.EventID == strings.TrimSpace(eventID) {
			members = append(members, membership)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].InvitedAt.Before(members[j].InvitedAt)
	})
	return members, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (ports.EventProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	return event, ok, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func membershipKey(eventID string, userID string) string {
	return strings.TrimSpace(eventID) + "/" + strings.TrimSpace(userID)
}

var _ ports.Repository = (*Store)(nil)
var _ ports.EventReader = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
