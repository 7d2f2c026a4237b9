package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"gatherly/contexts/identity-access/identity-service/domain/entities"
	domainerrors "gatherly/contexts/identity-access/identity-service/domain/errors"
	"gatherly/contexts/identity-access/identity-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

func NewStore() *Store {
	return &Store{users: make(map[string]entities.User)}
}

func (s *Store) SaveUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email && existing.UserID != user.UserID {
			return domainerrors.ErrDuplicateUser
		}
	}
	s.users[strings.TrimSpace(user.UserID)] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
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
