package credstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyField   = errors.New("username and password are required")
	ErrUnknownRealm = errors.New("unknown credential realm")
)

// Realm is a namespace of credentials with independent membership. A name
// may exist in both realms; verification always targets one realm.
type Realm string

const (
	Users  Realm = "users"
	Admins Realm = "admins"
)

// Store keeps name->bcrypt-hash maps per realm, in memory only. The admin
// realm is seeded at startup and never mutated afterwards.
type Store struct {
	mu     sync.RWMutex
	realms map[Realm]map[string]string
	logger *Logger.Logger
}

func New(logger *Logger.Logger) *Store {
	return &Store{
		realms: map[Realm]map[string]string{
			Users:  {},
			Admins: {},
		},
		logger: logger,
	}
}

// Seed hashes and installs startup credentials into a realm.
func (s *Store) Seed(realm Realm, creds map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.realms[realm]
	if !ok {
		return ErrUnknownRealm
	}
	for name, password := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed credential for %q: %w", name, err)
		}
		r[name] = string(hash)
	}
	return nil
}

// AddUser upserts a credential into the users realm.
func (s *Store) AddUser(name, password string) error {
	if name == "" || password == "" {
		return ErrEmptyField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	s.realms[Users][name] = string(hash)
	s.mu.Unlock()

	s.logger.Infof("user credential upserted: %s", name)
	return nil
}

// DeleteUser removes a user credential. Absent names are a silent no-op.
func (s *Store) DeleteUser(name string) {
	s.mu.Lock()
	delete(s.realms[Users], name)
	s.mu.Unlock()
}

// ListUsers returns user names in sorted (stable) order.
func (s *Store) ListUsers() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.realms[Users]))
	for name := range s.realms[Users] {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Verify reports whether the realm maps name to the given password.
func (s *Store) Verify(realm Realm, name, password string) bool {
	s.mu.RLock()
	r, ok := s.realms[realm]
	if !ok {
		s.mu.RUnlock()
		return false
	}
	hash, ok := r[name]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
