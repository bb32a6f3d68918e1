// Package session owns the authenticated identity: login, registration,
// password changes, logout, and restoring a persisted session on startup.
// The store is an explicit, injectable instance; independent stores never
// share state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ametova/finkeeper/internal/common"
	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/partition"
)

const (
	currentUserKey = "session/currentUser"
	credentialsKey = "session/credentials"
)

// Demo account seeded into an empty credentials collection so login works
// out of the box.
const (
	DemoUserID   = "1"
	DemoEmail    = "user@example.com"
	DemoName     = "Demo User"
	DemoPassword = "password123"
)

// Subscriber is invoked with the new identity (nil after logout) every time
// the active user changes. Resource stores use this to re-initialize from
// the new user's partition.
type Subscriber func(*models.Identity)

// Store holds the current authenticated identity and performs every
// credential operation against the durable key-value store.
type Store struct {
	mu          sync.Mutex
	kv          kvstore.Store
	notifier    notify.Notifier
	log         logging.Logger
	current     *models.Identity
	loading     bool
	subscribers []Subscriber

	loginDelay time.Duration
	bcryptCost int
	newID      func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithLoginDelay sets the simulated network latency applied to login and
// registration. Zero disables it.
func WithLoginDelay(d time.Duration) Option {
	return func(s *Store) { s.loginDelay = d }
}

// WithBcryptCost overrides the bcrypt cost used when hashing passwords.
// Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.bcryptCost = cost }
}

// WithIDGenerator overrides the user id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func New(kv kvstore.Store, notifier notify.Notifier, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		kv:         kv,
		notifier:   notifier,
		log:        log,
		bcryptCost: bcrypt.DefaultCost,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the active identity, or nil when nobody is logged in.
func (s *Store) Current() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	return s.Current() != nil
}

// Loading reports whether a login/registration is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers fn and immediately invokes it with the current
// identity, so late subscribers initialize to the live state.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	var id *models.Identity
	if s.current != nil {
		c := *s.current
		id = &c
	}
	s.mu.Unlock()
	fn(id)
}

// Restore initializes the store on startup: it re-reads a persisted identity
// (discarding anything structurally invalid) and seeds the credentials
// collection with the demo account when it is empty or unreadable.
func (s *Store) Restore(ctx context.Context) error {
	if _, err := s.loadCredentials(ctx); err != nil {
		return err
	}

	raw, err := s.kv.Get(ctx, currentUserKey)
	if err != nil {
		return err
	}

	var restored *models.Identity
	if raw != nil {
		var id models.Identity
		if json.Unmarshal(raw, &id) == nil && id.Valid() {
			restored = &id
		} else {
			s.log.Warn(ctx, "discarding invalid persisted session")
			if err := s.kv.Delete(ctx, currentUserKey); err != nil {
				s.log.Warn(ctx, "failed to clear persisted session", "error", err)
			}
		}
	}

	s.setCurrent(restored)
	s.publish()
	return nil
}

// Login authenticates against the stored credentials. The email match is
// case- and whitespace-insensitive; the password is trimmed before the hash
// comparison.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.notifier.Error(ctx, "Please enter both email and password")
		return common.ErrMissingInput
	}

	s.setLoading(true)
	defer s.setLoading(false)
	s.simulateLatency()

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return err
	}

	normEmail := models.NormalizeEmail(email)
	trimmedPassword := strings.TrimSpace(password)

	for i := range creds {
		if models.NormalizeEmail(creds[i].Email) != normEmail {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(creds[i].PasswordHash), []byte(trimmedPassword)) != nil {
			continue
		}
		id := creds[i].Identity()
		s.persistIdentity(ctx, &id)
		s.setCurrent(&id)
		s.notifier.Success(ctx, "Logged in successfully")
		s.log.Info(ctx, "login", "user_id", id.ID)
		s.publish()
		return nil
	}

	s.notifier.Error(ctx, "Invalid email or password")
	return common.ErrInvalidCredentials
}

// Register creates a new credential record with a fresh id and logs the new
// user in. The email must not collide, case-insensitively, with an existing
// record.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		s.notifier.Error(ctx, "Please fill in all fields")
		return common.ErrMissingInput
	}

	s.setLoading(true)
	defer s.setLoading(false)
	s.simulateLatency()

	id, err := s.CreateAccount(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.notifier.Error(ctx, "User already exists")
		}
		return err
	}

	s.persistIdentity(ctx, id)
	s.setCurrent(id)
	s.notifier.Success(ctx, "Registration successful")
	s.log.Info(ctx, "register", "user_id", id.ID)
	s.publish()
	return nil
}

// CreateAccount appends a new credential record without touching session
// state. The REST layer registers accounts through it.
func (s *Store) CreateAccount(ctx context.Context, name, email, password string) (*models.Identity, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrMissingInput
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	normEmail := models.NormalizeEmail(email)
	for i := range creds {
		if models.NormalizeEmail(creds[i].Email) == normEmail {
			return nil, common.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	cred := models.Credential{
		ID:           s.newID(),
		Email:        strings.TrimSpace(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	creds = append(creds, cred)
	if err := partition.Save(ctx, s.kv, credentialsKey, creds); err != nil {
		return nil, err
	}

	id := cred.Identity()
	return &id, nil
}

// ChangePassword verifies the current password for the active user and
// replaces the stored hash with one of the trimmed new password.
func (s *Store) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	active := s.Current()
	if active == nil {
		return common.ErrNotAuthenticated
	}
	if currentPassword == "" || newPassword == "" {
		s.notifier.Error(ctx, "Please enter both current and new password")
		return common.ErrMissingInput
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return err
	}

	for i := range creds {
		if creds[i].ID != active.ID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(creds[i].PasswordHash), []byte(strings.TrimSpace(currentPassword))) != nil {
			s.notifier.Error(ctx, "Current password is incorrect")
			return common.ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), s.bcryptCost)
		if err != nil {
			return err
		}
		creds[i].PasswordHash = string(hash)
		if err := partition.Save(ctx, s.kv, credentialsKey, creds); err != nil {
			return err
		}
		s.notifier.Success(ctx, "Password changed successfully")
		return nil
	}

	return common.ErrNotFound
}

// Logout clears the active identity and its persisted copy. It never fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, currentUserKey); err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	s.setCurrent(nil)
	s.notifier.Info(ctx, "Logged out")
	s.publish()
}

// Authenticate checks credentials without touching session state. The REST
// layer uses it to mint tokens statelessly.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingInput
	}

	s.simulateLatency()

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	normEmail := models.NormalizeEmail(email)
	trimmedPassword := strings.TrimSpace(password)
	for i := range creds {
		if models.NormalizeEmail(creds[i].Email) != normEmail {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(creds[i].PasswordHash), []byte(trimmedPassword)) == nil {
			id := creds[i].Identity()
			return &id, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

// loadCredentials reads the global credentials collection, seeding it with
// the demo account when absent, unreadable, or empty.
func (s *Store) loadCredentials(ctx context.Context) ([]models.Credential, error) {
	creds, ok, err := partition.Load[models.Credential](ctx, s.kv, credentialsKey)
	if err != nil {
		return nil, err
	}
	if ok && len(creds) > 0 {
		return creds, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	creds = []models.Credential{{
		ID:           DemoUserID,
		Email:        DemoEmail,
		Name:         DemoName,
		PasswordHash: string(hash),
	}}
	if err := partition.Save(ctx, s.kv, credentialsKey, creds); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "seeded demo credentials")
	return creds, nil
}

func (s *Store) persistIdentity(ctx context.Context, id *models.Identity) {
	raw, err := json.Marshal(id)
	if err == nil {
		err = s.kv.Set(ctx, currentUserKey, raw)
	}
	if err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

func (s *Store) setCurrent(id *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Store) simulateLatency() {
	if s.loginDelay > 0 {
		time.Sleep(s.loginDelay)
	}
}

// publish fans the current identity out to every subscriber, outside the
// state lock.
func (s *Store) publish() {
	s.mu.Lock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	var id *models.Identity
	if s.current != nil {
		c := *s.current
		id = &c
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}
