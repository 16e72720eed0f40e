package engine

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stressless/internal/storage"
)

// ProfileSync receives profile changes that should be mirrored to the remote
// account. Implementations must not block: the service calls them while it
// holds its state lock.
type ProfileSync interface {
	ProfileChanged(p UserProfile)
	LevelUp(p UserProfile, from, to int)
}

type noopSync struct{}

func (noopSync) ProfileChanged(UserProfile)    {}
func (noopSync) LevelUp(UserProfile, int, int) {}

// Service is the application state: the profile, the entity stores and the
// progression rules that tie them together. All mutations are serialized.
type Service struct {
	mu sync.Mutex

	db      *sql.DB
	slots   *storage.SlotRepo
	rewards *storage.RewardRepo
	log     *zap.Logger
	sync    ProfileSync
	now     func() time.Time
	newID   func() string

	profile UserProfile
	tasks   []Task
	moods   []MoodEntry
	notes   []CalmNote
	journal []JournalEntry
	sound   bool
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithProfileSync(ps ProfileSync) Option {
	return func(s *Service) {
		if ps != nil {
			s.sync = ps
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:      db,
		slots:   storage.NewSlotRepo(db),
		rewards: storage.NewRewardRepo(db),
		log:     zap.NewNop(),
		sync:    noopSync{},
		now:     time.Now,
		newID:   newTimeOrderedID,
		profile: DefaultProfile(),
		sound:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open builds a service and rehydrates every store from its slot.
func Open(ctx context.Context, db *sql.DB, opts ...Option) (*Service, error) {
	s := NewService(db, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) SlotRepo() *storage.SlotRepo     { return s.slots }
func (s *Service) RewardRepo() *storage.RewardRepo { return s.rewards }
func (s *Service) Logger() *zap.Logger             { return s.log }

func (s *Service) Profile() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Service) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Task(nil), s.tasks...)
}

// MoodEntries returns the check-ins newest first.
func (s *Service) MoodEntries() []MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MoodEntry(nil), s.moods...)
}

// Notes returns the calm-wall notes newest first.
func (s *Service) Notes() []CalmNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CalmNote(nil), s.notes...)
}

func (s *Service) Journal() []JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]JournalEntry(nil), s.journal...)
}

func (s *Service) SoundEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sound
}

func (s *Service) SetSoundEnabled(ctx context.Context, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sound = enabled
	s.saveLocked(ctx, SlotSound, s.sound)
}

func (s *Service) today() string {
	return s.now().Format(DateLayout)
}

func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
