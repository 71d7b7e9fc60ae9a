// Package session holds one user's profile in memory and persists every
// change through an asynchronous saver.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/models"
	"github.com/julianstephens/journeyline/internal/storage"
)

// Saver accepts profiles for persistence without blocking the caller
type Saver interface {
	Save(userID string, profile models.UserProfile)
}

type Session struct {
	userID string
	engine *journey.Engine
	saver  Saver
	now    func() time.Time

	mu      sync.Mutex
	profile models.UserProfile
}

func New(userID string, profile models.UserProfile, engine *journey.Engine, saver Saver) *Session {
	return &Session{
		userID:  userID,
		engine:  engine,
		saver:   saver,
		now:     time.Now,
		profile: profile,
	}
}

// Load reads the user's stored profile. Users without one start from the
// zero profile.
func Load(store storage.Provider, userID string, engine *journey.Engine, saver Saver) (*Session, error) {
	profile, _, err := store.LoadProfile(userID)
	if err != nil {
		return nil, err
	}
	return New(userID, profile, engine, saver), nil
}

// WithClock replaces the clock used to stamp new entries.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) Engine() *journey.Engine {
	return s.engine
}

// Profile returns a copy of the current profile.
func (s *Session) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// apply runs op on the current profile. On success the result replaces the
// profile and is handed to the saver; on error nothing changes.
func (s *Session) apply(op func(models.UserProfile) (models.UserProfile, error)) (models.UserProfile, error) {
	s.mu.Lock()
	next, err := op(s.profile)
	if err != nil {
		s.mu.Unlock()
		return models.UserProfile{}, err
	}
	s.profile = next
	s.mu.Unlock()

	s.saver.Save(s.userID, next)
	return next.Clone(), nil
}

func (s *Session) Begin(o journey.Onboarding) (models.UserProfile, error) {
	return s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return s.engine.Begin(p, o, s.now())
	})
}

func (s *Session) SetStage(stageID string) (models.UserProfile, error) {
	return s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return s.engine.SetStage(p, stageID)
	})
}

func (s *Session) SetJurisdiction(jurisdiction string) (models.UserProfile, error) {
	return s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return s.engine.SetJurisdiction(p, jurisdiction)
	})
}

func (s *Session) SetCounterpart(jurisdiction string) (models.UserProfile, error) {
	return s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return s.engine.SetCounterpart(p, jurisdiction)
	})
}

func (s *Session) SetName(name string) (models.UserProfile, error) {
	return s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return journey.SetName(p, name), nil
	})
}

// ToggleTask flips a task of stageID, or of the current stage when stageID
// is empty.
func (s *Session) ToggleTask(stageID string, taskID int) (models.UserProfile, error) {
	return s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		if stageID == "" {
			stageID = p.Stage
		}
		tasks, ok := p.Tasks[stageID]
		if !ok {
			return p, apperrors.NewUserError("no checklist for stage "+stageID, "see 'journeyline tasks list'")
		}
		if taskID < 0 || taskID >= len(tasks) {
			return p, apperrors.NewUserError("no such task", "task ids are shown by 'journeyline tasks list'")
		}
		return journey.ToggleTask(p, stageID, taskID), nil
	})
}

// LogMood records a mood label, matched case-insensitively.
func (s *Session) LogMood(label string) (models.MoodEntry, error) {
	entry := models.MoodEntry{
		ID:   uuid.NewString(),
		Mood: constants.Mood(strings.TrimSpace(label)),
		At:   s.now(),
	}
	if m, ok := constants.ParseMood(label); ok {
		entry.Mood = m
	}
	_, err := s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return journey.LogMood(p, entry)
	})
	if err != nil {
		return models.MoodEntry{}, err
	}
	return entry, nil
}

func (s *Session) AddJournal(text string) (models.JournalEntry, error) {
	entry := models.JournalEntry{
		ID:   uuid.NewString(),
		Text: strings.TrimSpace(text),
		At:   s.now(),
	}
	_, err := s.apply(func(p models.UserProfile) (models.UserProfile, error) {
		return journey.AppendJournal(p, entry)
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Reset discards the journey and persists the zero profile.
func (s *Session) Reset() models.UserProfile {
	p, _ := s.apply(func(models.UserProfile) (models.UserProfile, error) {
		return journey.Reset(), nil
	})
	return p
}
