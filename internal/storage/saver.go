package storage

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/models"
)

// SaverStats counts what happened to queued saves
type SaverStats struct {
	Saved   int
	Failed  int
	Skipped int
}

// AsyncSaver persists profiles on a single background goroutine. Save never
// blocks: it records the profile as pending and returns. When several saves
// for the same user queue up, only the latest is written. Failures are logged,
// and after repeated failures a circuit breaker skips saves until the store
// has had time to recover.
type AsyncSaver struct {
	store   Provider
	breaker *gobreaker.CircuitBreaker

	mu      sync.Mutex
	pending map[string]models.UserProfile
	stats   SaverStats
	closed  bool

	wake  chan struct{}
	flush chan chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewAsyncSaver starts a saver writing to store.
func NewAsyncSaver(store Provider) *AsyncSaver {
	s := &AsyncSaver{
		store:   store,
		pending: make(map[string]models.UserProfile),
		wake:    make(chan struct{}, 1),
		flush:   make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        constants.SaveBreakerName,
		MaxRequests: constants.SaveBreakerHalfOpenCalls,
		Timeout:     constants.SaveBreakerOpenTimeout * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constants.SaveBreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Save circuit breaker changed state", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	go s.run()
	return s
}

// Save queues a profile for writing and returns immediately.
func (s *AsyncSaver) Save(userID string, profile models.UserProfile) {
	s.mu.Lock()
	if s.closed {
		s.stats.Skipped++
		s.mu.Unlock()
		logger.Warn("Profile save dropped after saver closed", "user", userID)
		return
	}
	s.pending[userID] = profile.Clone()
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every save queued before the call has been attempted.
func (s *AsyncSaver) Flush() {
	reply := make(chan struct{})
	select {
	case s.flush <- reply:
		<-reply
	case <-s.done:
	}
}

// Close drains pending saves and stops the background goroutine.
func (s *AsyncSaver) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}

// Stats returns a snapshot of the saver's counters.
func (s *AsyncSaver) Stats() SaverStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *AsyncSaver) run() {
	defer close(s.done)
	for {
		select {
		case <-s.wake:
			s.drain()
		case reply := <-s.flush:
			s.drain()
			close(reply)
		case <-s.stop:
			s.drain()
			return
		}
	}
}

func (s *AsyncSaver) drain() {
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = make(map[string]models.UserProfile)
		s.mu.Unlock()

		if len(batch) == 0 {
			return
		}

		ids := make([]string, 0, len(batch))
		for id := range batch {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			s.write(id, batch[id])
		}
	}
}

func (s *AsyncSaver) write(userID string, profile models.UserProfile) {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.store.SaveProfile(userID, profile)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.stats.Saved++
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		s.stats.Skipped++
		logger.Warn("Profile save skipped while store is failing", "user", userID)
	default:
		s.stats.Failed++
		logger.Error("Failed to save profile", "user", userID, "error", err)
	}
}
