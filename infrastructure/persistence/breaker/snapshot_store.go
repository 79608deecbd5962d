// Package breaker guards a snapshot store with a circuit breaker so a
// failing backend is not hammered on every friendship change.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/domain/social"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config holds configuration for the circuit breaker
type Config struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureThreshold is the failure ratio that opens the circuit
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig returns a default configuration for the circuit breaker
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// SnapshotStore wraps another store. Saves and loads fail fast with an
// unavailable error while the circuit is open.
type SnapshotStore struct {
	next   ports.SnapshotStore
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewSnapshotStore wraps next with a circuit breaker
func NewSnapshotStore(next ports.SnapshotStore, config Config, logger *zap.Logger) *SnapshotStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// Callers giving up is not a backend failure.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &SnapshotStore{next: next, cb: cb, logger: logger}
}

// Save forwards to the wrapped store
func (s *SnapshotStore) Save(ctx context.Context, snapshot social.Snapshot) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.Save(ctx, snapshot)
	})
	return s.translate(err)
}

// Load forwards to the wrapped store
func (s *SnapshotStore) Load(ctx context.Context) (*social.Snapshot, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Load(ctx)
	})
	if err != nil {
		return nil, s.translate(err)
	}
	snapshot, _ := result.(*social.Snapshot)
	return snapshot, nil
}

// State reports the current breaker state
func (s *SnapshotStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *SnapshotStore) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		s.logger.Warn("Snapshot store call rejected by circuit breaker", zap.Error(err))
		return pkgerrors.NewUnavailableError("snapshot store").WithCause(err)
	default:
		return err
	}
}
