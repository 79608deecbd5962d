package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/domain/lists"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"
	"github.com/Kian-Chen/DSADesign/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Command is one entry of a session's command log
type Command struct {
	Name string   `json:"command"`
	Args []string `json:"args"`
	At   string   `json:"at"`
}

// ListState is the externally visible state of a list session
type ListState struct {
	ID        string        `json:"id"`
	Variant   lists.Variant `json:"variant"`
	Values    []string      `json:"values"`
	Length    int           `json:"length"`
	Commands  []Command     `json:"commands"`
	CreatedAt string        `json:"created_at"`
}

// FindResult reports where a value was found
type FindResult struct {
	Value string `json:"value"`
	Index int    `json:"index"`
	Found bool   `json:"found"`
}

// RemoveResult reports which position a removed value occupied
type RemoveResult struct {
	Value   string `json:"value"`
	Index   int    `json:"index"`
	Removed bool   `json:"removed"`
}

type listSession struct {
	mu        sync.Mutex
	id        string
	list      lists.List[string]
	commands  []Command
	createdAt time.Time
}

// ListService owns the list sessions driven by the visualizer pages.
// Each session holds one list and the log of commands applied to it.
type ListService struct {
	mu          sync.RWMutex
	sessions    map[string]*listSession
	maxSessions int
	metrics     ports.Metrics
	logger      *zap.Logger
}

// NewListService creates a new list service. maxSessions <= 0 means no limit.
func NewListService(maxSessions int, metrics ports.Metrics, logger *zap.Logger) *ListService {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &ListService{
		sessions:    make(map[string]*listSession),
		maxSessions: maxSessions,
		metrics:     metrics,
		logger:      logger,
	}
}

// Create starts an empty list session of the given variant
func (s *ListService) Create(ctx context.Context, variant string) (*ListState, error) {
	v, err := lists.ParseVariant(variant)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	list, err := lists.New[string](v)
	if err != nil {
		return nil, pkgerrors.NewInternalError(err.Error())
	}

	session := &listSession{
		id:        uuid.New().String(),
		list:      list,
		commands:  []Command{},
		createdAt: time.Now().UTC(),
	}

	s.mu.Lock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		return nil, pkgerrors.NewConflictError(fmt.Sprintf("list session limit of %d reached", s.maxSessions))
	}
	s.sessions[session.id] = session
	s.mu.Unlock()

	s.logger.Info("List session created",
		zap.String("listID", session.id),
		zap.String("variant", string(v)),
	)
	s.metrics.ListOperation(string(v), "create")

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state(), nil
}

// IDs returns the ids of all open sessions, oldest first
func (s *ListService) IDs(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*listSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		all = append(all, session)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].createdAt.Equal(all[j].createdAt) {
			return all[i].id < all[j].id
		}
		return all[i].createdAt.Before(all[j].createdAt)
	})

	ids := make([]string, 0, len(all))
	for _, session := range all {
		ids = append(ids, session.id)
	}
	return ids
}

// Get returns the current state of a session
func (s *ListService) Get(ctx context.Context, id string) (*ListState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state(), nil
}

// Delete closes a session
func (s *ListService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return pkgerrors.NewNotFoundError("list")
	}
	delete(s.sessions, id)
	s.logger.Info("List session deleted", zap.String("listID", id))
	return nil
}

// Insert adds value at the position given as free-form text. Text that
// does not start with a number appends at the end.
func (s *ListService) Insert(ctx context.Context, id, value, positionText string) (*ListState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	position, numeric := lists.ParsePosition(positionText)

	session.mu.Lock()
	defer session.mu.Unlock()

	session.list.Insert(value, position)
	session.record("insert", value, positionText)
	s.metrics.ListOperation(string(session.list.Variant()), "insert")

	s.logger.Debug("List insert",
		zap.String("listID", id),
		zap.String("value", value),
		zap.String("position", positionText),
		zap.Bool("numeric", numeric),
		zap.Int("length", session.list.Len()),
	)
	return session.state(), nil
}

// Find looks value up. A missing value is reported, not an error.
func (s *ListService) Find(ctx context.Context, id, value string) (*FindResult, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	index := session.list.Find(value)
	session.record("find", value)
	s.metrics.ListOperation(string(session.list.Variant()), "find")

	return &FindResult{Value: value, Index: index, Found: index != lists.NotFound}, nil
}

// Remove deletes the first occurrence of value and reports the index it
// occupied. Removing a missing value changes nothing.
func (s *ListService) Remove(ctx context.Context, id, value string) (*RemoveResult, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	index := session.list.Find(value)
	removed := session.list.Remove(value)
	if !removed {
		index = lists.NotFound
	}
	session.record("remove", value)
	s.metrics.ListOperation(string(session.list.Variant()), "remove")

	return &RemoveResult{Value: value, Index: index, Removed: removed}, nil
}

func (s *ListService) session(id string) (*listSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("list")
	}
	return session, nil
}

// record appends to the command log. Callers hold session.mu.
func (ls *listSession) record(name string, args ...string) {
	ls.commands = append(ls.commands, Command{
		Name: name,
		Args: args,
		At:   utils.NowRFC3339(),
	})
}

// state snapshots the session. Callers hold session.mu.
func (ls *listSession) state() *ListState {
	commands := make([]Command, len(ls.commands))
	copy(commands, ls.commands)
	return &ListState{
		ID:        ls.id,
		Variant:   ls.list.Variant(),
		Values:    ls.list.ToSlice(),
		Length:    ls.list.Len(),
		Commands:  commands,
		CreatedAt: ls.createdAt.Format(time.RFC3339),
	}
}
