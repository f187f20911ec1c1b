package service

import (
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// State is a position in the registry lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateStarted
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateStarted:
		return "STARTED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Lifecycle drives a component from NOT_STARTED through STARTED to STOPPED.
// STOPPED is terminal; a stopped lifecycle cannot be started again.
type Lifecycle struct {
	logger log.Logger

	mu    sync.Mutex
	state State
}

func NewLifecycle(logger log.Logger) *Lifecycle {
	return &Lifecycle{logger: log.WithPrefix(logger, "component", "lifecycle")}
}

// Start runs the hooks in order and transitions to STARTED. A second Start
// fails fast with illegal_state, as does Start after Stop. A hook failure
// leaves the state at NOT_STARTED so the caller may retry.
func (l *Lifecycle) Start(hooks ...func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateNotStarted {
		return NewIllegalStateError(fmt.Sprintf("cannot start: lifecycle is %s", l.state), nil)
	}
	for _, hook := range hooks {
		if err := hook(); err != nil {
			return NewIOError("lifecycle start failed", err)
		}
	}
	l.state = StateStarted
	return nil
}

// Stop runs the closers in order and transitions to STOPPED. Closer errors
// are logged and swallowed so teardown always completes. Stopping an already
// stopped lifecycle is a no-op.
func (l *Lifecycle) Stop(closers ...func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateStopped {
		return nil
	}
	for _, closer := range closers {
		if err := closer(); err != nil {
			level.Warn(l.logger).Log("msg", "error during teardown, continuing", "err", err)
		}
	}
	l.state = StateStopped
	return nil
}

// RequireStarted returns an illegal_state error unless the lifecycle is
// STARTED.
func (l *Lifecycle) RequireStarted() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateStarted {
		return NewIllegalStateError(fmt.Sprintf("registry is %s, want %s", l.state, StateStarted), nil)
	}
	return nil
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
