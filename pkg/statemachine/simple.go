package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// SimpleStateMachine provides a thread-safe in-memory state machine implementation.
// Transitions are indexed as [fromState][event][]Transition.
type SimpleStateMachine struct {
	currentState State
	transitions  map[State]map[Event][]Transition
	mu           sync.RWMutex
}

func newSimpleStateMachine(initialState State) *SimpleStateMachine {
	return &SimpleStateMachine{
		currentState: initialState,
		transitions:  make(map[State]map[Event][]Transition),
	}
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

func (sm *SimpleStateMachine) Is(state State) bool {
	return sm.Current() == state
}

func (sm *SimpleStateMachine) addTransition(t Transition) error {
	if t.From == "" || t.To == "" || t.Event == "" {
		return ErrInvalidTransition
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.transitions[t.From]; !ok {
		sm.transitions[t.From] = make(map[Event][]Transition)
	}

	// Multiple transitions allowed for same from/event to support guard-based branching
	sm.transitions[t.From][t.Event] = append(sm.transitions[t.From][t.Event], t)
	return nil
}

// Fire applies the first transition for event whose guards all pass.
func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event) error {
	if event == "" {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	candidates := sm.transitions[sm.currentState][event]
	if len(candidates) == 0 {
		return &ErrNoTransitionAvailable{State: sm.currentState, Event: event}
	}

	t := sm.selectLocked(ctx, candidates, event)
	if t == nil {
		return &ErrTransitionRejected{State: sm.currentState, Event: event}
	}

	// Execute actions before state change; any failure aborts transition
	for _, action := range t.Actions {
		if err := action(ctx, sm.currentState, t.To, event); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	sm.currentState = t.To
	return nil
}

func (sm *SimpleStateMachine) CanFire(ctx context.Context, event Event) bool {
	if event == "" {
		return false
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.selectLocked(ctx, sm.transitions[sm.currentState][event], event) != nil
}

// Must be called with lock held.
func (sm *SimpleStateMachine) selectLocked(ctx context.Context, candidates []Transition, event Event) *Transition {
	for i, t := range candidates {
		passed := true
		for _, guard := range t.Guards {
			if !guard(ctx, sm.currentState, event) {
				passed = false
				break
			}
		}
		if passed {
			return &candidates[i]
		}
	}
	return nil
}
