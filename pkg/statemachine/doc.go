// Package statemachine is a small, concurrency-safe finite state machine.
//
// States and events are plain strings. Transitions are registered with the
// functional options of New; each may carry guards, which must all pass, and
// actions, which run in order before the state changes. When several
// transitions share a source state and event, the first one whose guards
// pass is taken.
//
// # Usage
//
//	const (
//	    Loading = statemachine.State("loading")
//	    Ready   = statemachine.State("ready")
//	    Settled = statemachine.Event("settled")
//	    Refresh = statemachine.Event("refresh")
//	)
//
//	sm := statemachine.MustNew(Loading,
//	    statemachine.WithTransition(Loading, Ready, Settled),
//	    statemachine.WithTransition(Ready, Loading, Refresh),
//	)
//
//	if err := sm.Fire(ctx, Settled); err != nil {
//	    // ErrNoTransitionAvailable or ErrTransitionRejected
//	}
//
// # Error Handling
//
// Fire returns *ErrNoTransitionAvailable when nothing is registered for the
// current state and event, and *ErrTransitionRejected when guards block every
// candidate. Use IsNoTransitionAvailableError and IsTransitionRejectedError to
// tell them apart. Action errors are wrapped and abort the transition.
package statemachine
