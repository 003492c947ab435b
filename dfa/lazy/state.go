package lazy

import (
	"fmt"

	"github.com/coregx/thompson/nfa"
)

// StateID uniquely identifies a DFA state in the cache.
// It is the state's index in the cache arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
// In tree links it stands for "no such node".
const InvalidState StateID = 0xFFFFFFFF

// State represents a DFA state: a set of NFA nodes that are active at the
// same time, plus the memoised transitions discovered so far.
//
// States also carry their splay tree links, so the cache needs no separate
// node type.
type State struct {
	// id uniquely identifies this state in the cache
	id StateID

	// nfaStates is sorted ascending and never modified after insertion
	nfaStates []nfa.NodeID

	// transitions maps input rune → next state ID, filled lazily
	transitions map[rune]StateID

	// isMatch indicates if any NFA node in the set is terminal
	isMatch bool

	left, right, parent StateID
}

func newState(id StateID, nfaStates []nfa.NodeID, isMatch bool) State {
	// Copy NFA states to avoid aliasing the caller's scratch buffer
	nfaStatesCopy := make([]nfa.NodeID, len(nfaStates))
	copy(nfaStatesCopy, nfaStates)

	return State{
		id:          id,
		nfaStates:   nfaStatesCopy,
		transitions: make(map[rune]StateID, 4),
		isMatch:     isMatch,
		left:        InvalidState,
		right:       InvalidState,
		parent:      InvalidState,
	}
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// IsMatch returns true if this is an accepting state
func (s *State) IsMatch() bool {
	return s.isMatch
}

// IsDead returns true if the state holds no NFA nodes. A dead state can
// only transition to itself and never accepts.
func (s *State) IsDead() bool {
	return len(s.nfaStates) == 0
}

// NFAStates returns the sorted NFA node set represented by this DFA state.
// The returned slice must not be modified.
func (s *State) NFAStates() []nfa.NodeID {
	return s.nfaStates
}

// Transition returns the next state for the given input rune.
// Returns (InvalidState, false) if the transition has not been computed.
func (s *State) Transition(r rune) (StateID, bool) {
	next, ok := s.transitions[r]
	if !ok {
		return InvalidState, false
	}
	return next, true
}

// AddTransition records the transition from this state on input r.
func (s *State) AddTransition(r rune, next StateID) {
	s.transitions[r] = next
}

// TransitionCount returns the number of memoised transitions
func (s *State) TransitionCount() int {
	return len(s.transitions)
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, isMatch=%v, transitions=%d, nfaStates=%v)",
		s.id, s.isMatch, len(s.transitions), s.nfaStates)
}

// CompareNodeSets orders node sets by length first, then element by
// element. It returns -1, 0 or +1. Equal sets are the same DFA state.
func CompareNodeSets(a, b []nfa.NodeID) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}
