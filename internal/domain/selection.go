package domain

// SelectionState is the state of the two-click protocol
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionArmed
)

func (s SelectionState) String() string {
	if s == SelectionArmed {
		return "armed"
	}
	return "idle"
}

// OutcomeKind classifies the result of a click
type OutcomeKind int

const (
	// OutcomeArmed: the clicked node is now pending
	OutcomeArmed OutcomeKind = iota
	// OutcomeDisarmed: the pending node was clicked again
	OutcomeDisarmed
	// OutcomeRejected: the pair is not linkable
	OutcomeRejected
	// OutcomeAccepted: the pair forms a Connection
	OutcomeAccepted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeArmed:
		return "armed"
	case OutcomeDisarmed:
		return "disarmed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeAccepted:
		return "accepted"
	}
	return "unknown"
}

// Outcome describes what a click did.
// Node is the clicked node for OutcomeArmed and the previously pending node otherwise.
type Outcome struct {
	Kind       OutcomeKind
	Node       NodeRef
	Connection Connection
	Err        error
}

// Selection holds at most one pending (armed) node
type Selection struct {
	pending NodeRef
	armed   bool
}

// State returns the current protocol state
func (s *Selection) State() SelectionState {
	if s.armed {
		return SelectionArmed
	}
	return SelectionIdle
}

// Pending returns the armed node, if any
func (s *Selection) Pending() (NodeRef, bool) {
	return s.pending, s.armed
}

// Clear drops the pending node
func (s *Selection) Clear() {
	s.pending = NodeRef{}
	s.armed = false
}

// Click feeds one click into the protocol.
// Every outcome except OutcomeArmed leaves the selection idle.
func (s *Selection) Click(n NodeRef) Outcome {
	if !s.armed {
		s.pending = n
		s.armed = true
		return Outcome{Kind: OutcomeArmed, Node: n}
	}

	prev := s.pending
	s.Clear()

	if prev == n {
		return Outcome{Kind: OutcomeDisarmed, Node: prev}
	}

	conn, err := NewConnection(prev, n)
	if err != nil {
		return Outcome{Kind: OutcomeRejected, Node: prev, Err: err}
	}
	return Outcome{Kind: OutcomeAccepted, Node: prev, Connection: conn}
}
