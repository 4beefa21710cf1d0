package comments

import "fmt"

// State is the aggregation run state.
type State int

const (
	StateOraclePending State = iota
	StateFirstPagePending
	StatePaging
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateOraclePending:
		return "ORACLE_PENDING"
	case StateFirstPagePending:
		return "FIRST_PAGE_PENDING"
	case StatePaging:
		return "PAGING"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is allowed.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

var transitions = map[State][]State{
	StateOraclePending:    {StateFirstPagePending, StateFailed},
	StateFirstPagePending: {StateDone, StatePaging, StateFailed},
	StatePaging:           {StatePaging, StateDone, StateFailed},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EndReason records why a successful run stopped paging.
type EndReason int

const (
	EndOfData EndReason = iota
	EndProtocolDrift
)

func (r EndReason) String() string {
	switch r {
	case EndOfData:
		return "end_of_data"
	case EndProtocolDrift:
		return "protocol_drift"
	}
	return fmt.Sprintf("EndReason(%d)", int(r))
}
