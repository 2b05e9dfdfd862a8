package model

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusPrinting  Status = "printing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// statusLabels maps a status to its display text.
var statusLabels = map[Status]string{
	StatusPending:   "Pending",
	StatusAccepted:  "Accepted",
	StatusPrinting:  "Printing",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// transitions is the legality table. Completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusCancelled},
	StatusAccepted: {StatusPrinting, StatusCancelled},
	StatusPrinting: {StatusCompleted},
}

// Label returns the display text for s, falling back to the raw value
// for statuses outside the known set.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Known reports whether s is one of the documented statuses.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether s -> next is a legal transition.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
