package oracle

import (
	"fmt"
	"slices"
)

// Status is the outcome of a colorability query.
type Status int

const (
	// Unknown means the search stopped before reaching a conclusion.
	Unknown Status = iota
	// Satisfiable means a k-coloring was found.
	Satisfiable
	// Unsatisfiable means no k-coloring exists.
	Unsatisfiable
)

var statusNames = map[Status]string{
	Unknown:       "unknown",
	Satisfiable:   "sat",
	Unsatisfiable: "unsat",
}

// String returns "sat", "unsat" or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for st, name := range statusNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("invalid status %q", text)
}

// Decided reports whether s is a definite answer.
func (s Status) Decided() bool { return s == Satisfiable || s == Unsatisfiable }

// Result is the outcome of one oracle call.
type Result struct {
	Status Status
	// Coloring is the witness for Satisfiable results, indexed by vertex id.
	Coloring []int
	// Nodes is the number of budget units spent.
	Nodes int64
}

func sat(coloring []int, nodes int64) Result {
	return Result{Status: Satisfiable, Coloring: slices.Clone(coloring), Nodes: nodes}
}

func unsat(nodes int64) Result { return Result{Status: Unsatisfiable, Nodes: nodes} }

func unknown(nodes int64) Result { return Result{Status: Unknown, Nodes: nodes} }
