// SPDX-License-Identifier: EPL-2.0

package converter

// State of a conversion job.
type State int

const (
	StateIdle State = iota
	StateNegotiating
	StateLooping
	StateFinalizing
	StateFailed
	StateDone
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateNegotiating: "negotiating",
	StateLooping:     "looping",
	StateFinalizing:  "finalizing",
	StateFailed:      "failed",
	StateDone:        "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateDone
}
