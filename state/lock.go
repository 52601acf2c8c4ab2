package state

import "gopkg.in/guregu/null.v3"

// BlockedQuery - A waiting backend together with the sessions holding it up
type BlockedQuery struct {
	BlockedPid   int32       `json:"blocked_pid"`
	BlockedQuery null.String `json:"blocked_query"`
	BlockedMode  null.String `json:"blocked_mode"`
	BlockingPids []int64     `json:"blocking_pids"`

	// Pids blocked further down the wait graph, reachable only through this one
	IndirectlyBlockedPids []int64 `json:"indirectly_blocked_pids,omitempty"`
}
