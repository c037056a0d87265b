package model

import "fmt"

// MatchPolicy selects how a folder is chosen for a record.
type MatchPolicy string

// Match policy constants.
const (
	// PolicyFirstOverThreshold accepts the first folder whose score exceeds
	// the threshold, in directory listing order. Later, higher-scoring
	// folders are never considered once a match is accepted.
	PolicyFirstOverThreshold MatchPolicy = "first"
	// PolicyBestMatch scans every candidate and keeps the global maximum,
	// ties resolved by first-seen order.
	PolicyBestMatch MatchPolicy = "best"
)

// Validate checks that the policy is one of the known constants.
func (p MatchPolicy) Validate() error {
	switch p {
	case PolicyFirstOverThreshold, PolicyBestMatch:
		return nil
	default:
		return fmt.Errorf("unknown match policy: %q", string(p))
	}
}
