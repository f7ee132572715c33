package federation

import "errors"

// Sentinel kinds for federation errors.
var (
	// ErrCompetitorNotFound means the federation has no competitor with the id.
	ErrCompetitorNotFound = errors.New("competitor not found")
	// ErrLeaderboardNotFound means the requested leaderboard does not exist.
	ErrLeaderboardNotFound = errors.New("leaderboard not found")
	// ErrUpstream wraps non-success responses and undecodable bodies.
	ErrUpstream = errors.New("federation upstream error")
)
