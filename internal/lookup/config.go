package lookup

import (
	"errors"
	"io"
	"time"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUsage reports invalid command-line input.
var ErrUsage = errors.New("usage error")

// Config holds configuration for one lookup run.
type Config struct {
	ID               string        // Competitor to look up
	VersusID         string        // Optional opponent; switches to comparison mode
	FederationURL    string        // Base URL of the competitor/leaderboard API
	AvatarURL        string        // Base URL of the avatar API
	Timeout          time.Duration // Per-request timeout
	FetchConcurrency int           // Leaderboard lookups in flight
	Format           string        // table or json
	Out              io.Writer     // Destination of the rendered result
}
