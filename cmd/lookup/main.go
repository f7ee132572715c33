package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/cubestand/internal/config"
	"github.com/okian/cubestand/internal/lookup"
)

// Default configuration constants.
const (
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4 // multiplier for runtime.NumCPU()
	defaultRunTimeout  = 2 * time.Minute
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("Lookup failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	defaults := config.New()
	var (
		id          = flag.String("id", "", "Competitor id, e.g. 2009ZEMD01")
		versus      = flag.String("vs", "", "Second competitor id for a comparison")
		baseURL     = flag.String("url", defaults.FederationURL, "Base URL of the competitor and leaderboard API")
		avatarURL   = flag.String("avatar-url", defaults.AvatarURL, "Base URL of the avatar API")
		timeout     = flag.Duration("timeout", defaultTimeout, "Per-request timeout")
		concurrency = flag.Int("concurrency", runtime.NumCPU()*defaultConcurrency, "Leaderboard lookups in flight")
		format      = flag.String("format", lookup.FormatTable, "Output format: table or json")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		lookup.ShowHelp(os.Stdout)
		return nil
	}

	if err := lookup.SetupLogging(*verbose); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &lookup.Config{
		ID:               *id,
		VersusID:         *versus,
		FederationURL:    *baseURL,
		AvatarURL:        *avatarURL,
		Timeout:          *timeout,
		FetchConcurrency: *concurrency,
		Format:           *format,
		Out:              os.Stdout,
	}

	return lookup.Run(ctx, cfg)
}
