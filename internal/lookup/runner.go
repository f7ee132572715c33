package lookup

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/cubestand/internal/adapters/federation"
	service "github.com/okian/cubestand/internal/app"
	"github.com/okian/cubestand/pkg/logger"
)

// Run executes the lookup described by cfg and renders the result.
func Run(ctx context.Context, cfg *Config) error {
	switch {
	case cfg.ID == "":
		return fmt.Errorf("%w: -id is required", ErrUsage)
	case cfg.Format != FormatTable && cfg.Format != FormatJSON:
		return fmt.Errorf("%w: unknown format %q", ErrUsage, cfg.Format)
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	log := logger.Get().Named("lookup")
	client := federation.New(cfg.FederationURL,
		federation.WithAvatarURL(cfg.AvatarURL),
		federation.WithTimeout(cfg.Timeout),
		federation.WithLogger(log),
	)
	svc := service.New(client,
		service.WithFetchConcurrency(cfg.FetchConcurrency),
		service.WithLogger(log),
	)

	if cfg.VersusID == "" {
		profile, err := svc.Profile(ctx, cfg.ID)
		if err != nil {
			return err
		}
		if cfg.Format == FormatJSON {
			return RenderJSON(out, profile)
		}
		return RenderProfile(out, profile)
	}

	result, err := svc.Compare(ctx, cfg.ID, cfg.VersusID)
	if err != nil {
		return err
	}
	if cfg.Format == FormatJSON {
		return RenderJSON(out, result)
	}
	return RenderComparison(out, result)
}
