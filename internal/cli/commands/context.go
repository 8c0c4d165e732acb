// Package commands implements the echelon subcommands.
package commands

import (
	"context"
	"os"

	"github.com/echelon-labs/echelon/internal/cli/config"
	"github.com/echelon-labs/echelon/internal/cli/output"
)

// ConfigKey is the context key under which the root command stores the
// resolved configuration.
type ConfigKey struct{}

// RendererKey is the context key under which the root command stores
// the renderer.
type RendererKey struct{}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Output: config.DefaultOutput}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(RendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}
