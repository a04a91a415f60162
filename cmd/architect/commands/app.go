package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dyluth/architect/internal/config"
	"github.com/dyluth/architect/internal/logging"
	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/resolver"
	"github.com/dyluth/architect/internal/store"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every command after the config is loaded.
type app struct {
	configPath string
	cfg        *config.ArchitectConfig
	logger     *zap.Logger
}

// setup loads the configuration and builds the logger.
// Relative store and output paths are resolved against the config file's directory.
func (a *app) setup(cmd *cobra.Command) error {
	useCommandOutput(cmd)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"config": a.configPath},
			[]string{"Fix the file, or regenerate it:\n  architect init --force"},
		)
	}

	base := filepath.Dir(a.configPath)
	if !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(base, cfg.Store.Path)
	}
	if !filepath.IsAbs(cfg.Output.Dir) {
		cfg.Output.Dir = filepath.Join(base, cfg.Output.Dir)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("workspace", cfg.Workspace),
		zap.String("backend", cfg.Store.Backend))
	return nil
}

func (a *app) teardown() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// openStore opens the configured backend and checks it is reachable.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := s.Ping(ctx); err != nil {
		s.Close()
		target := a.cfg.Store.Path
		if a.cfg.Store.Backend == config.BackendRedis {
			target = a.cfg.Store.RedisURL
		}
		return nil, printer.ErrorWithContext(
			"store unavailable",
			err.Error(),
			map[string]string{"backend": a.cfg.Store.Backend, "target": target},
			[]string{"Check store settings in architect.yml or the ARCHITECT_STORE_* environment variables"},
		)
	}
	return s, nil
}

// load reads the current blueprint.
func (a *app) load(ctx context.Context) (blueprint.Blueprint, error) {
	s, err := a.openStore(ctx)
	if err != nil {
		return blueprint.Blueprint{}, err
	}
	defer s.Close()

	bp, err := s.Load(ctx)
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("failed to load blueprint: %w", err)
	}
	return bp, nil
}

// edit applies fn to the stored blueprint and saves the result.
func (a *app) edit(ctx context.Context, fn func(blueprint.Blueprint) (blueprint.Blueprint, error)) (blueprint.Blueprint, error) {
	s, err := a.openStore(ctx)
	if err != nil {
		return blueprint.Blueprint{}, err
	}
	defer s.Close()

	bp, err := store.Apply(ctx, s, fn)
	if err != nil {
		return blueprint.Blueprint{}, editError(err)
	}
	a.logger.Debug("blueprint saved", zap.String("project", bp.ProjectName))
	return bp, nil
}

// editError turns domain errors into formatted CLI errors.
func editError(err error) error {
	var ambiguous *resolver.AmbiguousError
	switch {
	case printer.IsReported(err):
		return err
	case blueprint.IsValidationError(err):
		return printer.Error("invalid blueprint", err.Error(), []string{"Inspect the current blueprint:\n  architect show"})
	case resolver.IsNotFoundError(err), blueprint.IsNotFound(err):
		return printer.Error("entry not found", err.Error(), []string{"List the blueprint's entries:\n  architect show"})
	case errors.As(err, &ambiguous):
		return printer.Error("ambiguous ID", resolver.FormatAmbiguousError(ambiguous), nil)
	default:
		return err
	}
}
