// Package providers contains dependency injection providers for a traitmint run.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/traitmint/internal/config"
	"github.com/listenupapp/traitmint/internal/id"
	"github.com/listenupapp/traitmint/internal/logger"
)

// Args are the command-line arguments the configuration is parsed from.
type Args []string

// RunID identifies one generation run in every log record.
type RunID string

// ProvideConfig provides the run configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	// Args are optional; without them only env, .env and defaults apply.
	args, _ := do.Invoke[Args](i)
	return config.LoadConfig(args)
}

// ProvideRunID provides a fresh run id.
func ProvideRunID(i do.Injector) (RunID, error) {
	runID, err := id.NewRunID()
	if err != nil {
		return "", err
	}
	return RunID(runID), nil
}

// ProvideLogger provides the structured logger, tagged with the run id.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	runID := do.MustInvoke[RunID](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development" && cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
	}).ForRun(string(runID))

	log.Info("Starting traitmint",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"layers_path", cfg.Paths.LayersPath,
		"output_path", cfg.Paths.OutputPath,
		"count", cfg.Collection.Count,
	)

	return log, nil
}
