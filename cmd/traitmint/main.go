// Package main provides the entry point for the traitmint collection generator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/traitmint/internal/di"
	domainerrors "github.com/listenupapp/traitmint/internal/errors"
	"github.com/listenupapp/traitmint/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer(os.Args[1:])

	// Resolve configuration, catalog and outputs
	gen, err := di.Bootstrap(injector)
	if err != nil {
		if log, logErr := do.Invoke[*logger.Logger](injector); logErr == nil {
			log.Fatal(domainerrors.CodeOf(err).ExitStatus(), "Failed to bootstrap", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(domainerrors.CodeOf(err).ExitStatus())
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Stop between items on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := gen.Run(ctx)
	if err != nil {
		log.Error("Generation failed",
			"error", err,
			"code", domainerrors.CodeOf(err),
			"items_written", len(summary.Items),
		)
		stop()
		os.Exit(domainerrors.CodeOf(err).ExitStatus())
	}

	log.Info("Collection ready",
		"items", len(summary.Items),
		"duplicates", summary.Duplicates,
		"elapsed", summary.Elapsed,
	)
}
