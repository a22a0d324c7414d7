package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"hotstock/internal/delivery/http"
	"hotstock/internal/hub"
	"hotstock/internal/repository"
	"hotstock/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run hotstock",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {

	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	liveHub := hub.New(appDep.cfg.Hub, appDep.log)

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.cache,
		liveHub,
	)

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.echo, appDep.validator, services, liveHub, appDep.log)
	apiServer := NewHTTPServer(ctx, appDep, httpHandler)

	if err := services.Maintenance.Start(ctx); err != nil {
		log.Fatalf("Failed to start maintenance jobs: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		services.Simulator.Run(gctx)
		return nil
	})

	// Wait for shutdown signal
	<-ctx.Done()
	appDep.log.Info("Shutting down gracefully...")

	services.Maintenance.Stop()
	liveHub.Close()

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
