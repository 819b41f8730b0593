package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
	"github.com/MKhiriev/go-item-custody/internal/client"
	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/tui"
	"github.com/MKhiriev/go-item-custody/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("item-custody-client", logger.WithOutput(os.Stderr), logger.WithLevel("warn"))

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	ui := tui.New(serverAdapter, buildInfo, log)
	var app client.Client = client.NewApp(serverAdapter, ui, buildInfo, os.Stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, args); err != nil {
		stop()
		if errors.Is(err, client.ErrUsage) {
			fmt.Fprint(os.Stderr, client.Usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
