package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/floorsync/internal/app"
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the station config file")
	flag.Parse()

	bootLogger := logging.NewLogger("info")
	cfg, err := config.Load(*configPath, bootLogger)
	if err != nil {
		log.Fatalf("Cannot setup %s(%s): %v", app.AppName, app.AppVersion, err)
	}
	logger := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	a := app.New(cfg, logger)
	if err := a.Initialize(ctx); err != nil {
		log.Fatalf("Cannot initialize %s(%s): %v", app.AppName, app.AppVersion, err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped with error: %v", app.AppName, app.AppVersion, err)
	}
}
