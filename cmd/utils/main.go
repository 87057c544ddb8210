package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/floorsync/cmd/utils/internal/commands"
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

const (
	appName    = "floorsync-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := fs.String("config", config.DefaultFile, "path to the station config file")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath, nil)
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}
	logger := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "seed-demo":
		res, err := commands.SeedDemo(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("❌ Demo seeding failed: %v", err)
		}
		logger.Info("✅ Demo seeding completed successfully", "templates", res.Templates, "supplies", res.Supplies)

	case "clear-locks":
		commands.ClearLocks(cfg, logger)
		logger.Info("✅ Locks cleared successfully")

	case "prune-mailboxes":
		removed := commands.PruneMailboxes(cfg, fs.Args(), logger)
		logger.Info("✅ Mailboxes pruned", "removed", len(removed))

	case "requests":
		if _, err := commands.PrintRequests(cfg, os.Stdout, logger); err != nil {
			log.Fatalf("❌ Cannot print requests: %v", err)
		}

	case "tail-feed":
		if err := commands.TailFeed(ctx, cfg, os.Stdout, logger); err != nil {
			log.Fatalf("❌ Cannot follow feed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - floorsync utility commands

Usage:
  %s <command> [-config path] [args]

Commands:
  seed-demo                  Create the demo menu and stock (existing entries are kept)
  clear-locks                Remove every order lock (use when a station crashed mid-edit)
  prune-mailboxes [id ...]   Remove mailboxes of stations not listed (USE WITH CAUTION)
  requests                   Recompute and print restock requests
  tail-feed                  Print snapshots mirrored to the NATS feed
  version                    Print version information
  help                       Show this help message

Environment Variables:
  FLOORSYNC_DATA_ROOT        Shared data root (default: data)
  FLOORSYNC_LOG_LEVEL        Log level: debug, info, warn, error (default: info)
  FLOORSYNC_FEED_NATS_URL    NATS URL for tail-feed

Examples:
  %s seed-demo
  %s prune-mailboxes 0192a3c4-... 0192a3c5-...
  FLOORSYNC_DATA_ROOT=/mnt/restaurant %s requests

`, appName, appName, appName, appName, appName)
}
