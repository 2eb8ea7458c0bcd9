package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/fadedpez/tucobet/internal/bot"
	"github.com/fadedpez/tucobet/internal/config"
	"github.com/fadedpez/tucobet/internal/discord"
	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/pkg/dashboard"
	"github.com/fadedpez/tucobet/pkg/dice"
	tucodiscord "github.com/fadedpez/tucobet/pkg/discord"
	sessionRepo "github.com/fadedpez/tucobet/pkg/repositories/session"
	"github.com/fadedpez/tucobet/pkg/scheduler"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"golang.org/x/sync/errgroup"
)

type CLI struct {
	EnvFile  []string `help:"Env files to load before reading the environment" type:"path"`
	LogLevel string   `help:"Override LOG_LEVEL (debug, info, warn, error)"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("tucobet"),
		kong.Description("Martingale bet advisor and Bac Bo table for Discord and the web dashboard."),
	)

	// Load configuration
	cfg, err := config.Load(cli.EnvFile...)
	if err != nil {
		logging.Default.Error("Failed to load configuration: %v", err)
		kctx.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		logging.Default.Error("Invalid log level: %v", err)
		kctx.Exit(1)
	}
	logger := logging.NewLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Exited with error: %v", err)
		kctx.Exit(1)
	}
	logger.Info("Shut down cleanly")
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	clock := quartz.NewReal()
	repo := sessionRepo.NewMemoryRepository()
	defer repo.Close()

	service := session.NewService(repo, bacbo.NewResolver(dice.NewRandomRoller()), clock, logger)

	g, ctx := errgroup.WithContext(ctx)

	reaper := scheduler.NewSessionReaper(service, cfg.SessionMaxIdle, cfg.ReapInterval, clock, logger)
	g.Go(func() error {
		return reaper.Run(ctx)
	})

	if cfg.DiscordEnabled() {
		dg, err := discord.NewSession(cfg.Token)
		if err != nil {
			return err
		}
		handler := tucodiscord.NewHandler(service, session.ParamsFromPreset(cfg.Presets.Chat), clock, logger)
		tucoBot := bot.New(cfg, dg, handler, logger)
		g.Go(func() error {
			return tucoBot.Run(ctx)
		})
	}

	if cfg.DashboardEnabled() {
		server := dashboard.NewServer(cfg.DashboardAddr, service, session.ParamsFromPreset(cfg.Presets.Dashboard), logger)
		g.Go(func() error {
			return server.Run(ctx)
		})
	}

	logger.Info("Tuco is now running. Press CTRL-C to exit.")
	return g.Wait()
}
