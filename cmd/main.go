package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "arduino_agent/docs"
	"arduino_agent/internal/config"
	"arduino_agent/internal/handlers"
	"arduino_agent/internal/logger"
	"arduino_agent/internal/repository"
	"arduino_agent/internal/repository/db"
	"arduino_agent/internal/serial"
	"arduino_agent/internal/server"
	"arduino_agent/internal/service"
	"arduino_agent/internal/sketch"
	"arduino_agent/internal/toolchain"

	"github.com/spf13/pflag"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	fs := config.NewFlagSet("arduino-agent")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Println("arduino-agent", Version)
		return
	}

	// load config.yml, .env, AGENT_* and flags
	cfg, err := config.Load(fs)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// locate arduino-cli
	runner, err := newRunner(cfg, log)
	if err != nil {
		log.Fatalw("toolchain unavailable", "err", err)
	}

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(service.Deps{
		Repos:       repos,
		Locator:     serial.NewLocator(nil, cfg.Serial.Keywords, log.Component("locator")),
		Stager:      sketch.NewStager(cfg.Workspace.BaseDir),
		Toolchain:   runner,
		DefaultFQBN: cfg.Board.FQBN,
		Log:         log,
	})
	apiHandler := handlers.NewHandler(services, log.Component("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// board attach/detach history
	go services.Watcher.Run(ctx, cfg.Serial.WatchInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// newRunner resolves the arduino-cli binary and logs its version.
func newRunner(cfg config.Config, log *logger.Logger) (*toolchain.Runner, error) {
	bin, err := toolchain.Resolve(cfg.Toolchain.Path, cfg.Toolchain.BundleDir)
	if err != nil {
		return nil, err
	}
	runner := toolchain.NewRunner(bin, cfg.Toolchain.Timeout, log.Component("toolchain"))

	if v, verr := runner.Version(context.Background()); verr != nil {
		log.Warnw("toolchain_version_unknown", "binary", bin, "err", verr)
	} else {
		log.Infow("toolchain_found", "binary", bin, "version", v)
	}
	return runner, nil
}

// openDB initializes the SQLite event store.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening event store", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.Config, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("agent listening", "addr", cfg.Addr(), "fqbn", cfg.Board.FQBN, "version", Version)
		err := srv.Run(cfg.Addr(), handler.InitRoutes(), cfg.Server.WriteTimeout)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight uploads to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
