package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/commands"
	"staffattendance/backend/internal/pkg/config"
	"staffattendance/backend/internal/pkg/repository/postgresql"
	"staffattendance/backend/internal/router"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log.Fatalf("main: %v", err)
	}
}

func run() error {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		return err
	}
	log.Printf("main: config\n%s", cfg)

	// =========================================================================
	// Database

	db, err := postgresql.Open(cfg.DB)
	if err != nil {
		return errors.Wrap(err, "connecting to db")
	}
	defer db.Close()

	ctx := context.Background()

	if err := commands.MigrateUP(ctx, db); err != nil {
		return err
	}
	if err := commands.SeedAdmin(ctx, db, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		return err
	}

	// =========================================================================
	// Sessions

	var sessions auth.SessionStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Wrap(err, "connecting to redis")
		}
		sessions = auth.NewRedisStore(client)
	} else {
		log.Println("main: redis address is empty, sessions are kept in memory")
		sessions = auth.NewMemoryStore()
	}

	a, err := auth.New(cfg.Auth.JWTKey, cfg.Auth.SessionTTL, sessions)
	if err != nil {
		return errors.Wrap(err, "constructing auth")
	}

	// =========================================================================
	// HTTP

	r := router.NewRouter(web.NewApp(), db, a, cfg)
	if err := r.Init(); err != nil {
		return errors.Wrap(err, "initializing routes")
	}

	server := &http.Server{
		Addr:         cfg.Web.Address,
		Handler:      r.App,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("main: listening on %s", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		log.Printf("main: %v received, shutting down", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}

