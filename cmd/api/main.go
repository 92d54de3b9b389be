package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/config"
	"pitchbase.org/internal/httpapi"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/obs"
	"pitchbase.org/internal/store/pg"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tokens, err := auth.NewTokens(cfg.SigningKey, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	var (
		store league.Store
		users auth.UserStore
		db    *sql.DB
	)
	if cfg.PGDSN != "" {
		pgStore, err := pg.Open(cfg.PGDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		store, users, db = pgStore, pgStore, pgStore.DB()
	} else {
		mem := league.NewMemStore()
		store, users = mem, mem
		log.Print("no PITCHBASE_PG_DSN set, using in-memory store")
	}

	if err := bootstrapAdmin(cfg, users); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	api := httpapi.New(store, users, tokens, httpapi.ReadyProbe{DB: db}, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var grpcSrv *httpapi.GRPCServer
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("grpc listen: %v", err)
		}
		grpcSrv = httpapi.NewGRPCServer(httpapi.ReadyProbe{DB: db})
		go func() {
			log.Printf("grpc health on %s", cfg.GRPCAddr)
			if err := grpcSrv.Serve(rootCtx, lis); err != nil {
				log.Fatalf("grpc serve: %v", err)
			}
		}()
	}

	log.Printf("starting pitchbase-api %s on %s", version, cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Print("shutting down...")

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(ctx)
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	log.Print("stopped")
}

// bootstrapAdmin creates the configured administrator on first start.
func bootstrapAdmin(cfg *config.Config, users auth.UserStore) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := users.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, auth.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	err = users.Create(ctx, &auth.User{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	})
	if errors.Is(err, auth.ErrAlreadyExists) {
		return nil
	}
	return err
}
