package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/stormkit-io/fnmanagement/src/ce/api/function/functionhandlers"
	"github.com/stormkit-io/fnmanagement/src/ce/api/router"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/database"
	"github.com/stormkit-io/fnmanagement/src/lib/sapi"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/limiter"
	"github.com/stormkit-io/fnmanagement/src/lib/shutdown"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"github.com/stormkit-io/fnmanagement/src/lib/tracking"
	"github.com/stormkit-io/fnmanagement/src/migrations"
)

func migrate(c *config.Config) error {
	if c.DataLayer.Backend != config.DataLayerPostgres {
		return nil
	}

	conn, err := database.Connection()

	if err != nil {
		return err
	}

	return migrations.Up(conn, c.Database)
}

func registerServices(ctx context.Context, c *config.Config) error {
	api, err := sapi.FromConfig(c)

	if err != nil {
		return err
	}

	functionhandlers.DefaultAPI = api

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", c.HTTPPort),
		ReadTimeout:  c.HTTPTimeouts.ReadTimeout,
		WriteTimeout: c.HTTPTimeouts.WriteTimeout,
		IdleTimeout:  c.HTTPTimeouts.IdleTimeout,
		Handler:      router.Get().Handler(),
	}

	shutdown.Subscribe(func() error {
		return srv.Shutdown(ctx)
	})

	slog.Infof("api server listening on :%d", c.HTTPPort)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	c := config.Get()

	if err := c.Validate(); err != nil {
		slog.Errorf("invalid configuration: %s", err.Error())
		os.Exit(1)
	}

	shutdown.Listen()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if c.Tracking.Prometheus {
		tracking.Prometheus(tracking.PrometheusOpts{Lookups: true, Runtime: true})
	}

	go limiter.Cleanup(ctx)

	if err := migrate(c); err != nil {
		slog.Errorf("cannot run migrations: %s", err.Error())
		os.Exit(1)
	}

	if err := registerServices(ctx, c); err != nil {
		slog.Errorf("api server stopped: %s", err.Error())
		os.Exit(1)
	}
}
