// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/noxera-service/internal/config"
	"github.com/canonical/noxera-service/internal/db"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring/prometheus"
	"github.com/canonical/noxera-service/internal/storage"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/pkg/authentication"
	"github.com/canonical/noxera-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}

	if err := specs.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	production := specs.IsProduction()
	logger.Infof("starting in %s environment (production safeguards: %v)", specs.Environment, production)

	monitor := prometheus.NewMonitor("noxera-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	secret, err := authentication.SigningSecret(specs.SessionSecret, production)
	if err != nil {
		return err
	}
	if specs.SessionSecret == "" {
		logger.Warn("SESSION_SECRET is not set, using the development default; never do this outside local development")
	}

	verifier, err := authentication.NewIdentityVerifier(
		context.Background(),
		authentication.VerifierConfig{
			Issuer:    specs.OIDCIssuer,
			JWKSURL:   specs.OIDCJWKSURL,
			ClientID:  specs.OIDCClientID,
			RoleClaim: specs.OIDCRoleClaim,
		},
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to set up identity verifier: %w", err)
	}

	authenticator := authentication.NewAuthenticator(
		verifier,
		authentication.NewSessionCodec(secret),
		authentication.DevSessionPolicy{Production: production, Enabled: specs.DevAuthEnabled},
		tracer,
		monitor,
		logger,
	)

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %w", err)
	}
	defer dbClient.Close()

	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	router := web.NewRouter(
		web.Config{
			CORSAllowedOrigins: specs.CORSAllowedOrigins,
			SecureCookie:       production,
		},
		s,
		dbClient,
		authenticator,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
