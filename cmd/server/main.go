// Command server runs the OpenIPO admin authentication backend.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/openipo/admin-backend/internal/admin"
	"github.com/openipo/admin-backend/internal/auth"
	"github.com/openipo/admin-backend/internal/token"
	"github.com/openipo/admin-backend/pkg/config"
	"github.com/openipo/admin-backend/pkg/cookie"
	"github.com/openipo/admin-backend/pkg/httpserver"
	"github.com/openipo/admin-backend/pkg/logger"
	"github.com/openipo/admin-backend/pkg/mongo"
	"github.com/openipo/admin-backend/pkg/vault"
)

func main() {
	var logCfg logger.Config
	var mongoCfg mongo.Config
	var httpCfg httpserver.Config
	var authCfg auth.Config
	config.MustLoad(&logCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&authCfg)

	log := logger.NewFromConfig(logCfg, logger.WithService("admin-backend"))
	ctx := context.Background()

	client, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		fatal(log, "failed to connect to mongodb", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(mongoCfg.Database)

	v, err := vault.NewFromBase64(authCfg.EncryptionKey)
	if err != nil {
		fatal(log, "invalid encryption key", err)
	}

	tokens, err := token.New(authCfg.SigningKey, authCfg.Issuer)
	if err != nil {
		fatal(log, "invalid token configuration", err)
	}

	store := admin.NewMongoStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		fatal(log, "failed to ensure indexes", err)
	}
	sink := admin.NewMongoSink(db, log)

	svc := auth.NewService(authCfg, store, sink, v, tokens, log)
	cookies := cookie.New(cookie.WithSecure(authCfg.SecureCookies))
	handler := auth.NewHandler(authCfg, svc, cookies, log)

	ping := mongo.Healthcheck(client)
	r := chi.NewRouter()
	r.Mount("/api/admin/auth", handler.Routes())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			log.Warn("healthcheck failed", slog.Any("error", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := httpserver.New(httpCfg, log).Run(ctx, r); err != nil {
		fatal(log, "server exited with error", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
