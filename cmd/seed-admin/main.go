// Command seed-admin provisions an administrator account. Intended for
// first-time setup; the account logs in and completes 2FA enrollment itself.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/openipo/admin-backend/internal/admin"
	"github.com/openipo/admin-backend/pkg/config"
	"github.com/openipo/admin-backend/pkg/logger"
	"github.com/openipo/admin-backend/pkg/mongo"
)

func main() {
	email := flag.String("email", "", "admin email address (required)")
	password := flag.String("password", "", "initial password (required)")
	superAdmin := flag.Bool("super", false, "grant the SUPER_ADMIN role")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	var logCfg logger.Config
	var mongoCfg mongo.Config
	config.MustLoad(&logCfg)
	config.MustLoad(&mongoCfg)
	log := logger.NewFromConfig(logCfg, logger.WithService("seed-admin"))

	ctx := context.Background()
	db, err := mongo.NewDatabase(ctx, mongoCfg)
	if err != nil {
		fatal(log, "failed to connect to mongodb", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	store := admin.NewMongoStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		fatal(log, "failed to ensure indexes", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fatal(log, "failed to hash password", err)
	}

	role := admin.RoleAdmin
	if *superAdmin {
		role = admin.RoleSuperAdmin
	}

	account := &admin.Account{
		Email:        *email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := store.Create(ctx, account); err != nil {
		if errors.Is(err, admin.ErrDuplicateEmail) {
			fmt.Fprintf(os.Stderr, "account %s already exists\n", admin.NormalizeEmail(*email))
			os.Exit(1)
		}
		fatal(log, "failed to create account", err)
	}

	fmt.Printf("created %s account %s (id %s)\n", role, account.Email, account.ID.Hex())
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
