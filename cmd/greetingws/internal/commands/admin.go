package commands

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/ports"
	"github.com/examplews/greeting-service/internal/core/security"
	mongodb "github.com/examplews/greeting-service/internal/infrastructure/db/mongo"
	"github.com/examplews/greeting-service/internal/pkg/config"
)

type adminDeps struct {
	accounts ports.AccountRepository
	roles    ports.RoleRepository
	encoder  *security.PasswordEncoder
}

// bootstrapWithMongo runs fn against the configured database and closes the
// connection afterwards.
func bootstrapWithMongo(ctx context.Context, fn func(context.Context, *adminDeps) error) (*config.Config, zerolog.Logger, error) {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return nil, log, err
	}
	db, closeMongo, err := openMongo(ctx, cfg)
	if err != nil {
		return nil, log, err
	}
	defer closeMongo()

	deps := &adminDeps{
		accounts: mongodb.NewAccountRepository(db),
		roles:    mongodb.NewRoleRepository(db),
		encoder:  security.NewPasswordEncoder(cfg.Auth.BcryptCost),
	}
	return cfg, log, fn(ctx, deps)
}
