package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	appRepos "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/config"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account and grants it the admin
// role. Runs after migrations on every startup; existing data is left alone.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Info().Msg("Admin credentials not configured, skipping default admin creation")
		return nil
	}

	var finalErr error

	exists, err := userRepo.EmailExists(ctx, cfg.Admin.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	var adminID int64
	if exists {
		admin, err := userRepo.GetUserByEmail(ctx, cfg.Admin.Email)
		if err != nil {
			lgr.Error().Err(err).Msg("Error loading existing admin user")
			return err
		}
		adminID = admin.ID
	} else {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			return err
		}

		admin := &appModels.User{
			Email:         cfg.Admin.Email,
			Password:      hashedPassword,
			EmailVerified: true,
			IsActive:      true,
		}

		adminID, err = userRepo.CreateUser(ctx, admin)
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating admin user")
			return err
		}
		lgr.Info().Int64("adminId", adminID).Msg("Default admin user created")
	}

	// Granting is idempotent; an already-present role is a no-op.
	if err := userRepo.GrantRole(ctx, adminID, appModels.RoleAdmin); err != nil {
		lgr.Error().Err(err).Int64("adminId", adminID).Msg("Error granting admin role")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
