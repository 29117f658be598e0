package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	TokenRepository              *TokenRepository
	VerificationTokenRepository  *VerificationTokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	StudentRepository            *StudentRepository
	NccDetailRepository          *NccDetailRepository
	ExperienceRepository         *ExperienceRepository
	ContentRepository            *ContentRepository
	AdminRepository              *AdminRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		TokenRepository:              NewTokenRepository(db),
		VerificationTokenRepository:  NewVerificationTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		StudentRepository:            NewStudentRepository(db),
		NccDetailRepository:          NewNccDetailRepository(db),
		ExperienceRepository:         NewExperienceRepository(db),
		ContentRepository:            NewContentRepository(db),
		AdminRepository:              NewAdminRepository(db),
	}
}
