package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/auth"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/email"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	userRepo          repositories.IUserRepository
	tokenRepo         repositories.ITokenRepository
	verificationRepo  repositories.IVerificationTokenRepository
	passwordResetRepo repositories.IPasswordResetTokenRepository
	jwtService        *auth.JWTService
	emailService      email.EmailService
	googleClientID    string
	logger            zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	verificationRepo repositories.IVerificationTokenRepository,
	passwordResetRepo repositories.IPasswordResetTokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	googleClientID string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		tokenRepo:         tokenRepo,
		verificationRepo:  verificationRepo,
		passwordResetRepo: passwordResetRepo,
		jwtService:        jwtService,
		emailService:      emailService,
		googleClientID:    googleClientID,
		logger:            logger,
	}
}

// Register creates a new cadet account and sends a verification email
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "passwords do not match")
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, normalizedEmail)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    normalizedEmail,
		Password: hashedPassword,
		IsActive: true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	if err := s.sendVerificationToken(ctx, userID, normalizedEmail); err != nil {
		// The account exists; the token can be re-sent later.
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to send verification email")
	}

	return &dto.RegisterResponse{
		UserID:  userID,
		Email:   normalizedEmail,
		Message: "Registration successful. Please check your email to verify your account.",
	}, nil
}

// Login authenticates a cadet with email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !user.EmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	return s.generateTokenResponse(ctx, user)
}

// GoogleSignIn authenticates a cadet with a Google ID token. Unknown emails
// get an account created on the fly since Google has already verified them.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*dto.TokenResponse, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{s.googleClientID}); err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(claimSet.Email))
	if normalizedEmail == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizedEmail)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("error retrieving user: %w", err)
		}
		user, err = s.createGoogleUser(ctx, normalizedEmail)
		if err != nil {
			return nil, err
		}
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !user.EmailVerified {
		if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("error marking email verified: %w", err)
		}
		user.EmailVerified = true
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	return s.generateTokenResponse(ctx, user)
}

func (s *AuthService) createGoogleUser(ctx context.Context, normalizedEmail string) (*models.User, error) {
	// A random local password keeps password login closed until reset.
	randomSecret, err := email.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("error generating placeholder password: %w", err)
	}
	hashedPassword, err := auth.HashPassword(randomSecret)
	if err != nil {
		return nil, fmt.Errorf("error hashing placeholder password: %w", err)
	}

	user := &models.User{
		Email:         normalizedEmail,
		Password:      hashedPassword,
		EmailVerified: true,
		IsActive:      true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	s.logger.Info().Int64("userId", userID).Msg("Created account from Google sign-in")
	return user, nil
}

// RefreshToken rotates a refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetTokenUser(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation; the presented token must never be usable twice.
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound) {
			// Logging out with a dead token is still a logout.
			return nil
		}
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

// VerifyEmail marks a user's email as verified using a mailed token
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*dto.VerifyEmailResponse, error) {
	userID, expiryDate, err := s.verificationRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(expiryDate) {
		_ = s.verificationRepo.DeleteToken(ctx, token)
		return nil, apperrors.ErrInvalidEmailToken
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !user.EmailVerified {
		if err := s.userRepo.SetEmailVerified(ctx, userID); err != nil {
			return nil, fmt.Errorf("error marking email verified: %w", err)
		}
	}

	if err := s.verificationRepo.DeleteTokensByUserID(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to clean up verification tokens")
	}

	return &dto.VerifyEmailResponse{
		Email:    user.Email,
		Verified: true,
	}, nil
}

// ResendVerification sends a fresh verification email
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Do not reveal whether the address is registered.
			return nil
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	if user.EmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.verificationRepo.DeleteTokensByUserID(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to clean up verification tokens")
	}

	return s.sendVerificationToken(ctx, user.ID, user.Email)
}

// ForgotPassword mails a password reset token if the address is registered
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	if err := s.passwordResetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, token); err != nil {
		return fmt.Errorf("error sending reset email: %w", err)
	}

	return nil
}

// ResetPassword sets a new password using a mailed reset token and revokes
// every outstanding refresh token of that user.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, expiryDate, used, err := s.passwordResetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}

	if used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if time.Now().After(expiryDate) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if err := s.passwordResetRepo.MarkTokenUsed(ctx, token); err != nil {
		return fmt.Errorf("error marking reset token used: %w", err)
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to revoke refresh tokens after password reset")
	}

	return nil
}

// GetSession returns the current user for a valid access token
func (s *AuthService) GetSession(ctx context.Context, userID int64) (*dto.SessionResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResponse{User: toUserResponse(user)}, nil
}

// IsAdmin reports whether the user currently holds the admin role
func (s *AuthService) IsAdmin(ctx context.Context, userID int64) (*dto.IsAdminResponse, error) {
	isAdmin, err := s.userRepo.HasRole(ctx, userID, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("error checking admin role: %w", err)
	}

	return &dto.IsAdminResponse{IsAdmin: isAdmin}, nil
}

// UpdateUser changes the email and/or password of the authenticated user. An
// email change resets verification and triggers a fresh verification mail.
func (s *AuthService) UpdateUser(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		normalizedEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if normalizedEmail != user.Email {
			exists, err := s.userRepo.EmailExists(ctx, normalizedEmail)
			if err != nil {
				return nil, fmt.Errorf("error checking if email exists: %w", err)
			}
			if exists {
				return nil, apperrors.ErrEmailAlreadyExists
			}

			if err := s.userRepo.UpdateEmail(ctx, userID, normalizedEmail); err != nil {
				return nil, err
			}
			user.Email = normalizedEmail
			user.EmailVerified = false

			if err := s.sendVerificationToken(ctx, userID, normalizedEmail); err != nil {
				s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to send verification email")
			}
		}
	}

	if req.Password != nil {
		hashedPassword, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
			return nil, err
		}
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// Helper functions

func (s *AuthService) sendVerificationToken(ctx context.Context, userID int64, toEmail string) error {
	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("error generating verification token: %w", err)
	}

	if err := s.verificationRepo.CreateToken(ctx, userID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return fmt.Errorf("error storing verification token: %w", err)
	}

	if err := s.emailService.SendVerificationEmail(toEmail, token); err != nil {
		return fmt.Errorf("error sending verification email: %w", err)
	}

	return nil
}

// generateTokenResponse creates an access/refresh token pair and persists the
// refresh token.
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		LastLoginAt:   user.LastLoginAt,
	}
}
