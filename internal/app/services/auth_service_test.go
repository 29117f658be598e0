package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/auth"
)

type authServiceMocks struct {
	userRepo          *mockUserRepo
	tokenRepo         *mockTokenRepo
	verificationRepo  *mockVerificationTokenRepo
	passwordResetRepo *mockPasswordResetTokenRepo
	emailService      *mockEmailService
}

func newAuthService(m authServiceMocks) *AuthService {
	if m.userRepo == nil {
		m.userRepo = &mockUserRepo{}
	}
	if m.tokenRepo == nil {
		m.tokenRepo = &mockTokenRepo{}
	}
	if m.verificationRepo == nil {
		m.verificationRepo = &mockVerificationTokenRepo{}
	}
	if m.passwordResetRepo == nil {
		m.passwordResetRepo = &mockPasswordResetTokenRepo{}
	}
	if m.emailService == nil {
		m.emailService = &mockEmailService{}
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "ncc-air-wing-test",
	})

	return NewAuthService(m.userRepo, m.tokenRepo, m.verificationRepo,
		m.passwordResetRepo, jwtService, m.emailService, "test-client-id", zerolog.Nop())
}

func verifiedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &models.User{
		ID:            1,
		Email:         "cadet@nccairwing.in",
		Password:      hashed,
		EmailVerified: true,
		IsActive:      true,
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	service := newAuthService(authServiceMocks{})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:           "cadet@nccairwing.in",
		Password:        "password123",
		ConfirmPassword: "password124",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:           "cadet@nccairwing.in",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterNormalizesEmailAndSendsVerification(t *testing.T) {
	var createdEmail string
	userRepo := &mockUserRepo{
		createUserFn: func(ctx context.Context, user *models.User) (int64, error) {
			createdEmail = user.Email
			return 7, nil
		},
	}
	emailService := &mockEmailService{}
	service := newAuthService(authServiceMocks{userRepo: userRepo, emailService: emailService})

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:           "  Cadet@NCCairwing.IN ",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if createdEmail != "cadet@nccairwing.in" {
		t.Errorf("expected normalized email, got %q", createdEmail)
	}
	if resp.UserID != 7 {
		t.Errorf("expected user 7, got %d", resp.UserID)
	}
	if len(emailService.verificationEmails) != 1 {
		t.Errorf("expected one verification mail, got %d", len(emailService.verificationEmails))
	}
}

func TestRegisterSucceedsWhenMailFails(t *testing.T) {
	emailService := &mockEmailService{sendErr: errors.New("smtp down")}
	service := newAuthService(authServiceMocks{emailService: emailService})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:           "cadet@nccairwing.in",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if err != nil {
		t.Fatalf("a failed verification mail must not fail registration, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@nccairwing.in",
		Password: "password123",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := verifiedUser(t, "password123")
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnverifiedEmail(t *testing.T) {
	user := verifiedUser(t, "password123")
	user.EmailVerified = false
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	if !errors.Is(err, apperrors.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	user := verifiedUser(t, "password123")
	user.IsActive = false
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	user := verifiedUser(t, "password123")
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	var persistedToken string
	tokenRepo := &mockTokenRepo{
		createTokenFn: func(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
			persistedToken = token
			return nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo, tokenRepo: tokenRepo})

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", resp.TokenType)
	}
	if persistedToken != resp.RefreshToken {
		t.Error("the issued refresh token must be persisted")
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	user := verifiedUser(t, "password123")
	userRepo := &mockUserRepo{
		getUserByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return user, nil
		},
	}

	var revoked []string
	tokenRepo := &mockTokenRepo{
		revokeTokenFn: func(ctx context.Context, token string) error {
			revoked = append(revoked, token)
			return nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo, tokenRepo: tokenRepo})

	resp, err := service.RefreshToken(context.Background(), "old-refresh-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(revoked) != 1 || revoked[0] != "old-refresh-token" {
		t.Errorf("expected the presented token to be revoked, got %v", revoked)
	}
	if resp.RefreshToken == "old-refresh-token" {
		t.Error("rotation must issue a new refresh token")
	}
}

func TestRefreshTokenRevokedToken(t *testing.T) {
	tokenRepo := &mockTokenRepo{
		getTokenUserFn: func(ctx context.Context, token string) (int64, error) {
			return 0, apperrors.ErrTokenRevoked
		},
	}
	service := newAuthService(authServiceMocks{tokenRepo: tokenRepo})

	_, err := service.RefreshToken(context.Background(), "revoked-token")
	if !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestLogoutDeadTokenSucceeds(t *testing.T) {
	tokenRepo := &mockTokenRepo{
		revokeTokenFn: func(ctx context.Context, token string) error {
			return apperrors.ErrTokenNotFound
		},
	}
	service := newAuthService(authServiceMocks{tokenRepo: tokenRepo})

	if err := service.Logout(context.Background(), "dead-token"); err != nil {
		t.Fatalf("logging out with a dead token must succeed, got %v", err)
	}
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	deleted := false
	verificationRepo := &mockVerificationTokenRepo{
		getTokenInfoFn: func(ctx context.Context, token string) (int64, time.Time, error) {
			return 1, time.Now().Add(-time.Hour), nil
		},
		deleteTokenFn: func(ctx context.Context, token string) error {
			deleted = true
			return nil
		},
	}
	service := newAuthService(authServiceMocks{verificationRepo: verificationRepo})

	_, err := service.VerifyEmail(context.Background(), "expired-token")
	if !errors.Is(err, apperrors.ErrInvalidEmailToken) {
		t.Fatalf("expected ErrInvalidEmailToken, got %v", err)
	}
	if !deleted {
		t.Error("an expired token must be deleted")
	}
}

func TestVerifyEmailMarksVerified(t *testing.T) {
	markedUser := int64(0)
	userRepo := &mockUserRepo{
		getUserByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "cadet@nccairwing.in"}, nil
		},
		setVerifiedFn: func(ctx context.Context, userID int64) error {
			markedUser = userID
			return nil
		},
	}
	verificationRepo := &mockVerificationTokenRepo{
		getTokenInfoFn: func(ctx context.Context, token string) (int64, time.Time, error) {
			return 5, time.Now().Add(time.Hour), nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo, verificationRepo: verificationRepo})

	resp, err := service.VerifyEmail(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if markedUser != 5 {
		t.Errorf("expected user 5 to be marked verified, got %d", markedUser)
	}
	if !resp.Verified || resp.Email != "cadet@nccairwing.in" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestResendVerificationUnknownEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}
	emailService := &mockEmailService{}
	service := newAuthService(authServiceMocks{userRepo: userRepo, emailService: emailService})

	// Unknown addresses are not revealed.
	if err := service.ResendVerification(context.Background(), "nobody@nccairwing.in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(emailService.verificationEmails) != 0 {
		t.Error("no mail must be sent for an unknown address")
	}
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, EmailVerified: true}, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	err := service.ResendVerification(context.Background(), "cadet@nccairwing.in")
	if !errors.Is(err, apperrors.ErrEmailAlreadyVerified) {
		t.Fatalf("expected ErrEmailAlreadyVerified, got %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}
	emailService := &mockEmailService{}
	service := newAuthService(authServiceMocks{userRepo: userRepo, emailService: emailService})

	if err := service.ForgotPassword(context.Background(), "nobody@nccairwing.in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(emailService.resetEmails) != 0 {
		t.Error("no mail must be sent for an unknown address")
	}
}

func TestForgotPasswordSendsResetMail(t *testing.T) {
	emailService := &mockEmailService{}
	tokenStored := false
	passwordResetRepo := &mockPasswordResetTokenRepo{
		createTokenFn: func(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
			tokenStored = true
			return nil
		},
	}
	service := newAuthService(authServiceMocks{emailService: emailService, passwordResetRepo: passwordResetRepo})

	if err := service.ForgotPassword(context.Background(), "cadet@nccairwing.in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tokenStored {
		t.Error("expected a reset token to be stored")
	}
	if len(emailService.resetEmails) != 1 {
		t.Errorf("expected one reset mail, got %d", len(emailService.resetEmails))
	}
}

func TestResetPasswordUsedToken(t *testing.T) {
	passwordResetRepo := &mockPasswordResetTokenRepo{
		getTokenInfoFn: func(ctx context.Context, token string) (int64, time.Time, bool, error) {
			return 1, time.Now().Add(time.Hour), true, nil
		},
	}
	service := newAuthService(authServiceMocks{passwordResetRepo: passwordResetRepo})

	err := service.ResetPassword(context.Background(), "used-token", "newpassword1")
	if !errors.Is(err, apperrors.ErrPasswordResetTokenUsed) {
		t.Fatalf("expected ErrPasswordResetTokenUsed, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	passwordResetRepo := &mockPasswordResetTokenRepo{
		getTokenInfoFn: func(ctx context.Context, token string) (int64, time.Time, bool, error) {
			return 1, time.Now().Add(-time.Minute), false, nil
		},
	}
	service := newAuthService(authServiceMocks{passwordResetRepo: passwordResetRepo})

	err := service.ResetPassword(context.Background(), "expired-token", "newpassword1")
	if !errors.Is(err, apperrors.ErrInvalidPasswordResetToken) {
		t.Fatalf("expected ErrInvalidPasswordResetToken, got %v", err)
	}
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	passwordUpdated := false
	userRepo := &mockUserRepo{
		updatePasswordFn: func(ctx context.Context, userID int64, hashedPassword string) error {
			passwordUpdated = true
			return nil
		},
	}
	tokenMarked := false
	passwordResetRepo := &mockPasswordResetTokenRepo{
		markTokenUsedFn: func(ctx context.Context, token string) error {
			tokenMarked = true
			return nil
		},
	}
	revokedAll := false
	tokenRepo := &mockTokenRepo{
		revokeAllTokensFn: func(ctx context.Context, userID int64) error {
			revokedAll = true
			return nil
		},
	}
	service := newAuthService(authServiceMocks{
		userRepo:          userRepo,
		tokenRepo:         tokenRepo,
		passwordResetRepo: passwordResetRepo,
	})

	if err := service.ResetPassword(context.Background(), "valid-token", "newpassword1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !passwordUpdated {
		t.Error("expected the password to be updated")
	}
	if !tokenMarked {
		t.Error("expected the reset token to be marked used")
	}
	if !revokedAll {
		t.Error("expected every refresh token to be revoked")
	}
}

func TestIsAdminReflectsRoleTable(t *testing.T) {
	userRepo := &mockUserRepo{
		hasRoleFn: func(ctx context.Context, userID int64, role string) (bool, error) {
			return userID == 1 && role == models.RoleAdmin, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	resp, err := service.IsAdmin(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsAdmin {
		t.Error("expected user 1 to be admin")
	}

	resp, err = service.IsAdmin(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.IsAdmin {
		t.Error("expected user 2 not to be admin")
	}
}

func TestUpdateUserEmailChangeResetsVerification(t *testing.T) {
	var updatedEmail string
	userRepo := &mockUserRepo{
		getUserByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "old@nccairwing.in", EmailVerified: true}, nil
		},
		updateEmailFn: func(ctx context.Context, userID int64, email string) error {
			updatedEmail = email
			return nil
		},
	}
	emailService := &mockEmailService{}
	service := newAuthService(authServiceMocks{userRepo: userRepo, emailService: emailService})

	newEmail := "new@nccairwing.in"
	resp, err := service.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Email: &newEmail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedEmail != "new@nccairwing.in" {
		t.Errorf("expected email update, got %q", updatedEmail)
	}
	if resp.EmailVerified {
		t.Error("an email change must reset the verified flag")
	}
	if len(emailService.verificationEmails) != 1 {
		t.Errorf("expected a fresh verification mail, got %d", len(emailService.verificationEmails))
	}
}

func TestUpdateUserSameEmailIsNoop(t *testing.T) {
	updateCalled := false
	userRepo := &mockUserRepo{
		getUserByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "cadet@nccairwing.in", EmailVerified: true}, nil
		},
		updateEmailFn: func(ctx context.Context, userID int64, email string) error {
			updateCalled = true
			return nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	sameEmail := "cadet@nccairwing.in"
	resp, err := service.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Email: &sameEmail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateCalled {
		t.Error("submitting the current email must not trigger an update")
	}
	if !resp.EmailVerified {
		t.Error("the verified flag must survive a no-op email change")
	}
}

func TestUpdateUserEmailTaken(t *testing.T) {
	userRepo := &mockUserRepo{
		getUserByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "old@nccairwing.in"}, nil
		},
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	takenEmail := "taken@nccairwing.in"
	_, err := service.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Email: &takenEmail})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdateUserPasswordChange(t *testing.T) {
	var storedHash string
	userRepo := &mockUserRepo{
		updatePasswordFn: func(ctx context.Context, userID int64, hashedPassword string) error {
			storedHash = hashedPassword
			return nil
		},
	}
	service := newAuthService(authServiceMocks{userRepo: userRepo})

	newPassword := "newpassword1"
	_, err := service.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Password: &newPassword})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedHash == "" || storedHash == newPassword {
		t.Error("the password must be stored hashed")
	}
	if !auth.CheckPassword(storedHash, newPassword) {
		t.Error("the stored hash must match the new password")
	}
}
