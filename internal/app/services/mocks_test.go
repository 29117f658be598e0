package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
)

// Function-field mocks. Unset fields fall back to empty results so each test
// only wires the calls it cares about.

type mockUserRepo struct {
	createUserFn      func(ctx context.Context, user *models.User) (int64, error)
	getUserByIDFn     func(ctx context.Context, id int64) (*models.User, error)
	getUserByEmailFn  func(ctx context.Context, email string) (*models.User, error)
	emailExistsFn     func(ctx context.Context, email string) (bool, error)
	updateLastLoginFn func(ctx context.Context, userID int64) error
	setVerifiedFn     func(ctx context.Context, userID int64) error
	updateEmailFn     func(ctx context.Context, userID int64, email string) error
	updatePasswordFn  func(ctx context.Context, userID int64, hashedPassword string) error
	hasRoleFn         func(ctx context.Context, userID int64, role string) (bool, error)
	grantRoleFn       func(ctx context.Context, userID int64, role string) error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return 1, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(ctx, email)
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepo) SetEmailVerified(ctx context.Context, userID int64) error {
	if m.setVerifiedFn != nil {
		return m.setVerifiedFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepo) UpdateEmail(ctx context.Context, userID int64, email string) error {
	if m.updateEmailFn != nil {
		return m.updateEmailFn(ctx, userID, email)
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, hashedPassword)
	}
	return nil
}

func (m *mockUserRepo) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	if m.hasRoleFn != nil {
		return m.hasRoleFn(ctx, userID, role)
	}
	return false, nil
}

func (m *mockUserRepo) GrantRole(ctx context.Context, userID int64, role string) error {
	if m.grantRoleFn != nil {
		return m.grantRoleFn(ctx, userID, role)
	}
	return nil
}

type mockTokenRepo struct {
	createTokenFn     func(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	getTokenUserFn    func(ctx context.Context, token string) (int64, error)
	revokeTokenFn     func(ctx context.Context, token string) error
	revokeAllTokensFn func(ctx context.Context, userID int64) error
}

func (m *mockTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, token, userID, expiryDate)
	}
	return nil
}

func (m *mockTokenRepo) GetTokenUser(ctx context.Context, token string) (int64, error) {
	if m.getTokenUserFn != nil {
		return m.getTokenUserFn(ctx, token)
	}
	return 1, nil
}

func (m *mockTokenRepo) RevokeToken(ctx context.Context, token string) error {
	if m.revokeTokenFn != nil {
		return m.revokeTokenFn(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	if m.revokeAllTokensFn != nil {
		return m.revokeAllTokensFn(ctx, userID)
	}
	return nil
}

func (m *mockTokenRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockVerificationTokenRepo struct {
	createTokenFn    func(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	getTokenInfoFn   func(ctx context.Context, token string) (int64, time.Time, error)
	deleteTokenFn    func(ctx context.Context, token string) error
	deleteByUserIDFn func(ctx context.Context, userID int64) error
}

func (m *mockVerificationTokenRepo) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, userID, token, expiryDate)
	}
	return nil
}

func (m *mockVerificationTokenRepo) GetTokenInfo(ctx context.Context, token string) (int64, time.Time, error) {
	if m.getTokenInfoFn != nil {
		return m.getTokenInfoFn(ctx, token)
	}
	return 1, time.Now().Add(time.Hour), nil
}

func (m *mockVerificationTokenRepo) DeleteToken(ctx context.Context, token string) error {
	if m.deleteTokenFn != nil {
		return m.deleteTokenFn(ctx, token)
	}
	return nil
}

func (m *mockVerificationTokenRepo) DeleteTokensByUserID(ctx context.Context, userID int64) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

type mockPasswordResetTokenRepo struct {
	createTokenFn    func(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	getTokenInfoFn   func(ctx context.Context, token string) (int64, time.Time, bool, error)
	markTokenUsedFn  func(ctx context.Context, token string) error
	deleteByUserIDFn func(ctx context.Context, userID int64) error
}

func (m *mockPasswordResetTokenRepo) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, userID, token, expiryDate)
	}
	return nil
}

func (m *mockPasswordResetTokenRepo) GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error) {
	if m.getTokenInfoFn != nil {
		return m.getTokenInfoFn(ctx, token)
	}
	return 1, time.Now().Add(time.Hour), false, nil
}

func (m *mockPasswordResetTokenRepo) MarkTokenUsed(ctx context.Context, token string) error {
	if m.markTokenUsedFn != nil {
		return m.markTokenUsedFn(ctx, token)
	}
	return nil
}

func (m *mockPasswordResetTokenRepo) DeleteTokensByUserID(ctx context.Context, userID int64) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

type mockStudentRepo struct {
	createFn      func(ctx context.Context, student *models.Student) (int64, error)
	updateFn      func(ctx context.Context, student *models.Student) error
	getByUserIDFn func(ctx context.Context, userID int64) (*models.Student, error)
	getByIDFn     func(ctx context.Context, studentID int64) (*models.Student, error)
	getAllFn      func(ctx context.Context) ([]models.Student, error)
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, student)
	}
	return 1, nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, student)
	}
	return nil
}

func (m *mockStudentRepo) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return &models.Student{StudentID: 1, UserID: userID}, nil
}

func (m *mockStudentRepo) GetByID(ctx context.Context, studentID int64) (*models.Student, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, studentID)
	}
	return &models.Student{StudentID: studentID}, nil
}

func (m *mockStudentRepo) GetAll(ctx context.Context) ([]models.Student, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return []models.Student{}, nil
}

type mockNccRepo struct {
	listByStudentFn      func(ctx context.Context, studentID int64) ([]models.NccDetail, error)
	createFn             func(ctx context.Context, detail *models.NccDetail) (int64, error)
	updateFn             func(ctx context.Context, detail *models.NccDetail) error
	deleteFn             func(ctx context.Context, studentID, nccID int64) error
	listAllWithStudentFn func(ctx context.Context) ([]models.NccDetailWithStudent, error)
}

func (m *mockNccRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.NccDetail, error) {
	if m.listByStudentFn != nil {
		return m.listByStudentFn(ctx, studentID)
	}
	return []models.NccDetail{}, nil
}

func (m *mockNccRepo) Create(ctx context.Context, detail *models.NccDetail) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, detail)
	}
	return 1, nil
}

func (m *mockNccRepo) Update(ctx context.Context, detail *models.NccDetail) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, detail)
	}
	return nil
}

func (m *mockNccRepo) Delete(ctx context.Context, studentID, nccID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, studentID, nccID)
	}
	return nil
}

func (m *mockNccRepo) ListAllWithStudent(ctx context.Context) ([]models.NccDetailWithStudent, error) {
	if m.listAllWithStudentFn != nil {
		return m.listAllWithStudentFn(ctx)
	}
	return []models.NccDetailWithStudent{}, nil
}

type mockExperienceRepo struct {
	listByStudentFn      func(ctx context.Context, studentID int64) ([]models.Experience, error)
	createFn             func(ctx context.Context, exp *models.Experience) (int64, error)
	updateFn             func(ctx context.Context, exp *models.Experience) error
	deleteFn             func(ctx context.Context, studentID, experienceID int64) error
	listAllWithStudentFn func(ctx context.Context) ([]models.ExperienceWithStudent, error)
}

func (m *mockExperienceRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Experience, error) {
	if m.listByStudentFn != nil {
		return m.listByStudentFn(ctx, studentID)
	}
	return []models.Experience{}, nil
}

func (m *mockExperienceRepo) Create(ctx context.Context, exp *models.Experience) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, exp)
	}
	return 1, nil
}

func (m *mockExperienceRepo) Update(ctx context.Context, exp *models.Experience) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, exp)
	}
	return nil
}

func (m *mockExperienceRepo) Delete(ctx context.Context, studentID, experienceID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, studentID, experienceID)
	}
	return nil
}

func (m *mockExperienceRepo) ListAllWithStudent(ctx context.Context) ([]models.ExperienceWithStudent, error) {
	if m.listAllWithStudentFn != nil {
		return m.listAllWithStudentFn(ctx)
	}
	return []models.ExperienceWithStudent{}, nil
}

type mockContentRepo struct {
	listAchievementsFn  func(ctx context.Context) ([]models.Achievement, error)
	listAnnouncementsFn func(ctx context.Context) ([]models.Announcement, error)
	listGalleryFn       func(ctx context.Context) ([]models.GalleryItem, error)
}

func (m *mockContentRepo) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	if m.listAchievementsFn != nil {
		return m.listAchievementsFn(ctx)
	}
	return []models.Achievement{}, nil
}

func (m *mockContentRepo) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	if m.listAnnouncementsFn != nil {
		return m.listAnnouncementsFn(ctx)
	}
	return []models.Announcement{}, nil
}

func (m *mockContentRepo) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	if m.listGalleryFn != nil {
		return m.listGalleryFn(ctx)
	}
	return []models.GalleryItem{}, nil
}

type mockAdminRepo struct {
	insertFn func(ctx context.Context, table, idColumn string, fields map[string]interface{}) (int64, error)
	updateFn func(ctx context.Context, table, idColumn string, id int64, fields map[string]interface{}) error
	deleteFn func(ctx context.Context, table, idColumn string, id int64) error
}

func (m *mockAdminRepo) Insert(ctx context.Context, table, idColumn string, fields map[string]interface{}) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, table, idColumn, fields)
	}
	return 1, nil
}

func (m *mockAdminRepo) Update(ctx context.Context, table, idColumn string, id int64, fields map[string]interface{}) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, table, idColumn, id, fields)
	}
	return nil
}

func (m *mockAdminRepo) Delete(ctx context.Context, table, idColumn string, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, table, idColumn, id)
	}
	return nil
}

type mockEmailService struct {
	verificationEmails []string
	resetEmails        []string
	sendErr            error
}

func (m *mockEmailService) SendVerificationEmail(toEmail, token string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.verificationEmails = append(m.verificationEmails, toEmail)
	return nil
}

func (m *mockEmailService) SendPasswordResetEmail(toEmail, token string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.resetEmails = append(m.resetEmails, toEmail)
	return nil
}

type mockFileStorage struct {
	savedBuckets []string
	saveErr      error
}

func (m *mockFileStorage) SaveToBucket(fileHeader *multipart.FileHeader, bucket string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.savedBuckets = append(m.savedBuckets, bucket)
	return "http://localhost:8080/uploads/" + bucket + "/file.png", nil
}

func (m *mockFileStorage) DeleteFile(filePath string) error {
	return nil
}
