package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"skillmatrix_backend/internal/config"
	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"
	"skillmatrix_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService implements the staged onboarding flow: register (or be invited),
// verify the emailed code, set a password, then log in.
type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Config:   cfg,
	}
}

type AuthResponse struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`

	// Onboarding hints for the client. NeedsVerification means the account
	// exists but the email code was never confirmed; NeedsPassword means the
	// email is verified but no password has been set yet.
	NeedsVerification bool `json:"needsVerification,omitempty"`
	NeedsPassword     bool `json:"needsPassword,omitempty"`
}

// Register creates an account and emails a verification code. The very first
// account in the system becomes root; everyone after that starts as a
// developer until an admin changes their role.
func (s *AuthService) Register(email, fullName string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	role := model.RoleDeveloper
	if count == 0 {
		role = model.RoleRoot
	}

	user := &model.User{
		Email:            email,
		FullName:         fullName,
		Role:             role,
		VerificationCode: generateVerificationCode(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	s.sendVerificationCode(user)
	return user, nil
}

// InviteUser is Register driven by an admin: the account is created in the
// given role and the invitee finishes onboarding themselves.
func (s *AuthService) InviteUser(email, fullName string, role model.UserRole) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:            email,
		FullName:         fullName,
		Role:             role,
		VerificationCode: generateVerificationCode(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	s.sendVerificationCode(user)
	return user, nil
}

// VerifyEmail confirms the emailed code and clears it.
func (s *AuthService) VerifyEmail(email, code string) (*model.User, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		return user, nil
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return nil, util.ErrInvalidVerification
	}

	user.EmailVerified = true
	user.VerificationCode = ""
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword completes onboarding: stores bcrypt hashes of the password and
// the security answer plus the question, and returns a signed token. The
// answer is normalized before hashing so recovery ignores case and
// surrounding whitespace.
func (s *AuthService) SetPassword(email, password, securityQuestion, securityAnswer string) (*AuthResponse, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		return nil, util.ErrInvalidVerification
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(normalizeSecurityAnswer(securityAnswer)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	user.SecurityQuestion = securityQuestion
	user.SecurityAnswer = string(answerHash)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates with email and password. Accounts mid-onboarding get
// the corresponding hint flag instead of a token.
func (s *AuthService) Login(email, password string) (*AuthResponse, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, util.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return &AuthResponse{NeedsVerification: true}, nil
	}
	if user.Password == "" {
		return &AuthResponse{NeedsPassword: true}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// SecurityQuestion returns the question registered for password recovery.
func (s *AuthService) SecurityQuestion(email string) (string, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return "", err
	}
	if user.SecurityQuestion == "" {
		return "", util.ErrInvalidSecurityAnswer
	}
	return user.SecurityQuestion, nil
}

// ResetPassword replaces the password after the security answer checks out.
func (s *AuthService) ResetPassword(email, securityAnswer, newPassword string) (*AuthResponse, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.SecurityAnswer == "" {
		return nil, util.ErrInvalidSecurityAnswer
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.SecurityAnswer),
		[]byte(normalizeSecurityAnswer(securityAnswer)),
	); err != nil {
		return nil, util.ErrInvalidSecurityAnswer
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) findByEmail(email string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// sendVerificationCode stands in for the outbound mail integration.
func (s *AuthService) sendVerificationCode(user *model.User) {
	logger.Log.Info("verification code issued",
		zap.String("email", user.Email),
		zap.String("code", user.VerificationCode),
	)
}

func generateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func normalizeSecurityAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
