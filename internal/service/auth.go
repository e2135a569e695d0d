package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type TokenIssuer interface {
	Issue(subjectID uint, role tokens.Role) (string, error)
}

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens TokenIssuer
	Events events.Publisher
}

type LoginResult struct {
	Token string
	Role  tokens.Role
	User  *models.User
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnHash spends one bcrypt comparison so unknown emails cost as much as wrong passwords.
func burnHash(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = hash.HashPassword("storefront-dummy-password")
	})
	_ = hash.CheckPassword(dummyHash, password)
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExist) {
			l.Warn("signup_failed", "status", 409, "reason", "user_exists")
			return nil, ErrConflict
		}
		l.Error("signup_failed", "status", 500, "reason", "db_error", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Events, events.TopicUserEvents, fmt.Sprint(user.ID), events.NewEvent(events.UserRegistered, map[string]any{
		"userID": user.ID,
		"email":  user.Email,
	}))

	l.Info("signup_success", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login_user")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			burnHash(password)
			l.Warn("login_failed", "status", 400, "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 400, "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID, tokens.RoleUser)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUserEvents, fmt.Sprint(user.ID), events.NewEvent(events.UserLoggedIn, map[string]any{
		"userID": user.ID,
	}))

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{Token: token, Role: tokens.RoleUser, User: user}, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login_admin")

	admin, err := s.Repo.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			burnHash(password)
			l.Warn("admin_login_failed", "status", 400, "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("admin_login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		l.Warn("admin_login_failed", "status", 400, "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(admin.ID, tokens.RoleAdmin)
	if err != nil {
		l.Error("admin_login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUserEvents, fmt.Sprint(admin.ID), events.NewEvent(events.AdminLoggedIn, map[string]any{
		"adminID": admin.ID,
	}))

	l.Info("admin_login_successful", "admin_id", admin.ID)
	return &LoginResult{Token: token, Role: tokens.RoleAdmin}, nil
}

// ProvisionAdmin is the out-of-band path for creating admin accounts.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin := &models.Admin{Email: email, PasswordHash: pwHash}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, repo.ErrAlreadyExist) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}
