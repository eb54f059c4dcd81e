package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sahilphalke/PlayTurf/internal/model"
)

// AccountStore is the durable record storage the service orchestrates.
// Implementations must enforce email uniqueness on Create so that two
// concurrent registrations with the same email cannot both succeed.
type AccountStore interface {
	Create(ctx context.Context, u model.User) error
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
}

type UserService struct {
	store  AccountStore
	hasher *PasswordHasher
	tokens *TokenIssuer
}

func NewUserService(store AccountStore, hasher *PasswordHasher, tokens *TokenIssuer) *UserService {
	return &UserService{store: store, hasher: hasher, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (model.Profile, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	contactNo := strings.TrimSpace(req.ContactNo)
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	timezone := strings.TrimSpace(req.Timezone)

	// Fail fast before touching the store.
	if name == "" || email == "" || req.Password == "" || contactNo == "" {
		return model.Profile{}, model.ErrInvalidInput
	}
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return model.Profile{}, model.ErrInvalidInput
	}
	if timezone == "" {
		timezone = model.DefaultTimezone
	}

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return model.Profile{}, model.ErrUserAlreadyExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return model.Profile{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.Profile{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ContactNo:    contactNo,
		Timezone:     timezone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's uniqueness constraint catches registrations that raced
	// past the lookup above.
	if err := s.store.Create(ctx, user); err != nil {
		return model.Profile{}, err
	}

	return user.Profile(), nil
}

func (s *UserService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	user, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrUserNotFound) {
		// Unknown email and wrong password collapse to the same error.
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, err
	}
	if !ok {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	// Checked only after the credentials verified, so a deactivated user
	// with the right password gets a clear message.
	if !user.IsActive {
		return model.TokenPair{}, model.ErrUserInactive
	}

	return s.issueTokenPair(user)
}

// Refresh exchanges a valid refresh token for a new token pair. Tokens
// are not persisted server-side, so the old refresh token stays valid
// until its TTL elapses.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.store.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, model.ErrTokenInvalid
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if !user.IsActive {
		return model.TokenPair{}, model.ErrUserInactive
	}

	return s.issueTokenPair(user)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (model.Profile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.Profile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if contactNo := strings.TrimSpace(req.ContactNo); contactNo != "" {
		user.ContactNo = contactNo
	}
	if timezone := strings.TrimSpace(req.Timezone); timezone != "" {
		user.Timezone = timezone
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, user); err != nil {
		return model.Profile{}, err
	}

	return user.Profile(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.Profile, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}
	return profiles, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}

func (s *UserService) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	return s.tokens.VerifyAccessToken(tokenString)
}

func (s *UserService) issueTokenPair(user model.User) (model.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         user.Profile(),
	}, nil
}

// normalizeEmail case-folds and trims before any lookup or write so case
// variants of one address cannot become distinct accounts.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
