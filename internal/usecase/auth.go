package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/refinly/loan-referral/internal/entity"
	"go.uber.org/zap"
)

const TokenTypeBearer = "Bearer"

type RegisterUseCase struct {
	Repo   entity.UserRepositoryInterface
	Hasher PasswordHasher
	Logger *zap.Logger
}

func NewRegisterUseCase(repo entity.UserRepositoryInterface, hasher PasswordHasher, logger *zap.Logger) *RegisterUseCase {
	return &RegisterUseCase{Repo: repo, Hasher: hasher, Logger: logger}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*entity.User, error) {
	fields := ValidateRegisterInput(input)
	role, ok := entity.ParseRole(input.Role)
	switch {
	case !ok:
		fields = append(fields, ValidationError{"role", "is invalid"})
	case !role.SelfAssignable():
		fields = append(fields, ValidationError{"role", "cannot be self-assigned"})
	}
	if len(fields) > 0 {
		return nil, &ValidationErrors{Message: "Invalid registration data.", Fields: fields}
	}

	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeHashing, Message: "failed to hash password", Err: err}
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
	}
	if err := uc.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeEmailExists, Message: "Email already registered."}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create user", Err: err}
	}

	uc.Logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

type LoginUseCase struct {
	Repo   entity.UserRepositoryInterface
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *zap.Logger
}

func NewLoginUseCase(repo entity.UserRepositoryInterface, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Hasher: hasher, Tokens: tokens, Logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	invalid := &DomainError{Code: CodeInvalidCredentials, Message: "Invalid email or password."}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, invalid
	}

	user, err := uc.Repo.FindByEmail(ctx, email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load user", Err: err}
	}

	if !uc.Hasher.Check(user.PasswordHash, input.Password) {
		return nil, invalid
	}

	token, err := uc.Tokens.CreateAccessToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, &TechnicalError{Code: CodeToken, Message: "failed to sign token", Err: err}
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(uc.Tokens.TTL().Seconds()),
		User:        user,
	}, nil
}
