package service

import (
	"context"
	"errors"

	"expense-ledger/internal/models"
	"expense-ledger/internal/repository"
	"expense-ledger/internal/util"
)

// UserService handles registration, login and profile maintenance.
type UserService struct {
	repo   repository.Repository
	creds  *util.CredentialStore
	tokens *util.TokenService
}

func NewUserService(repo repository.Repository, creds *util.CredentialStore, tokens *util.TokenService) *UserService {
	return &UserService{repo: repo, creds: creds, tokens: tokens}
}

// Register stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, in util.RegisterInput) (*models.User, error) {
	if err := util.ValidatePassword(in.Password); err != nil {
		return nil, Validation("Password must be at least 8 characters")
	}

	if _, err := s.repo.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, Validation("Email already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Internal(err)
	}

	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, Internal(err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Validation("Email already in use")
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Login checks credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", Unauthorized("Invalid email")
		}
		return "", Internal(err)
	}

	if !s.creds.Verify(password, user.PasswordHash) {
		return "", Unauthorized("Invalid password")
	}

	token, err := s.tokens.Issue(util.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", Internal(err)
	}
	return token, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Exists reports whether a user with id is still stored.
func (s *UserService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetUser(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	}
	return false, Internal(err)
}

// Update overwrites name and email.
func (s *UserService) Update(ctx context.Context, id string, in util.UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("User Not Found")
		}
		return nil, Internal(err)
	}

	if in.Email != user.Email {
		if other, err := s.repo.GetUserByEmail(ctx, in.Email); err == nil && other.ID != user.ID {
			return nil, Validation("Email already in use")
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, Internal(err)
		}
	}

	user.Name = in.Name
	user.Email = in.Email
	if err := s.repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Validation("Email already in use")
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Delete removes the user together with the user's expenses.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("User not found")
		}
		return Internal(err)
	}
	return nil
}
