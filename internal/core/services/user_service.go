package services

import (
	"context"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"
)

// UserService handles user lookups
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Current returns the authenticated user with a fresh balance
func (s *UserService) Current(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}
