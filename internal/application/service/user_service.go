package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// UserService handles staff account administration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers lists staff accounts with pagination and search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	return s.userRepo.List(ctx, params, search)
}

// GetUser retrieves a staff account by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateRole changes a staff account's access level
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role enum.UserRole) (*entity.User, error) {
	switch role {
	case enum.UserRoleAdmin, enum.UserRoleDoctor, enum.UserRoleReception:
	default:
		return nil, apperror.NewBadRequestError("Unknown role")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LinkPractitioner associates a staff account with its practitioner record
func (s *UserService) LinkPractitioner(ctx context.Context, id uuid.UUID, practitionerID *uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	user.PractitionerID = practitionerID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a staff account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}
