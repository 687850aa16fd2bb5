package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-api/internal/domain/user"
	apperrors "user-api/pkg/errors"
	"user-api/pkg/security"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (plain database, cached decorator) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)                       // Insert a new user and return the stored record
	GetByID(ctx context.Context, id int64) (*domain.User, error)                            // Retrieve a live user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error)                     // Retrieve a live user by email; nil when absent
	Update(ctx context.Context, u *domain.User) (*domain.User, error)                       // Update an existing user and return the stored record
	Delete(ctx context.Context, id int64) error                                             // Soft-delete a user by ID
	List(ctx context.Context, keyword string, offset, limit int64) ([]domain.User, int64, error) // List live users with total count
}

// Service implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: newValidator()}
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness. Validation failures short-circuit before any persistence.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	in.Normalize()

	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("create user validation failed", zap.Error(err))
		return nil, translateValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewAlreadyExistsError("email", "email already exists")
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Image:    in.Image,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return toDTO(created), nil
}

// UpdateUser updates an existing user. Absent fields keep their stored
// values; present fields are validated with the same rules as create.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	in.Normalize()

	s.log.Info("updating user", zap.Int64("id", in.ID))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("update user validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, translateValidationError(err)
	}

	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, in.Email)
		if err != nil {
			s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
			return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
		}
		if other != nil && other.ID != in.ID {
			s.log.Warn("email already used by another user", zap.String("email", in.Email), zap.Int64("existing_id", other.ID))
			return nil, apperrors.NewAlreadyExistsError("email", "email already used by another user")
		}
	}

	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Email != "" {
		existing.Email = in.Email
	}
	if in.Password != "" {
		existing.Password = in.Password
	}
	if in.Image != "" {
		existing.Image = in.Image
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return toDTO(updated), nil
}

// DeleteUser soft-deletes a user after confirming it exists.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	s.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		err := apperrors.NewValidationError(nil)
		err.Add("id", "id must be a positive integer")
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, in.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, in.ID); err != nil {
		s.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &DeleteUserResponse{ID: in.ID}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID <= 0 {
		err := apperrors.NewValidationError(nil)
		err.Add("id", "id must be a positive integer")
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	return toDTO(u), nil
}

// ListUsers retrieves a paginated list of users with optional keyword search.
// The request is expected to come from ParseListQuery, so page and limit are
// already normalized; the keyword is screened before it reaches the database.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	keyword, err := security.ValidateSearchKeyword(in.Keyword)
	if err != nil {
		s.log.Warn("invalid search keyword", zap.String("keyword", in.Keyword), zap.Error(err))
		verr := apperrors.NewValidationError(nil)
		verr.Add("keyword", err.Error())
		return nil, verr
	}

	s.log.Info("listing users", zap.String("keyword", keyword), zap.Int64("page", in.Page), zap.Int64("limit", in.Limit))

	domainUsers, total, err := s.repo.List(ctx, keyword, in.Offset(), in.Limit)
	if err != nil {
		s.log.Error("failed to list users", zap.String("keyword", keyword), zap.Int64("page", in.Page), zap.Int64("limit", in.Limit), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *toDTO(&domainUsers[i])
	}

	p := domain.NewPagination(total, in.Page, in.Limit)

	return &ListUsersResponse{
		Users: users,
		Pagination: &Pagination{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}, nil
}

// toDTO maps a domain user onto the API-facing DTO, dropping the password.
func toDTO(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
