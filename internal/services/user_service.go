package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crm-backend/internal/auth"
	"crm-backend/internal/constants"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
)

var (
	ErrNoAdminContext = errors.New("no organization admin context")
	ErrUserNotInOrg   = errors.New("user not found in organization")
)

// UserService provides admin-gated user management. Every operation takes
// the resolved request context so tenant scoping is explicit: platform
// admins (staff, superuser) are unscoped, org admins see only their own
// org's profiles.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func platformAdmin(rctx *auth.RequestContext) bool {
	return rctx != nil && rctx.User != nil && (rctx.User.IsSuperuser || rctx.User.IsStaff)
}

// ListUsers returns the profiles visible to the caller.
func (s *UserService) ListUsers(rctx *auth.RequestContext) ([]models.Profile, error) {
	if platformAdmin(rctx) {
		profiles, err := s.profileRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("failed to list profiles: %w", err)
		}
		return profiles, nil
	}

	if rctx == nil || rctx.Profile == nil || !rctx.Profile.IsOrganizationAdmin {
		return nil, ErrNoAdminContext
	}

	profiles, err := s.profileRepo.ListByOrg(rctx.Profile.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// CreateUserInput represents an admin-created account.
type CreateUserInput struct {
	Email               string
	Password            string
	Role                string
	IsOrganizationAdmin bool
}

// CreateUser creates a user on behalf of an admin. Org admins get the new
// user attached to their own org atomically; platform admins create bare
// accounts with no membership.
func (s *UserService) CreateUser(rctx *auth.RequestContext, input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}

	if platformAdmin(rctx) {
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	if rctx == nil || rctx.Profile == nil || !rctx.Profile.IsOrganizationAdmin {
		return nil, ErrNoAdminContext
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	profile := &models.Profile{
		OrgID:               rctx.Profile.OrgID,
		Role:                role,
		IsOrganizationAdmin: input.IsOrganizationAdmin,
		IsActive:            true,
	}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateProfile):
			return nil, ErrFailedToCreateProfile
		default:
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return user, nil
}

// findTargetInScope resolves a target user visible to the caller.
func (s *UserService) findTargetInScope(rctx *auth.RequestContext, targetUserID uint64) (*models.User, error) {
	if platformAdmin(rctx) {
		user, err := s.userRepo.FindByID(targetUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		return user, nil
	}

	if rctx == nil || rctx.Profile == nil || !rctx.Profile.IsOrganizationAdmin {
		return nil, ErrNoAdminContext
	}

	// Org admins can only reach users that have a profile in their org.
	if _, err := s.profileRepo.FindByUserAndOrg(targetUserID, rctx.Profile.OrgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotInOrg
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	user, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUser returns a target user in the caller's scope.
func (s *UserService) GetUser(rctx *auth.RequestContext, targetUserID uint64) (*models.User, error) {
	return s.findTargetInScope(rctx, targetUserID)
}

// UpdateUserInput represents admin-mutable account fields; nil pointers are
// ignored. Role and the org-admin flag live on the target's profile: org
// admins always mutate the membership in their own org, platform admins
// select the membership through OrgID.
type UpdateUserInput struct {
	Role                *string
	IsOrganizationAdmin *bool
	IsActive            *bool
	OrgID               *uint64
}

// UpdateUser mutates a target user in the caller's scope. Deactivation
// applies to the account; role changes apply to a single membership.
func (s *UserService) UpdateUser(rctx *auth.RequestContext, targetUserID uint64, input UpdateUserInput) (*models.User, error) {
	target, err := s.findTargetInScope(rctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		target.IsActive = *input.IsActive
		if err := s.userRepo.Update(target); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if input.Role != nil || input.IsOrganizationAdmin != nil {
		var orgID uint64
		switch {
		case platformAdmin(rctx) && input.OrgID != nil:
			orgID = *input.OrgID
		case rctx != nil && rctx.Profile != nil:
			orgID = rctx.Profile.OrgID
		default:
			return nil, ErrNoAdminContext
		}

		profile, err := s.profileRepo.FindByUserAndOrg(targetUserID, orgID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotInOrg
			}
			return nil, fmt.Errorf("failed to find profile: %w", err)
		}

		if input.Role != nil {
			profile.Role = *input.Role
		}
		if input.IsOrganizationAdmin != nil {
			profile.IsOrganizationAdmin = *input.IsOrganizationAdmin
		}

		if err := s.profileRepo.Update(profile); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return target, nil
}

// ResetPassword sets a new password for a target user. Callers acting on
// themselves (and staff) bypass the org-admin requirement; everyone else
// needs an admin profile and an org-scoped target.
func (s *UserService) ResetPassword(rctx *auth.RequestContext, targetUserID uint64, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	var target *models.User
	var err error
	if auth.IsSelfOrOrgAdmin(rctx, targetUserID) {
		target, err = s.userRepo.FindByID(targetUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
	} else {
		target, err = s.findTargetInScope(rctx, targetUserID)
		if err != nil {
			return err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	target.PasswordHash = string(hashed)
	if err := s.userRepo.Update(target); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// DeleteUser removes a user in the caller's scope.
func (s *UserService) DeleteUser(rctx *auth.RequestContext, targetUserID uint64) error {
	target, err := s.findTargetInScope(rctx, targetUserID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(target.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
