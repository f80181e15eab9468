package group

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"splitmate/pkg/apperr"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group with the creator as admin
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateGroupRequest) (*Group, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	g := &Group{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, apperr.Collaborator(err, "failed to create group")
	}
	return g, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id uuid.UUID) (*Group, []*GroupMember, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, apperr.Collaborator(err, "failed to get group")
	}
	if g == nil {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, apperr.Collaborator(err, "failed to get members")
	}
	return g, members, nil
}

// ListByUserID retrieves all groups for a user
func (s *Service) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*Group, error) {
	groups, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to list groups")
	}
	return groups, nil
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID uuid.UUID, req *AddMemberRequest) (*GroupMember, error) {
	if req.UserID == uuid.Nil {
		return nil, apperr.Validation("user_id is required")
	}

	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to get group")
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to check membership")
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	role := req.Role
	if role == "" {
		role = MemberRoleMember
	}

	member, err := s.repo.AddMember(ctx, groupID, req.UserID, role)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to add member")
	}
	return member, nil
}

// RemoveMember removes a user from a group
func (s *Service) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	if err := s.repo.RemoveMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return apperr.Collaborator(err, "failed to remove member")
	}
	return nil
}

// Delete removes a group
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGroupNotFound
		}
		return apperr.Collaborator(err, "failed to delete group")
	}
	return nil
}
