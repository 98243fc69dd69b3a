package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotMember     = errors.New("user is not a member of this group")
	ErrNotAdmin      = errors.New("only a group admin can do this")
	ErrAlreadyMember = errors.New("user is already a member of this group")
	ErrLastAdmin     = errors.New("a group must keep at least one admin")
	ErrUnknownUser   = errors.New("user not found")
	ErrInvalidName   = errors.New("group name must be between 1 and 100 characters")
	ErrInvalidRole   = errors.New("role must be ADMIN or MEMBER")
)

// UserDirectory reports which user ids exist
type UserDirectory interface {
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
}

// Service handles group business logic
type Service struct {
	repo  *Repository
	users UserDirectory
	now   func() time.Time
}

// NewService creates a new group service
func NewService(repo *Repository, users UserDirectory) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create creates a group. The creator becomes its admin and every listed
// user joins as a member.
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := []string{creatorID}
	seen := map[string]bool{creatorID: true}
	for _, id := range req.Members {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if err := s.requireUsers(ctx, ids); err != nil {
		return nil, err
	}

	now := s.now()
	g := &Group{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedBy: creatorID,
		CreatedAt: now,
	}
	for i, id := range ids {
		role := MemberRoleMember
		if i == 0 {
			role = MemberRoleAdmin
		}
		g.Members = append(g.Members, Member{UserID: id, Role: role, JoinedAt: now})
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	slog.Info("Group created", "group_id", g.ID, "created_by", creatorID, "members", len(g.Members))
	return g, nil
}

// GetByID retrieves a group the acting user belongs to
func (s *Service) GetByID(ctx context.Context, id, actorID string) (*Group, error) {
	g, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return g, nil
}

// AddMember adds a user to a group. Only admins can add members.
func (s *Service) AddMember(ctx context.Context, groupID, actorID string, req *AddMemberRequest) (*Group, error) {
	g, err := s.get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsAdmin(actorID) {
		return nil, ErrNotAdmin
	}

	role := req.Role
	switch role {
	case "":
		role = MemberRoleMember
	case MemberRoleAdmin, MemberRoleMember:
	default:
		return nil, ErrInvalidRole
	}
	if g.HasMember(req.UserID) {
		return nil, ErrAlreadyMember
	}
	if err := s.requireUsers(ctx, []string{req.UserID}); err != nil {
		return nil, err
	}

	m := Member{UserID: req.UserID, Role: role, JoinedAt: s.now()}
	if err := s.repo.AddMember(ctx, groupID, m); err != nil {
		return nil, err
	}
	g.Members = append(g.Members, m)
	return g, nil
}

// RemoveMember removes a user from a group. Admins can remove anyone and
// members can remove themselves.
func (s *Service) RemoveMember(ctx context.Context, groupID, actorID, userID string) error {
	g, err := s.get(ctx, groupID)
	if err != nil {
		return err
	}
	if actorID != userID && !g.IsAdmin(actorID) {
		return ErrNotAdmin
	}
	if !g.HasMember(userID) {
		return ErrNotMember
	}
	if g.IsAdmin(userID) && g.AdminCount() == 1 {
		return ErrLastAdmin
	}
	return s.repo.RemoveMember(ctx, groupID, userID)
}

// CheckMembers returns ErrGroupNotFound for an unknown group and
// ErrNotMember when any of userIDs is outside it.
func (s *Service) CheckMembers(ctx context.Context, groupID string, userIDs []string) error {
	g, err := s.get(ctx, groupID)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if !g.HasMember(id) {
			return fmt.Errorf("%w: %s", ErrNotMember, id)
		}
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *Service) requireUsers(ctx context.Context, ids []string) error {
	names, err := s.users.Usernames(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownUser, id)
		}
	}
	return nil
}
