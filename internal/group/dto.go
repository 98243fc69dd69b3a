package group

import (
	"strings"
	"time"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name    string   `json:"name" example:"Lisbon trip"`
	Members []string `json:"members,omitempty"`
}

// Validate trims the name and checks its length
func (r *CreateGroupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) < 1 || len(r.Name) > 100 {
		return ErrInvalidName
	}
	return nil
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	UserID string     `json:"user_id"`
	Role   MemberRole `json:"role,omitempty" enums:"ADMIN,MEMBER"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedBy string            `json:"created_by"`
	CreatedAt string            `json:"created_at"`
	Members   []*MemberResponse `json:"members"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	UserID   string     `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt string     `json:"joined_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	members := make([]*MemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = m.ToResponse()
	}
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		Members:   members,
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
}
