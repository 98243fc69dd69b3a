package group

import "time"

// MemberRole represents the role of a group member
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// Group is a named set of users whose shared expenses are netted together
type Group struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	Members   []Member
}

// Member represents a user's membership in a group
type Member struct {
	UserID   string
	Role     MemberRole
	JoinedAt time.Time
}

// HasMember reports whether userID belongs to the group
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether userID administers the group
func (g *Group) IsAdmin(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m.Role == MemberRoleAdmin
		}
	}
	return false
}

// AdminCount returns how many members administer the group
func (g *Group) AdminCount() int {
	n := 0
	for _, m := range g.Members {
		if m.Role == MemberRoleAdmin {
			n++
		}
	}
	return n
}
