package group

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/user"
)

func newTestService(t *testing.T) (*Service, *user.Service) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "groups.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	users := user.NewService(user.NewRepository(db))
	return NewService(NewRepository(db), users), users
}

func createUser(t *testing.T, users *user.Service, name string) string {
	t.Helper()
	u, err := users.Create(context.Background(), &user.CreateUserRequest{Username: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u.ID
}

func TestService(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	carol := createUser(t, users, "carol")

	g, err := svc.Create(ctx, alice, &CreateGroupRequest{Name: "  Lisbon trip ", Members: []string{bob, alice, bob}})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon trip", g.Name)
	require.Len(t, g.Members, 2)
	assert.True(t, g.IsAdmin(alice))
	assert.False(t, g.IsAdmin(bob))

	t.Run("GetByID", func(t *testing.T) {
		got, err := svc.GetByID(ctx, g.ID, bob)
		require.NoError(t, err)
		assert.Equal(t, g.Name, got.Name)
		assert.Equal(t, alice, got.CreatedBy)
		assert.Len(t, got.Members, 2)

		_, err = svc.GetByID(ctx, g.ID, carol)
		assert.ErrorIs(t, err, ErrNotMember)

		_, err = svc.GetByID(ctx, "missing", alice)
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("invalid create", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, &CreateGroupRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrInvalidName)

		_, err = svc.Create(ctx, alice, &CreateGroupRequest{Name: "ghosts", Members: []string{"nobody"}})
		assert.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("members", func(t *testing.T) {
		_, err := svc.AddMember(ctx, g.ID, bob, &AddMemberRequest{UserID: carol})
		assert.ErrorIs(t, err, ErrNotAdmin)

		_, err = svc.AddMember(ctx, g.ID, alice, &AddMemberRequest{UserID: carol, Role: "OWNER"})
		assert.ErrorIs(t, err, ErrInvalidRole)

		updated, err := svc.AddMember(ctx, g.ID, alice, &AddMemberRequest{UserID: carol})
		require.NoError(t, err)
		assert.True(t, updated.HasMember(carol))

		_, err = svc.AddMember(ctx, g.ID, alice, &AddMemberRequest{UserID: carol})
		assert.ErrorIs(t, err, ErrAlreadyMember)

		require.NoError(t, svc.CheckMembers(ctx, g.ID, []string{alice, bob, carol}))

		assert.ErrorIs(t, svc.RemoveMember(ctx, g.ID, bob, carol), ErrNotAdmin)
		require.NoError(t, svc.RemoveMember(ctx, g.ID, carol, carol))
		assert.ErrorIs(t, svc.CheckMembers(ctx, g.ID, []string{alice, carol}), ErrNotMember)
		assert.ErrorIs(t, svc.RemoveMember(ctx, g.ID, alice, carol), ErrNotMember)
	})

	t.Run("last admin stays", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveMember(ctx, g.ID, alice, alice), ErrLastAdmin)

		_, err := svc.AddMember(ctx, g.ID, alice, &AddMemberRequest{UserID: carol, Role: MemberRoleAdmin})
		require.NoError(t, err)
		require.NoError(t, svc.RemoveMember(ctx, g.ID, alice, alice))

		got, err := svc.GetByID(ctx, g.ID, carol)
		require.NoError(t, err)
		assert.False(t, got.HasMember(alice))
		assert.Equal(t, 1, got.AdminCount())
	})

	t.Run("CheckMembers unknown group", func(t *testing.T) {
		assert.ErrorIs(t, svc.CheckMembers(ctx, "missing", []string{alice}), ErrGroupNotFound)
	})
}
