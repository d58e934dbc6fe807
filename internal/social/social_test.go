package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonasLimhi/Edmund-Website/internal/identity"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/store"
)

func newTestLinker() (*Linker, *identity.Manager) {
	m := identity.NewManager(store.NewMemory())
	return NewLinker(m), m
}

func TestNextUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		base     string
		want     string
	}{
		{name: "free base", existing: nil, base: "jane", want: "jane"},
		{name: "base taken", existing: []string{"jane"}, base: "jane", want: "jane1"},
		{name: "base and first suffix taken", existing: []string{"jane", "jane1"}, base: "jane", want: "jane2"},
		{name: "gap is reused", existing: []string{"jane", "jane2"}, base: "jane", want: "jane1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			existing := make(map[string]bool, len(tt.existing))
			for _, u := range tt.existing {
				existing[u] = true
			}
			assert.Equal(t, tt.want, NextUsername(existing, tt.base))
		})
	}
}

func TestLoginOrProvision_CreatesCustomerAndSession(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	session, err := linker.LoginOrProvision(context.Background(), "Jane@Example.com", "Jane Doe")
	require.NoError(t, err)

	assert.Equal(t, "janedoe", session.Username)
	assert.Equal(t, models.RoleCustomer, session.Role)

	users := ident.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "janedoe", users[0].Username)
	assert.Equal(t, "jane@example.com", users[0].FBID)
	assert.Equal(t, models.RoleCustomer, users[0].Role)
	assert.NotEmpty(t, users[0].PasswordHash)

	stored, ok := ident.Session()
	require.True(t, ok)
	assert.Equal(t, session, stored)
}

func TestLoginOrProvision_ExistingLink_NoDuplicate(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	first, err := linker.LoginOrProvision(context.Background(), "Jane@Example.com", "Jane Doe")
	require.NoError(t, err)

	again, err := linker.LoginOrProvision(context.Background(), "jane@EXAMPLE.com", "Whoever")
	require.NoError(t, err)

	assert.Equal(t, first.Username, again.Username)
	assert.Len(t, ident.Users(), 1)
}

func TestLoginOrProvision_DisambiguatesUsernames(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	require.NoError(t, ident.SaveUsers([]models.User{
		{Username: "jane", Role: models.RoleCustomer},
		{Username: "jane1", Role: models.RoleCustomer},
	}))

	session, err := linker.LoginOrProvision(context.Background(), "jane@elsewhere.com", "Jane")
	require.NoError(t, err)
	assert.Equal(t, "jane2", session.Username)
}

func TestLoginOrProvision_BaseFallsBackToEmailThenToken(t *testing.T) {
	t.Parallel()

	linker, _ := newTestLinker()
	session, err := linker.LoginOrProvision(context.Background(), "Sam.Smith@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "samsmith", session.Username)

	linker2, _ := newTestLinker()
	session, err = linker2.LoginOrProvision(context.Background(), "@example.com", "---")
	require.NoError(t, err)
	assert.Equal(t, "fbuser", session.Username)
}

func TestLoginOrProvision_EmptyEmail(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	_, err := linker.LoginOrProvision(context.Background(), "   ", "Jane")
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Empty(t, ident.Users())
}

func TestLinkToCurrentUser_RequiresSession(t *testing.T) {
	t.Parallel()

	linker, _ := newTestLinker()
	err := linker.LinkToCurrentUser(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLinkToCurrentUser_Success(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	_, err := ident.Register(context.Background(), "edmund", "secret", "")
	require.NoError(t, err)
	_, err = ident.Login(context.Background(), "edmund", "secret")
	require.NoError(t, err)

	require.NoError(t, linker.LinkToCurrentUser(context.Background(), "Edmund@Example.com"))

	user, ok := ident.FindUser("edmund")
	require.True(t, ok)
	assert.Equal(t, "edmund@example.com", user.FBID)
}

func TestLinkToCurrentUser_ClaimedByOtherAccount_StoreUnchanged(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	_, err := linker.LoginOrProvision(context.Background(), "jane@example.com", "Jane Doe")
	require.NoError(t, err)

	_, err = ident.Register(context.Background(), "edmund", "secret", "")
	require.NoError(t, err)
	_, err = ident.Login(context.Background(), "edmund", "secret")
	require.NoError(t, err)

	before := ident.Users()
	err = linker.LinkToCurrentUser(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, ErrAlreadyLinked)
	assert.Equal(t, before, ident.Users())
}

func TestLinkToCurrentUser_RelinkToSelf_IsConflict(t *testing.T) {
	t.Parallel()

	linker, ident := newTestLinker()
	_, err := ident.Register(context.Background(), "edmund", "secret", "")
	require.NoError(t, err)
	_, err = ident.Login(context.Background(), "edmund", "secret")
	require.NoError(t, err)

	require.NoError(t, linker.LinkToCurrentUser(context.Background(), "edmund@example.com"))

	err = linker.LinkToCurrentUser(context.Background(), "edmund@example.com")
	assert.ErrorIs(t, err, ErrAlreadyLinked)

	user, ok := ident.FindUser("edmund")
	require.True(t, ok)
	assert.Equal(t, "edmund@example.com", user.FBID)
}
