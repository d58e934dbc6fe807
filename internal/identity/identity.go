package identity

import (
	"context"
	"errors"

	"github.com/JonasLimhi/Edmund-Website/internal/hash"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/store"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Manager struct {
	backend store.Backend
}

func NewManager(backend store.Backend) *Manager {
	return &Manager{backend: backend}
}

// Users exposes the raw user collection; the social linker shares it.
func (m *Manager) Users() []models.User {
	return store.Load[models.User](m.backend, store.Users)
}

func (m *Manager) SaveUsers(users []models.User) error {
	return store.Save(m.backend, store.Users, users)
}

func (m *Manager) FindUser(username string) (models.User, bool) {
	for _, u := range m.Users() {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// Session returns the active session, if any.
func (m *Manager) Session() (models.Session, bool) {
	return store.LoadOne[models.Session](m.backend, store.CurrentUser)
}

// SetSession persists the session; nil removes the entry entirely.
func (m *Manager) SetSession(session *models.Session) error {
	if session == nil {
		return store.Clear(m.backend, store.CurrentUser)
	}
	return store.SaveOne(m.backend, store.CurrentUser, *session)
}

// Register creates a user with a digest of the given password. It does not
// establish a session.
func (m *Manager) Register(ctx context.Context, username, password, role string) (models.User, error) {
	l := logging.FromContext(ctx).With("svc", "identity.register", "username", username)

	if role == "" {
		role = models.RoleCustomer
	}

	users := m.Users()
	for _, u := range users {
		if u.Username == username {
			l.Warn("register_failed", "reason", "user already exists")
			return models.User{}, ErrUserExists
		}
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash.Password(password),
		Role:         role,
	}
	users = append(users, user)
	if err := m.SaveUsers(users); err != nil {
		l.Error("register_error", "error", err)
		return models.User{}, err
	}

	l.Info("register_success")
	return user, nil
}

// Login checks the credentials and persists a session snapshot. The snapshot
// copies the role so later role edits do not retroactively change it.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Session, error) {
	l := logging.FromContext(ctx).With("svc", "identity.login", "username", username)

	user, ok := m.FindUser(username)
	if !ok || !hash.Check(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid username or password")
		return models.Session{}, ErrInvalidCredentials
	}

	session := models.Session{Username: user.Username, Role: user.Role}
	if session.Role == "" {
		session.Role = models.RoleCustomer
	}
	if err := m.SetSession(&session); err != nil {
		l.Error("login_error", "error", err)
		return models.Session{}, err
	}

	l.Info("login_success")
	return session, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	logging.FromContext(ctx).Info("logout", "svc", "identity.logout")
	return m.SetSession(nil)
}
