package social

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JonasLimhi/Edmund-Website/internal/hash"
	"github.com/JonasLimhi/Edmund-Website/internal/identity"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
)

var (
	ErrEmailRequired    = errors.New("external email required")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyLinked    = errors.New("external identity already linked")
	ErrUserNotFound     = errors.New("current user not found")
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

const fallbackBase = "fbuser"

// Linker resolves external (simulated Facebook) identities against the local
// user collection, provisioning customer accounts on first contact.
type Linker struct {
	identity *identity.Manager
}

func NewLinker(m *identity.Manager) *Linker {
	return &Linker{identity: m}
}

// NextUsername picks the first free candidate from base, base1, base2, ...
// With n existing names there are n+1 candidates, so by pigeonhole the loop
// finds a free one within n+1 probes.
func NextUsername(existing map[string]bool, base string) string {
	candidate := base
	for i := 0; i <= len(existing); i++ {
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		if !existing[candidate] {
			return candidate
		}
	}
	// Unreachable: n names cannot occupy all n+1 candidates.
	return base + strconv.Itoa(len(existing)+1)
}

func deriveBase(fbID, displayName string) string {
	base := displayName
	if base == "" {
		base = strings.SplitN(fbID, "@", 2)[0]
	}
	base = strings.ToLower(nonAlnum.ReplaceAllString(base, ""))
	if base == "" {
		return fallbackBase
	}
	return base
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginOrProvision logs the external identity into its linked account, or
// auto-provisions a customer account when no link exists yet, and establishes
// a session either way.
func (l *Linker) LoginOrProvision(ctx context.Context, externalEmail, displayName string) (models.Session, error) {
	log := logging.FromContext(ctx).With("svc", "social.login")

	fbID := normalizeEmail(externalEmail)
	if fbID == "" {
		return models.Session{}, ErrEmailRequired
	}

	users := l.identity.Users()
	for _, u := range users {
		if u.FBID == fbID {
			role := u.Role
			if role == "" {
				role = models.RoleCustomer
			}
			session := models.Session{Username: u.Username, Role: role}
			if err := l.identity.SetSession(&session); err != nil {
				return models.Session{}, err
			}
			log.Info("external_login_success", "username", u.Username)
			return session, nil
		}
	}

	existing := make(map[string]bool, len(users))
	for _, u := range users {
		existing[u.Username] = true
	}
	username := NextUsername(existing, deriveBase(fbID, displayName))

	// Throwaway credential so the account can still log in directly after a
	// password reset.
	user := models.User{
		Username:     username,
		PasswordHash: hash.Password(uuid.NewString()),
		Role:         models.RoleCustomer,
		FBID:         fbID,
	}
	users = append(users, user)
	if err := l.identity.SaveUsers(users); err != nil {
		log.Error("provision_error", "error", err)
		return models.Session{}, err
	}

	session := models.Session{Username: username, Role: models.RoleCustomer}
	if err := l.identity.SetSession(&session); err != nil {
		return models.Session{}, err
	}

	log.Info("external_login_provisioned", "username", username)
	return session, nil
}

// LinkToCurrentUser attaches the external identity to the logged-in account.
// An identity claimed by anyone blocks the link, including the current user's
// own earlier link; callers treat that case as a no-op conflict. The user
// collection is left untouched on every failure path.
func (l *Linker) LinkToCurrentUser(ctx context.Context, externalEmail string) error {
	log := logging.FromContext(ctx).With("svc", "social.link")

	fbID := normalizeEmail(externalEmail)
	if fbID == "" {
		return ErrEmailRequired
	}

	session, ok := l.identity.Session()
	if !ok {
		return ErrNotAuthenticated
	}

	users := l.identity.Users()
	for _, u := range users {
		if u.FBID == fbID {
			return ErrAlreadyLinked
		}
	}

	for i := range users {
		if users[i].Username == session.Username {
			users[i].FBID = fbID
			if err := l.identity.SaveUsers(users); err != nil {
				log.Error("link_error", "error", err)
				return err
			}
			log.Info("external_link_success", "username", session.Username)
			return nil
		}
	}

	return ErrUserNotFound
}
