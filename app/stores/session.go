package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/metrics"
)

// UserSlot is the session slot holding the serialized signed-in user.
const UserSlot = "usuario"

// ErrUnauthenticated is returned by operations that need a signed-in user.
var ErrUnauthenticated = errors.New("stores: not signed in")

// Accounts is the part of the API the session store talks to.
// *api.Client implements it.
type Accounts interface {
	Login(ctx context.Context, gmail, password string) (models.User, error)
	Register(ctx context.Context, u models.User) (models.User, error)
	Logout(ctx context.Context, userID string) error
	RecoverPassword(ctx context.Context, gmail string) error
	UpdateUser(ctx context.Context, id string, patch api.UserPatch) (models.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	UpdateAddress(ctx context.Context, id, direccion string) (models.User, error)
}

// Session tracks who is signed in for one browser session. The persisted
// user is read on first access.
type Session struct {
	accounts Accounts
	slots    kv.Store

	hydrated bool
	user     *models.User
}

// NewSession returns a session store over slots. Nothing is read until the
// first access.
func NewSession(accounts Accounts, slots kv.Store) *Session {
	return &Session{accounts: accounts, slots: slots}
}

// Hydrate reads the persisted user once. A corrupt slot is removed and the
// session starts signed out. A failing store leaves the session unhydrated
// so the next access tries again.
func (s *Session) Hydrate(ctx context.Context) error {
	if s.hydrated {
		return nil
	}

	var u models.User
	err := kv.GetJSON(ctx, s.slots, UserSlot, &u)
	switch {
	case err == nil:
		s.user = &u
	case errors.Is(err, kv.ErrNotFound):
	case !errors.Is(err, kv.ErrCorrupt):
		return fmt.Errorf("stores: read user: %w", err)
	default:
		logger.WithCtx(ctx).Warn("session: discarding persisted user", "error", err)
		if rmErr := s.slots.Remove(ctx, UserSlot); rmErr != nil {
			logger.WithCtx(ctx).Warn("session: remove corrupt user slot", "error", rmErr)
		}
	}
	s.hydrated = true
	return nil
}

// Hydrated reports whether the persisted user has been read.
func (s *Session) Hydrated() bool { return s.hydrated }

// Authenticated reports whether a user is signed in. Call Hydrate first.
func (s *Session) Authenticated() bool { return s.user != nil }

// HasRole reports whether the signed-in user has role.
func (s *Session) HasRole(role string) bool {
	return s.user != nil && string(s.user.Rol) == role
}

// Current returns the signed-in user.
func (s *Session) Current(ctx context.Context) (models.User, bool) {
	if err := s.Hydrate(ctx); err != nil {
		logger.WithCtx(ctx).Warn("session: hydrate", "error", err)
	}
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Current(ctx)
	return ok
}

// IsAdmin reports whether the signed-in user is an administrator.
func (s *Session) IsAdmin(ctx context.Context) bool {
	u, ok := s.Current(ctx)
	return ok && u.IsAdmin()
}

// Login checks the credentials with the API and signs the user in. On
// failure the session is left as it was.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.accounts.Login(ctx, email, password)
	if err == nil {
		err = s.remember(ctx, u)
	}
	metrics.SessionEvent("login", err)
	if err != nil {
		return models.User{}, err
	}
	return *s.user, nil
}

// Register creates the account and signs it in. A duplicate email comes back
// as an error for which api.IsConflict is true.
func (s *Session) Register(ctx context.Context, u models.User) (models.User, error) {
	created, err := s.accounts.Register(ctx, u)
	if err == nil {
		err = s.remember(ctx, created)
	}
	metrics.SessionEvent("register", err)
	if err != nil {
		return models.User{}, err
	}
	return *s.user, nil
}

// Logout tells the API the user left and then forgets the user. Neither a
// failing API nor a failing store stops the local sign-out.
func (s *Session) Logout(ctx context.Context) {
	log := logger.WithCtx(ctx)

	if u, ok := s.Current(ctx); ok && u.ID != "" {
		if err := s.accounts.Logout(ctx, u.ID); err != nil {
			log.Warn("session: remote logout failed", "user_id", u.ID, "error", err)
		}
	}

	s.user = nil
	s.hydrated = true
	if err := s.slots.Remove(ctx, UserSlot); err != nil {
		log.Warn("session: clear user slot", "error", err)
	}
	metrics.SessionEvent("logout", nil)
}

// UpdateProfile sends the changed fields and caches the server's result.
func (s *Session) UpdateProfile(ctx context.Context, patch api.UserPatch) (models.User, error) {
	u, ok := s.Current(ctx)
	if !ok {
		return models.User{}, ErrUnauthenticated
	}
	updated, err := s.accounts.UpdateUser(ctx, u.ID, patch)
	if err == nil {
		err = s.remember(ctx, updated)
	}
	metrics.SessionEvent("profile", err)
	if err != nil {
		return models.User{}, err
	}
	return *s.user, nil
}

// UpdateAddress sets the delivery address and caches the server's result.
func (s *Session) UpdateAddress(ctx context.Context, direccion string) (models.User, error) {
	u, ok := s.Current(ctx)
	if !ok {
		return models.User{}, ErrUnauthenticated
	}
	updated, err := s.accounts.UpdateAddress(ctx, u.ID, direccion)
	if err == nil {
		err = s.remember(ctx, updated)
	}
	metrics.SessionEvent("address", err)
	if err != nil {
		return models.User{}, err
	}
	return *s.user, nil
}

// ChangePassword replaces the signed-in user's password.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	u, ok := s.Current(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	err := s.accounts.ChangePassword(ctx, u.ID, current, next)
	metrics.SessionEvent("password", err)
	return err
}

// RecoverPassword starts password recovery for email. It does not touch the
// session.
func (s *Session) RecoverPassword(ctx context.Context, email string) error {
	err := s.accounts.RecoverPassword(ctx, email)
	metrics.SessionEvent("recover", err)
	return err
}

func (s *Session) remember(ctx context.Context, u models.User) error {
	u = u.Public()
	if err := kv.SetJSON(ctx, s.slots, UserSlot, u); err != nil {
		return fmt.Errorf("stores: save user: %w", err)
	}
	s.user = &u
	s.hydrated = true
	return nil
}
