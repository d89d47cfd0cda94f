package session

import (
	"context"
	"sync"
	"time"

	"github.com/phanto-shop/storefront/models"
)

// Authenticator resolves credentials to a user. The session store only
// depends on this contract, so the demo implementation below can be swapped
// for a real authentication service without touching the store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, displayName, email, password string) (*models.User, error)
}

// demoUserID is the fixed id every login resolves to until a real
// authentication service is wired in.
const demoUserID = 1

// LocalAuthenticator reproduces the legacy client-only behavior: no server
// round trip, any credentials accepted. Login always resolves to the same
// demo identity; Register mints a fresh timestamp-derived id.
type LocalAuthenticator struct {
	mu     sync.Mutex
	lastID int64
}

func NewLocalAuthenticator() *LocalAuthenticator {
	return &LocalAuthenticator{}
}

func (a *LocalAuthenticator) Login(_ context.Context, email, _ string) (*models.User, error) {
	return &models.User{
		ID:          demoUserID,
		DisplayName: "Demo User",
		Email:       email,
	}, nil
}

func (a *LocalAuthenticator) Register(_ context.Context, displayName, email, _ string) (*models.User, error) {
	return &models.User{
		ID:          a.nextID(),
		DisplayName: displayName,
		Email:       email,
	}, nil
}

// nextID derives an id from the wall clock but never repeats one, so two
// registrations within the same millisecond still get distinct ids.
func (a *LocalAuthenticator) nextID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= a.lastID {
		id = a.lastID + 1
	}
	a.lastID = id
	return id
}
