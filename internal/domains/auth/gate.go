package auth

import (
	"context"
	"errors"

	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Gate validates submitted credentials against one realm of the store.
// Until a session passes the gate, no other surface is reachable.
type Gate struct {
	store  *credstore.Store
	logger *Logger.Logger
}

func NewGate(store *credstore.Store, logger *Logger.Logger) *Gate {
	return &Gate{store: store, logger: logger}
}

// Login succeeds iff the selected realm maps name to password.
func (g *Gate) Login(ctx context.Context, name, password string, realm credstore.Realm) error {
	if !g.store.Verify(realm, name, password) {
		g.logger.Warnf("failed login attempt: %s (realm=%s)", name, realm)
		return ErrInvalidCredentials
	}
	g.logger.Infof("login: %s (realm=%s)", name, realm)
	return nil
}
