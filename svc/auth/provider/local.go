package provider

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Local is an in-memory credential provider for development and tests. It
// keeps bcrypt hashes keyed by normalized email and never persists anything.
type Local struct {
	mu       sync.RWMutex
	accounts map[string]localAccount
	cost     int
}

type localAccount struct {
	uid  string
	hash []byte
}

// NewLocal creates an empty local provider.
func NewLocal() *Local {
	return &Local{
		accounts: make(map[string]localAccount),
		cost:     bcrypt.DefaultCost,
	}
}

func (p *Local) Name() string { return NameLocal }

func (p *Local) SignUp(ctx context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return Identity{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.accounts[email]; exists {
		return Identity{}, ErrEmailTaken
	}

	acc := localAccount{uid: uuid.NewString(), hash: hash}
	p.accounts[email] = acc

	return Identity{ProviderUID: acc.uid, Email: email}, nil
}

func (p *Local) SignIn(ctx context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)

	p.mu.RLock()
	acc, exists := p.accounts[email]
	p.mu.RUnlock()

	if !exists {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{ProviderUID: acc.uid, Email: email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Provider = (*Local)(nil)
