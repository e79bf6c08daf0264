package auth_test

import (
	"context"
	"database/sql"
	"sync"

	auth "github.com/goliatone/go-auth-api"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockIdentity is a mock implementation of the Identity interface
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

// memUsers is an in-memory Users implementation. Transactions are ignored:
// every method reads and writes the same maps under a mutex.
type memUsers struct {
	mu       sync.Mutex
	byID     map[string]*auth.User
	byEmail  map[string]*auth.User
	failWith error
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID:    map[string]*auth.User{},
		byEmail: map[string]*auth.User{},
	}
}

var _ auth.Users = (*memUsers)(nil)

func (m *memUsers) GetByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	user, ok := m.byID[id]
	if !ok {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id})
	}

	return user, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.GetByEmailTx(ctx, nil, email)
}

func (m *memUsers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"email": email})
	}

	return user, nil
}

func (m *memUsers) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	return m.RegisterTx(ctx, nil, user)
}

func (m *memUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *auth.User) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	m.byID[user.ID.String()] = user
	m.byEmail[user.Email] = user

	return user, nil
}

// memRepoManager satisfies RepositoryManager without a database. RunInTx just
// invokes the callback since memUsers does not look at the transaction.
type memRepoManager struct {
	users *memUsers
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{users: newMemUsers()}
}

var _ auth.RepositoryManager = (*memRepoManager)(nil)

func (m *memRepoManager) Validate() error { return nil }

func (m *memRepoManager) MustValidate() {}

func (m *memRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *memRepoManager) Users() auth.Users {
	return m.users
}

// configStub provides auth options for tests
type configStub struct {
	signingKey string
	issuer     string
}

func (c configStub) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key"
	}
	return c.signingKey
}

func (c configStub) GetIssuer() string {
	if c.issuer == "" {
		return "test-issuer"
	}
	return c.issuer
}

func (c configStub) GetContextKey() string { return "user" }

func (c configStub) GetAuthScheme() string { return "Bearer" }

func (c configStub) GetTokenLookup() string { return "header:Authorization" }
