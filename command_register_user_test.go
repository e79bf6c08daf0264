package auth_test

import (
	"context"
	"testing"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserMessageValidate(t *testing.T) {
	valid := auth.RegisterUserMessage{
		Name:            "Ana",
		Email:           "a@x.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	}

	tests := []struct {
		name    string
		mutate  func(m *auth.RegisterUserMessage)
		wantMsg string
	}{
		{
			name:   "valid payload",
			mutate: func(m *auth.RegisterUserMessage) {},
		},
		{
			name:    "missing name",
			mutate:  func(m *auth.RegisterUserMessage) { m.Name = "" },
			wantMsg: "name is required",
		},
		{
			name:    "missing email",
			mutate:  func(m *auth.RegisterUserMessage) { m.Email = "" },
			wantMsg: "email is required",
		},
		{
			name:    "missing password",
			mutate:  func(m *auth.RegisterUserMessage) { m.Password = "" },
			wantMsg: "password is required",
		},
		{
			name:    "mismatched confirmation",
			mutate:  func(m *auth.RegisterUserMessage) { m.ConfirmPassword = "different" },
			wantMsg: "passwords do not match",
		},
		{
			name: "missing name reported before later failures",
			mutate: func(m *auth.RegisterUserMessage) {
				m.Name = ""
				m.Email = ""
				m.ConfirmPassword = "different"
			},
			wantMsg: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := valid
			tt.mutate(&msg)

			err := msg.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, auth.FirstValidationError(err, auth.RegistrationFieldOrder...))
		})
	}
}

func TestRegisterUserHandlerExecute(t *testing.T) {
	repo := newMemRepoManager()
	handler := auth.NewRegisterUserHandler(repo)

	err := handler.Execute(context.Background(), auth.RegisterUserMessage{
		Name:            "Ana",
		Email:           "a@x.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})
	require.NoError(t, err)

	user, err := repo.Users().GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "Ana", user.Name)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, auth.ComparePasswordAndHash("pass123", user.PasswordHash))
	assert.NotEmpty(t, user.ID)
}

func TestRegisterUserHandlerExecuteDuplicateEmail(t *testing.T) {
	repo := newMemRepoManager()
	seedUser(t, repo.users, "Ana", "a@x.com", "pass123")

	handler := auth.NewRegisterUserHandler(repo)

	err := handler.Execute(context.Background(), auth.RegisterUserMessage{
		Name:            "Another Ana",
		Email:           "a@x.com",
		Password:        "other-pass",
		ConfirmPassword: "other-pass",
	})

	assert.Equal(t, auth.ErrDuplicateEmail, err)
}

func TestRegisterUserHandlerExecuteStoreFailure(t *testing.T) {
	repo := newMemRepoManager()
	repo.users.failWith = errors.New("connection refused", errors.CategoryOperation)

	handler := auth.NewRegisterUserHandler(repo)

	err := handler.Execute(context.Background(), auth.RegisterUserMessage{
		Name:            "Ana",
		Email:           "a@x.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})
	require.Error(t, err)

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr))
	assert.Equal(t, errors.CategoryInternal, richErr.Category)
}

func TestRegisterUserHandlerExecuteCancelledContext(t *testing.T) {
	repo := newMemRepoManager()
	handler := auth.NewRegisterUserHandler(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, auth.RegisterUserMessage{
		Name:            "Ana",
		Email:           "a@x.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})
	require.Error(t, err)

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr))
	assert.Equal(t, errors.CategoryOperation, richErr.Category)
}
