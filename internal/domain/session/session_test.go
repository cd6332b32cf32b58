package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	args := m.Called(ctx, sessionID, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, sessionID, key, value string) error {
	return m.Called(ctx, sessionID, key, value).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, sessionID, key string) error {
	return m.Called(ctx, sessionID, key).Error(0)
}

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Validate(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func TestBoot_NoTokenSkipsBackend(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	backend := new(MockBackend)
	store.On("Get", ctx, "s1", TokenKey).Return("", ErrNoValue)

	s := New("s1", store)
	state, err := s.Boot(ctx, backend)

	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, state)
	backend.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestBoot_ValidToken(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	backend := new(MockBackend)
	store.On("Get", ctx, "s1", TokenKey).Return("tok", nil)
	backend.On("Validate", ctx, "tok").Return(true, nil)

	s := New("s1", store)
	state, err := s.Boot(ctx, backend)

	require.NoError(t, err)
	assert.Equal(t, Authenticated, state)
	assert.Equal(t, "tok", s.Token())
	assert.True(t, s.IsAuthenticated())
}

func TestBoot_InvalidTokenClearsIt(t *testing.T) {
	tests := []struct {
		name     string
		valid    bool
		err      error
		wantsErr bool
	}{
		{name: "valid false", valid: false},
		{name: "backend error", err: errors.New("connection refused"), wantsErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := new(MockStore)
			backend := new(MockBackend)
			store.On("Get", ctx, "s1", TokenKey).Return("stale", nil)
			store.On("Delete", ctx, "s1", TokenKey).Return(nil).Once()
			backend.On("Validate", ctx, "stale").Return(tt.valid, tt.err)

			s := New("s1", store)
			state, err := s.Boot(ctx, backend)

			assert.Equal(t, tt.wantsErr, err != nil)
			assert.Equal(t, Unauthenticated, state)
			assert.Empty(t, s.Token())
			store.AssertExpectations(t)
		})
	}
}

func TestBoot_OnlyFromUnknown(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Get", ctx, "s1", TokenKey).Return("", nil)

	s := New("s1", store)
	_, err := s.Boot(ctx, new(MockBackend))
	require.NoError(t, err)

	_, err = s.Boot(ctx, new(MockBackend))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	backend := new(MockBackend)
	store.On("Get", ctx, "s1", TokenKey).Return("", ErrNoValue)
	backend.On("Login", ctx, "admin", "bad").Return("", errors.New("Invalid credentials"))
	backend.On("Login", ctx, "admin", "secret").Return("jwt-token", nil)
	store.On("Set", ctx, "s1", TokenKey, "jwt-token").Return(nil)
	store.On("Delete", ctx, "s1", TokenKey).Return(nil)

	s := New("s1", store)
	assert.ErrorIs(t, s.Login(ctx, backend, "admin", "secret"), ErrInvalidTransition, "login before boot")

	_, err := s.Boot(ctx, backend)
	require.NoError(t, err)

	require.Error(t, s.Login(ctx, backend, "admin", "bad"))
	assert.Equal(t, Unauthenticated, s.State())

	require.NoError(t, s.Login(ctx, backend, "admin", "secret"))
	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, "jwt-token", s.Token())

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, s.Token())
	store.AssertExpectations(t)
}

func TestLogin_EmptyToken(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	backend := new(MockBackend)
	store.On("Get", ctx, "s1", TokenKey).Return("", nil)
	backend.On("Login", ctx, "a", "b").Return("", nil)

	s := New("s1", store)
	_, _ = s.Boot(ctx, backend)

	assert.ErrorIs(t, s.Login(ctx, backend, "a", "b"), ErrEmptyToken)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResume(t *testing.T) {
	s := New("s1", new(MockStore))

	require.NoError(t, s.Resume("tok"))
	assert.Equal(t, Authenticated, s.State())
	assert.ErrorIs(t, s.Resume("tok"), ErrInvalidTransition)
	assert.Equal(t, "authenticated", s.State().String())
}

func TestRotate(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticated session carries its token", func(t *testing.T) {
		store := new(MockStore)
		store.On("Set", ctx, "s2", TokenKey, "tok").Return(nil)
		store.On("Delete", ctx, "s1", TokenKey).Return(nil)

		s := New("s1", store)
		require.NoError(t, s.Resume("tok"))
		require.NoError(t, s.Rotate(ctx, "s2"))

		assert.Equal(t, "s2", s.ID())
		assert.Equal(t, "tok", s.Token())
		store.AssertExpectations(t)
	})

	t.Run("anonymous session only drops the old id", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", ctx, "s1", TokenKey).Return("", ErrNoValue)
		store.On("Delete", ctx, "s1", TokenKey).Return(nil)

		s := New("s1", store)
		_, err := s.Boot(ctx, new(MockBackend))
		require.NoError(t, err)
		require.NoError(t, s.Rotate(ctx, "s2"))

		assert.Equal(t, "s2", s.ID())
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects empty and unchanged ids", func(t *testing.T) {
		s := New("s1", new(MockStore))
		assert.ErrorIs(t, s.Rotate(ctx, ""), ErrInvalidID)
		assert.ErrorIs(t, s.Rotate(ctx, "s1"), ErrInvalidID)
		assert.Equal(t, "s1", s.ID())
	})
}
