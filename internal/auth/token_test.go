package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-32-chars-long!!"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestResolveValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "aud": "authenticated"})

	resolver := NewTokenResolver(testSecret, nil, false)
	resolved, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestResolveMissingSubjectIsTerminal(t *testing.T) {
	// A remote verifier is configured and would accept anything, but a locally
	// verified token with no subject must be rejected without falling back.
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"id":%q}`, uuid.NewString())
	}))
	t.Cleanup(srv.Close)

	token := signToken(t, testSecret, jwt.MapClaims{"aud": "authenticated"})

	resolver := NewTokenResolver(testSecret, NewClient(srv.URL, "anon"), false)
	_, err := resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Zero(t, calls.Load())
}

func TestResolveNonUUIDSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "not-a-uuid", "aud": "authenticated"})

	resolver := NewTokenResolver(testSecret, nil, false)
	_, err := resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveWrongSecretNoFallback(t *testing.T) {
	token := signToken(t, "completely-wrong-secret-value!!", jwt.MapClaims{
		"sub": uuid.NewString(), "aud": "authenticated",
	})

	// No remote verifier configured: nothing can render a verdict.
	resolver := NewTokenResolver(testSecret, nil, false)
	_, err := resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveWrongSecretStrictMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote verifier must not be called in strict mode")
	}))
	t.Cleanup(srv.Close)

	token := signToken(t, "completely-wrong-secret-value!!", jwt.MapClaims{
		"sub": uuid.NewString(), "aud": "authenticated",
	})

	resolver := NewTokenResolver(testSecret, NewClient(srv.URL, "anon"), true)
	_, err := resolver.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveWrongSecretFallsBackToRemote(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"id":%q}`, userID.String())
	}))
	t.Cleanup(srv.Close)

	token := signToken(t, "completely-wrong-secret-value!!", jwt.MapClaims{
		"sub": uuid.NewString(), "aud": "authenticated",
	})

	resolver := NewTokenResolver(testSecret, NewClient(srv.URL, "anon-key"), false)
	resolved, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestResolveWrongAudienceFallsBack(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":%q}`, userID.String())
	}))
	t.Cleanup(srv.Close)

	token := signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "aud": "anon"})

	resolver := NewTokenResolver(testSecret, NewClient(srv.URL, "anon"), false)
	resolved, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestResolveGarbledTokenFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	resolver := NewTokenResolver(testSecret, NewClient(srv.URL, "anon"), false)
	_, err := resolver.Resolve(context.Background(), "not.a.valid.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveNoVerifierConfigured(t *testing.T) {
	resolver := NewTokenResolver("", nil, false)
	_, err := resolver.Resolve(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}
