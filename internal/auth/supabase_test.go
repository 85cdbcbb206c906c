package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyUserSuccess(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":%q,"email":"builder@example.com"}`, userID.String())
	}))
	t.Cleanup(srv.Close)

	resolved, err := NewClient(srv.URL, "anon").VerifyUser(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestVerifyUserRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, "anon").VerifyUser(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyUserServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, "anon").VerifyUser(context.Background(), "some-token")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyUserMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, "anon").VerifyUser(context.Background(), "some-token")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyUserMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"email":"builder@example.com"}`)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, "anon").VerifyUser(context.Background(), "some-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyUserUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := NewClient(srv.URL, "anon").VerifyUser(context.Background(), "some-token")
	assert.ErrorIs(t, err, ErrUnavailable)
}
