package waitlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPostsEmailAsJSON(t *testing.T) {
	t.Parallel()

	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := &HTTPSubmitter{Endpoint: srv.URL, Client: srv.Client()}
	require.NoError(t, s.Submit(context.Background(), "ada@example.com"))
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestSubmitRejectsNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "already registered", http.StatusConflict)
	}))
	defer srv.Close()

	err := NewHTTPSubmitter(srv.URL, time.Second).Submit(context.Background(), "ada@example.com")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.Equal(t, "already registered", statusErr.Body)
}

func TestSubmitWithoutEndpoint(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, (&HTTPSubmitter{}).Submit(context.Background(), "x@example.com"), ErrNotConfigured)
	var nilSubmitter *HTTPSubmitter
	require.ErrorIs(t, nilSubmitter.Submit(context.Background(), "x@example.com"), ErrNotConfigured)
}

func TestSubmitHonoursContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&HTTPSubmitter{Endpoint: srv.URL, Client: srv.Client()}).Submit(ctx, "ada@example.com")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()

	var seen string
	var s Submitter = Func(func(_ context.Context, email string) error {
		seen = email
		return nil
	})
	require.NoError(t, s.Submit(context.Background(), "ada@example.com"))
	assert.Equal(t, "ada@example.com", seen)
}
