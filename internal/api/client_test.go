package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulWasayUl/go-country-browser/internal/api"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

func newClient() *api.Client {
	return api.NewClient(models.RateLimitSettings{MaxRequests: 100, PerDuration: time.Second})
}

func TestClient_Do_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
	}{
		{name: "ok", status: http.StatusOK, body: `[{"a":1}]`},
		{name: "not found", status: http.StatusNotFound, body: "missing", wantErr: true, wantStatus: 404},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "bad key", wantErr: true, wantStatus: 401},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: true, wantStatus: 500},
	}

	client := newClient()
	defer client.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			body, err := client.Do(context.Background(), ts.URL, nil)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrNetworkFailure))
				var se *api.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.wantStatus, se.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestClient_Do_NoRetry(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := newClient()
	defer client.Close()

	_, err := client.Do(context.Background(), ts.URL, nil)
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}

func TestClient_Do_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := newClient()
	defer client.Close()

	_, err := client.Do(context.Background(), url, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNetworkFailure))
}

func TestClient_Do_ContextCancelled(t *testing.T) {
	client := api.NewClient(models.RateLimitSettings{MaxRequests: 1, PerDuration: time.Hour})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Do(ctx, "http://127.0.0.1:1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNetworkFailure))
}

func TestClient_GetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"name":"France"}`)
	}))
	defer ts.Close()

	client := newClient()
	defer client.Close()

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.GetJSON(context.Background(), ts.URL, &out))
	assert.Equal(t, "France", out.Name)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer bad.Close()

	err := client.GetJSON(context.Background(), bad.URL, &out)
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrNetworkFailure))
}

func TestClient_Do_RateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := api.NewClient(models.RateLimitSettings{MaxRequests: 10, PerDuration: time.Second})
	defer client.Close()

	start := time.Now()
	for i := 0; i < 4; i++ {
		_, _ = client.Do(context.Background(), ts.URL, nil)
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("rate limiting not enforced, took %v", elapsed)
	}
}
