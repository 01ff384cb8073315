package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"email": "a@b.c", "role": "student"}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, staticTokens{token: "tok-123"})
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestClientOmitsHeaderWhenUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, staticTokens{})
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientUnauthorizedInvokesHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	invalidated := 0
	c := api.NewClient(srv.URL, staticTokens{token: "stale"},
		api.OnUnauthorized(func() { invalidated++ }))

	_, err := c.MyCourses(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if invalidated != 1 {
		t.Errorf("hook ran %d times, want 1", invalidated)
	}
}

func TestClientDecodesErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"detail field", `{"detail": "quiz not found"}`, http.StatusNotFound, "quiz not found"},
		{"message fallback", `{"message": "forbidden"}`, http.StatusForbidden, "forbidden"},
		{"no body", ``, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := api.NewClient(srv.URL, staticTokens{token: "tok"})
			_, err := c.GetQuiz(context.Background(), 7)
			var apiErr *api.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *api.Error", err)
			}
			if apiErr.Status != tt.status || apiErr.Detail != tt.want {
				t.Errorf("got status=%d detail=%q, want status=%d detail=%q",
					apiErr.Status, apiErr.Detail, tt.status, tt.want)
			}
		})
	}
}

func TestClientEnforcesDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, staticTokens{token: "tok"},
		api.WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.MyCourses(context.Background())
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("timeout must not masquerade as unauthorized: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call took %v, deadline not enforced", elapsed)
	}
}

func TestLoginIdentityResolution(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantEmail string
		wantRole  string
	}{
		{
			name:      "nested user object wins",
			body:      `{"access_token": "t1", "token_type": "bearer", "user": {"email": "real@x.y", "role": "teacher"}}`,
			wantEmail: "real@x.y",
			wantRole:  "teacher",
		},
		{
			name:      "top-level role wins over the requested one",
			body:      `{"access_token": "t2", "token_type": "bearer", "role": "admin"}`,
			wantEmail: "asked@x.y",
			wantRole:  "admin",
		},
		{
			name:      "silent response keeps the requested identity",
			body:      `{"access_token": "t3", "token_type": "bearer"}`,
			wantEmail: "asked@x.y",
			wantRole:  "student",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := api.NewClient(srv.URL, staticTokens{})
			got, err := c.Login(context.Background(), api.LoginInput{
				Email: "asked@x.y", Password: "pw", Role: "student",
			})
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if got.Identity.Email != tt.wantEmail || got.Identity.Role != tt.wantRole {
				t.Errorf("identity = %+v, want %s/%s", got.Identity, tt.wantEmail, tt.wantRole)
			}
		})
	}

	t.Run("missing token is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token_type": "bearer", "role": "student"}`))
		}))
		defer srv.Close()

		c := api.NewClient(srv.URL, staticTokens{})
		if _, err := c.Login(context.Background(), api.LoginInput{Email: "a@b.c", Password: "pw", Role: "student"}); err == nil {
			t.Error("expected an error for a tokenless login response")
		}
	})
}
