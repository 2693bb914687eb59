package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

func TestLoginReshapesFlatResponse(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["email"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// Flat response: token and user fields at the top level.
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"token":      "jwt-abc",
			"userId":     userID.String(),
			"firstName":  "Joana",
			"lastName":   "Silva",
			"email":      "joana@usp.br",
			"instagram":  "@joanas",
			"university": "USP",
			"course":     "Engenharia",
		})
	}))
	defer srv.Close()

	store := &memStore{}
	c := newTestClient(srv.URL, store, nil)

	user, err := c.Login(context.Background(), "joana@usp.br", "s3cret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if user.ID != userID {
		t.Errorf("user.ID = %s, want userId field %s", user.ID, userID)
	}
	if user.FirstName != "Joana" || user.University != "USP" || user.Course != "Engenharia" {
		t.Errorf("user fields not copied verbatim: %+v", user)
	}

	// Re-reading the store must yield the same values.
	if store.Token() != "jwt-abc" {
		t.Errorf("stored token = %q, want %q", store.Token(), "jwt-abc")
	}
	if store.user == nil || store.user.ID != userID || store.user.Email != "joana@usp.br" {
		t.Errorf("stored user = %+v, want persisted snapshot", store.user)
	}
}

func TestRegisterPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			http.NotFound(w, r)
			return
		}
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"token":      "jwt-new",
			"userId":     uuid.New().String(),
			"firstName":  req.FirstName,
			"lastName":   req.LastName,
			"email":      req.Email,
			"university": req.University,
			"course":     req.Course,
		})
	}))
	defer srv.Close()

	store := &memStore{}
	c := newTestClient(srv.URL, store, nil)

	user, err := c.Register(context.Background(), RegisterRequest{
		FirstName:  "Pedro",
		LastName:   "Lima",
		Email:      "pedro@ufmg.br",
		Password:   "pw",
		University: "UFMG",
		Course:     "Computacao",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.FullName() != "Pedro Lima" {
		t.Errorf("FullName() = %q, want %q", user.FullName(), "Pedro Lima")
	}
	if store.Token() != "jwt-new" {
		t.Errorf("stored token = %q, want %q", store.Token(), "jwt-new")
	}
}

func TestLogoutClearsStoreOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	store := &memStore{token: "tok", user: &domain.User{FirstName: "Ana"}}
	c := newTestClient(srv.URL, store, nil)

	err := c.Logout(context.Background())
	if err == nil {
		t.Fatal("expected backend error to surface")
	}
	if store.Token() != "" || store.user != nil {
		t.Error("store not cleared despite failed logout call")
	}
}

func TestLogoutClearsStoreOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	store := &memStore{token: "tok", user: &domain.User{FirstName: "Ana"}}
	c := newTestClient(url, store, nil)

	c.Logout(context.Background()) //nolint:errcheck
	if store.Token() != "" || store.user != nil {
		t.Error("store not cleared when logout never reached the backend")
	}
}

func TestUpdateProfileRefreshesSnapshot(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/"+userID.String() {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(domain.User{ //nolint:errcheck
			ID:         userID,
			FirstName:  "Joana",
			LastName:   "Souza",
			Email:      "joana@usp.br",
			University: "USP",
			Course:     "Engenharia",
		})
	}))
	defer srv.Close()

	store := &memStore{token: "tok", user: &domain.User{ID: userID, FirstName: "Joana", LastName: "Silva"}}
	c := newTestClient(srv.URL, store, nil)

	user, err := c.UpdateProfile(context.Background(), userID, UpdateProfileRequest{
		FirstName:  "Joana",
		LastName:   "Souza",
		University: "USP",
		Course:     "Engenharia",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if user.LastName != "Souza" {
		t.Errorf("LastName = %q, want %q", user.LastName, "Souza")
	}
	if store.user == nil || store.user.LastName != "Souza" {
		t.Error("cached user snapshot not refreshed after profile update")
	}
	if store.Token() != "tok" {
		t.Errorf("token = %q, profile update must not touch the token", store.Token())
	}
}
