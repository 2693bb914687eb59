package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/session"
)

// newTestManager builds a manager backed by a throwaway file store.
func newTestManager(t *testing.T, srvURL string) *session.Manager {
	t.Helper()
	t.Setenv("MEETIX_HOME", t.TempDir())
	t.Setenv("MEETIX_TOKEN", "")

	store, err := session.NewFileStore()
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	api := client.New(client.Config{BaseURL: srvURL, Store: store})
	mgr := session.NewManager(store, api)
	mgr.Restore()
	return mgr
}

func typeString(m loginModel, s string) loginModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestLoginRequiresCredentials(t *testing.T) {
	m := newLoginModel(nil)
	m.focus = int(fieldPassword)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("submit command issued with empty fields")
	}
	if !strings.Contains(m.statusMsg, "required") {
		t.Errorf("statusMsg = %q, want required hint", m.statusMsg)
	}
}

func TestCtrlRTogglesRegistration(t *testing.T) {
	m := newLoginModel(nil)
	m.focus = 1

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.registering {
		t.Fatal("ctrl+r did not switch to registration")
	}
	if m.focus != 0 {
		t.Error("focus not reset on mode switch")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.registering {
		t.Error("ctrl+r did not switch back to login")
	}
}

func TestEnterAdvancesThenSubmits(t *testing.T) {
	m := newLoginModel(nil)
	m = typeString(m, "ana@uni.edu")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("enter on the email field submitted instead of advancing")
	}
	if m.focus != int(fieldPassword) {
		t.Errorf("focus = %d, want password field", m.focus)
	}
}

func TestPasswordIsMasked(t *testing.T) {
	m := newLoginModel(nil)
	m.focus = int(fieldPassword)
	m = typeString(m, "secret")

	out := m.View()
	if strings.Contains(out, "secret") {
		t.Error("password rendered in clear text")
	}
	if !strings.Contains(out, "••••••") {
		t.Error("password not masked with bullets")
	}
}

func TestLoginRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@uni.edu" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token":     "tok-123",
			"userId":    uuid.New(),
			"firstName": "Ana",
			"lastName":  "Souza",
			"email":     "ana@uni.edu",
		})
	}))
	defer srv.Close()

	mgr := newTestManager(t, srv.URL)
	m := newLoginModel(mgr)
	m = typeString(m, "ana@uni.edu")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeString(m, "secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a login command")
	}
	if !m.submitting {
		t.Error("model not marked submitting")
	}
	msg, ok := cmd().(loggedInMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want loggedInMsg", cmd())
	}
	if msg.err != nil {
		t.Fatalf("login failed: %v", msg.err)
	}
	if msg.user.FirstName != "Ana" {
		t.Errorf("user = %+v", msg.user)
	}
	if !mgr.IsAuthenticated() {
		t.Error("manager not authenticated after login")
	}
}

func TestBadCredentialsClearPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer srv.Close()

	mgr := newTestManager(t, srv.URL)
	m := newLoginModel(mgr)
	m = typeString(m, "ana@uni.edu")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeString(m, "wrong")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())

	if m.fields[fieldPassword] != "" {
		t.Error("password field not cleared after failure")
	}
	if !strings.Contains(m.statusMsg, "invalid credentials") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if mgr.IsAuthenticated() {
		t.Error("manager authenticated after a rejected login")
	}
}

func TestRegisterRequiresCoreFields(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.focus = int(numRegisterFields) - 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("register submitted with empty fields")
	}
	if !strings.Contains(m.statusMsg, "required") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req client.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]any{
			"token":      "tok-456",
			"userId":     uuid.New(),
			"firstName":  req.FirstName,
			"email":      req.Email,
			"university": req.University,
		})
	}))
	defer srv.Close()

	mgr := newTestManager(t, srv.URL)
	m := newLoginModel(mgr)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.regFields[regFirstName] = "Ana"
	m.regFields[regEmail] = "ana@uni.edu"
	m.regFields[regPassword] = "secret"
	m.regFields[regUniversity] = "UFPE"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected a register command")
	}
	msg, ok := cmd().(loggedInMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want loggedInMsg", cmd())
	}
	if msg.err != nil {
		t.Fatalf("register failed: %v", msg.err)
	}
	if msg.user.University != "UFPE" {
		t.Errorf("user = %+v", msg.user)
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newLoginModel(nil)
	m.submitting = true

	m, _ = m.Update(keyRunes("x"))
	if m.fields[fieldEmail] != "" {
		t.Error("input accepted while a submit is in flight")
	}
}
