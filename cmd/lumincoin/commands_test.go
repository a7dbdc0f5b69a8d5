package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeAPI is a minimal Lumincoin backend. Protected routes require the
// access token issued by /login.
type fakeAPI struct {
	mu      sync.Mutex
	created []map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	route := r.Method + " " + r.URL.Path

	switch route {
	case "POST /login":
		io.WriteString(w, `{"tokens":{"accessToken":"a","refreshToken":"r"},"user":{"id":3,"name":"Иван","lastName":"Петров"}}`)
		return
	case "POST /logout":
		io.WriteString(w, `{"error":false}`)
		return
	}

	if r.Header.Get("x-auth-token") != "a" {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":true,"message":"jwt expired"}`)
		return
	}

	switch route {
	case "GET /balance":
		io.WriteString(w, `{"balance":320}`)
	case "GET /categories/income":
		io.WriteString(w, `[{"id":1,"title":"Зарплата"},{"id":2,"title":"Депозиты"}]`)
	case "GET /operations":
		io.WriteString(w, `[{"id":5,"type":"income","amount":1500,"date":"2024-01-02","comment":"","category":"Зарплата"},`+
			`{"id":6,"type":"expense","amount":250,"date":"2024-01-03","comment":"обед","category":"Еда"}]`)
	case "POST /operations":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.created = append(f.created, body)
		f.mu.Unlock()
		io.WriteString(w, `{"id":7}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":true}`)
	}
}

func setupEnv(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("locale: en\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("API_URL", srv.URL)
	t.Setenv("SESSION_BACKEND", "sqlite")
	t.Setenv("SESSION_DB_PATH", filepath.Join(dir, "session.db"))
	t.Setenv("LUMINCOIN_CONFIG", cfgPath)
	t.Setenv("LOCALE", "en")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("TEMPLATES_URL", "")
	return api
}

func execute(args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCommandsSession(t *testing.T) {
	api := setupEnv(t)

	if _, err := execute("balance"); !errors.Is(err, errNotSignedIn) {
		t.Fatalf("balance before login error = %v, want errNotSignedIn", err)
	}

	if _, err := execute("login", "--email", "not-an-email", "--password", "x"); err == nil || !strings.Contains(err.Error(), "email") {
		t.Errorf("invalid login error = %v", err)
	}

	out, err := execute("login", "--email", "ivan@mail.ru", "--password", "Secret123")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(out, "Иван Петров") {
		t.Errorf("login output = %q", out)
	}

	steps := []struct {
		args []string
		want []string
	}{
		{[]string{"balance"}, []string{"320$"}},
		{[]string{"categories", "income", "list"}, []string{"Зарплата", "Депозиты"}},
		{[]string{"operations", "list", "--period", "month"}, []string{"Зарплата", "1500$", "02.01.2024", "обед"}},
		{[]string{"dashboard", "--period", "month"}, []string{"## Income", "## Expenses", "```mermaid", "Еда"}},
		{[]string{"export", "--dry-run", "--period", "all"}, []string{"ID", "Category", "Зарплата"}},
		{[]string{"operations", "create", "--type", "income", "--category", "Депозиты", "--amount", "12.5", "--date", "05.01.2024"}, []string{"created"}},
		{[]string{"shell"}, []string{"== Главная | Lumincoin Finance =="}},
	}
	for _, s := range steps {
		out, err := execute(s.args...)
		if err != nil {
			t.Errorf("%v error = %v", s.args, err)
			continue
		}
		for _, w := range s.want {
			if !strings.Contains(out, w) {
				t.Errorf("%v output missing %q:\n%s", s.args, w, out)
			}
		}
	}

	api.mu.Lock()
	created := api.created
	api.mu.Unlock()
	if len(created) != 1 {
		t.Fatalf("created = %v", created)
	}
	if created[0]["category_id"] != float64(2) || created[0]["date"] != "2024-01-05" || created[0]["amount"] != 12.5 || created[0]["comment"] != " " {
		t.Errorf("create payload = %v", created[0])
	}

	if _, err := execute("operations", "list", "--period", "interval", "--from", "01.01.2024"); err == nil {
		t.Error("expected error for a half-open interval")
	}

	if out, err := execute("logout"); err != nil || !strings.Contains(out, "signed out") {
		t.Fatalf("logout = %q, %v", out, err)
	}
	if _, err := execute("balance"); !errors.Is(err, errNotSignedIn) {
		t.Errorf("balance after logout error = %v", err)
	}
}

func TestIsoDate(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2024-03-09", false},
		{"2024-01-05", "2024-01-05", false},
		{"05.01.2024", "2024-01-05", false},
		{"5 Jan", "", true},
	}
	for _, tt := range tests {
		got, err := isoDate(tt.in, now)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("isoDate(%q) = %q, %v", tt.in, got, err)
		}
	}
}
