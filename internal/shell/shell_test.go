package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"lumincoin/internal/api"
	"lumincoin/internal/app"
	"lumincoin/internal/core"
	"lumincoin/internal/log"
	"lumincoin/internal/router"
	"lumincoin/internal/services"
	"lumincoin/internal/session"
	"lumincoin/internal/views"
	"lumincoin/web"
)

type backend map[string]string

func (b backend) Request(_ context.Context, path, method string, _ bool, _ any) api.Result {
	if body, ok := b[method+" "+path]; ok {
		return api.Result{Status: 200, Body: json.RawMessage(body)}
	}
	return api.Result{Error: true, Status: 404, Body: json.RawMessage(`{"error":true}`)}
}

func newShell(t *testing.T, b backend) (*Shell, *bytes.Buffer) {
	t.Helper()
	log.SetDefault(log.Discard())

	out := &bytes.Buffer{}
	term := NewTerminal(out)
	store := session.NewStore(session.NewMemoryBackend())
	sd := services.Deps{Client: b, Logger: log.Discard()}
	a, err := app.New(app.Config{
		Document: term,
		History:  router.NewMemoryHistory("/"),
		Fetcher:  router.NewFSFetcher(web.TemplatesFS),
		Profile:  store,
	}, views.Deps{
		Alert:      term,
		Session:    store,
		Auth:       services.NewAuth(sd),
		Balance:    services.NewBalance(sd),
		Income:     services.NewCategories(core.Income, sd),
		Expense:    services.NewCategories(core.Expense, sd),
		Operations: services.NewOperations(sd),
		Logger:     log.Discard(),
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	return New(a, term, out), out
}

func TestShellSession(t *testing.T) {
	s, out := newShell(t, backend{
		"POST /login":                  `{"tokens":{"accessToken":"a","refreshToken":"r"},"user":{"id":3,"name":"Иван","lastName":"Петров"}}`,
		"GET /balance":                 `{"balance":320}`,
		"GET /operations?period=today": `[]`,
		"GET /operations?period=month": `[{"id":1,"type":"income","amount":500,"date":"2024-01-02","comment":"","category":"Зарплата"}]`,
	})

	script := strings.Join([]string{
		"page",
		"set email ivan@mail.ru",
		"set password Secret123",
		"do submit",
		"show",
		"do SetPeriod month",
		"show",
		"frobnicate",
		"quit",
		"page",
	}, "\n")
	if err := s.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"== Авторизация | Lumincoin Finance ==",
		"Вход в систему",
		"links: /sign-up",
		"inputs: email password remember-me",
		"== Главная | Lumincoin Finance ==",
		`layout.BalanceLabel = 320$`,
		"Filter.Period = today",
		"IncomePie.Empty = true",
		"Filter.Period = month",
		"IncomePie.Empty = false",
		`error: unknown command "frobnicate"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "Вход в систему") != 1 {
		t.Errorf("commands after quit ran:\n%s", got)
	}
}

func TestExecErrors(t *testing.T) {
	s, _ := newShell(t, backend{})
	ctx := context.Background()

	tests := []struct {
		line string
		want string
	}{
		{"open", "usage: open"},
		{"click", "usage: click"},
		{"set", "usage: set"},
		{"do", "usage: do"},
		{"do layout.OpenEditor", "no active view"},
		{"set nope 1", "no active view"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := s.Exec(ctx, tt.line)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Exec(%q) error = %v, want %q", tt.line, err, tt.want)
			}
		})
	}

	if err := s.Exec(ctx, "   "); err != nil {
		t.Errorf("blank line error = %v", err)
	}
}
