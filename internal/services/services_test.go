package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"lumincoin/internal/api"
	"lumincoin/internal/core"
	"lumincoin/internal/events"
	"lumincoin/internal/log"
)

type call struct {
	path    string
	method  string
	useAuth bool
	body    string
}

// fakeRequester answers every request with the same result and records calls.
type fakeRequester struct {
	result api.Result
	calls  []call
}

func (f *fakeRequester) Request(_ context.Context, path, method string, useAuth bool, body any) api.Result {
	c := call{path: path, method: method, useAuth: useAuth}
	if body != nil {
		b, _ := json.Marshal(body)
		c.body = string(b)
	}
	f.calls = append(f.calls, c)
	return f.result
}

type fakePublisher struct {
	published []events.LedgerEvent
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, e events.LedgerEvent) error {
	f.published = append(f.published, e)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

// echoMessages returns message IDs unchanged.
type echoMessages struct{}

func (echoMessages) T(id string) string { return id }

func ok(body string) api.Result {
	return api.Result{Status: 200, Body: json.RawMessage(body)}
}

func deps(r *fakeRequester, p events.Publisher) Deps {
	return Deps{Client: r, Messages: echoMessages{}, Events: p, Logger: log.Discard()}
}

func TestAccepted(t *testing.T) {
	tests := []struct {
		name     string
		res      api.Result
		required []string
		want     bool
	}{
		{"object", ok(`{"id":1}`), nil, true},
		{"array", ok(`[]`), nil, true},
		{"transport error", api.Result{Error: true, Body: json.RawMessage(`{"id":1}`)}, nil, false},
		{"redirect", api.Result{Redirect: "/login"}, nil, false},
		{"empty body", api.Result{Status: 200}, nil, false},
		{"null body", ok(`null`), nil, false},
		{"error flag", ok(`{"error":true,"message":"bad"}`), nil, false},
		{"error false", ok(`{"error":false,"id":2}`), []string{"id"}, true},
		{"missing field", ok(`{"id":1}`), []string{"id", "title"}, false},
		{"empty field", ok(`{"id":1,"title":""}`), []string{"id", "title"}, false},
		{"nested", ok(`{"user":{"id":3}}`), []string{"user.id"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accepted(tt.res, tt.required...); got != tt.want {
				t.Errorf("accepted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := &fakeRequester{result: ok(`{"tokens":{"accessToken":"a","refreshToken":"r"},"user":{"id":7,"name":"Иван","lastName":"Петров"}}`)}
		got, success := NewAuth(deps(r, nil)).Login(context.Background(), LoginRequest{Email: "a@b.ru", Password: "Passw0rd1", RememberMe: true})
		if !success {
			t.Fatal("Login() = false, want true")
		}
		if got.Tokens.AccessToken != "a" || got.User.FullName() != "Иван Петров" {
			t.Errorf("Login() = %+v", got)
		}
		c := r.calls[0]
		if c.path != "/login" || c.method != "POST" || c.useAuth {
			t.Errorf("call = %+v", c)
		}
		if c.body != `{"email":"a@b.ru","password":"Passw0rd1","rememberMe":true}` {
			t.Errorf("body = %s", c.body)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		r := &fakeRequester{result: ok(`{"tokens":{"accessToken":"a","refreshToken":"r"}}`)}
		if _, success := NewAuth(deps(r, nil)).Login(context.Background(), LoginRequest{}); success {
			t.Error("Login() = true, want false")
		}
	})

	t.Run("rejected", func(t *testing.T) {
		r := &fakeRequester{result: api.Result{Error: true, Status: 400, Body: json.RawMessage(`{"error":true}`)}}
		if _, success := NewAuth(deps(r, nil)).Login(context.Background(), LoginRequest{}); success {
			t.Error("Login() = true, want false")
		}
	})
}

func TestAuth_Signup(t *testing.T) {
	r := &fakeRequester{result: ok(`{"user":{"id":1,"name":"Анна","lastName":"Смирнова","email":"a@b.ru"}}`)}
	got, success := NewAuth(deps(r, nil)).Signup(context.Background(), SignupRequest{Name: "Анна"})
	if !success || got.User.ID != 1 {
		t.Fatalf("Signup() = %+v, %v", got, success)
	}
	if r.calls[0].path != "/signup" || r.calls[0].useAuth {
		t.Errorf("call = %+v", r.calls[0])
	}

	r = &fakeRequester{result: ok(`{"user":{"id":1,"name":"Анна","lastName":"Смирнова"}}`)}
	if _, success := NewAuth(deps(r, nil)).Signup(context.Background(), SignupRequest{}); success {
		t.Error("Signup() without email = true, want false")
	}
}

func TestAuth_Logout(t *testing.T) {
	r := &fakeRequester{result: ok(`{}`)}
	NewAuth(deps(r, nil)).Logout(context.Background(), "rt")
	if len(r.calls) != 1 || r.calls[0].body != `{"refreshToken":"rt"}` || r.calls[0].useAuth {
		t.Errorf("calls = %+v", r.calls)
	}
}

func TestBalance(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		r := &fakeRequester{result: ok(`{"balance":1500}`)}
		got := NewBalance(deps(r, nil)).Get(context.Background())
		if !got.OK() || got.Value.String() != "1500" {
			t.Errorf("Get() = %+v", got)
		}
		if r.calls[0].path != "/balance" || r.calls[0].method != "GET" || !r.calls[0].useAuth {
			t.Errorf("call = %+v", r.calls[0])
		}
	})

	t.Run("update", func(t *testing.T) {
		r := &fakeRequester{result: ok(`{"balance":42.5}`)}
		got := NewBalance(deps(r, nil)).Update(context.Background(), core.Money{Cents: 4250})
		if !got.OK() || got.Value.Cents != 4250 {
			t.Errorf("Update() = %+v", got)
		}
		if r.calls[0].method != "PUT" || r.calls[0].body != `{"newBalance":42.5}` {
			t.Errorf("call = %+v", r.calls[0])
		}
	})

	t.Run("redirect", func(t *testing.T) {
		r := &fakeRequester{result: api.Result{Error: true, Redirect: "/login", Status: 401}}
		got := NewBalance(deps(r, nil)).Get(context.Background())
		if got.OK() || got.Redirect != "/login" || got.Err != "balance.get" {
			t.Errorf("Get() = %+v", got)
		}
	})
}

func TestCategories(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		kind       core.Kind
		run        func(c *Categories) (bool, string)
		result     api.Result
		wantPath   string
		wantMethod string
		wantOK     bool
		wantErr    string
	}{
		{
			name: "list income",
			kind: core.Income,
			run: func(c *Categories) (bool, string) {
				r := c.List(ctx)
				return r.OK(), r.Err
			},
			result:     ok(`[{"id":1,"title":"Зарплата"}]`),
			wantPath:   "/categories/income",
			wantMethod: "GET",
			wantOK:     true,
		},
		{
			name: "get expense",
			kind: core.Expense,
			run: func(c *Categories) (bool, string) {
				r := c.Get(ctx, 4)
				return r.OK(), r.Err
			},
			result:     ok(`{"id":4,"title":"Еда"}`),
			wantPath:   "/categories/expense/4",
			wantMethod: "GET",
			wantOK:     true,
		},
		{
			name: "get without title",
			kind: core.Expense,
			run: func(c *Categories) (bool, string) {
				r := c.Get(ctx, 4)
				return r.OK(), r.Err
			},
			result:     ok(`{"id":4}`),
			wantPath:   "/categories/expense/4",
			wantMethod: "GET",
			wantErr:    "expense.get",
		},
		{
			name: "create",
			kind: core.Income,
			run: func(c *Categories) (bool, string) {
				r := c.Create(ctx, "Бонус")
				return r.OK(), r.Err
			},
			result:     ok(`{"id":9,"title":"Бонус"}`),
			wantPath:   "/categories/income",
			wantMethod: "POST",
			wantOK:     true,
		},
		{
			name: "update rejected",
			kind: core.Income,
			run: func(c *Categories) (bool, string) {
				r := c.Update(ctx, 9, "Бонус")
				return r.OK(), r.Err
			},
			result:     ok(`{"error":true,"message":"exists"}`),
			wantPath:   "/categories/income/9",
			wantMethod: "PUT",
			wantErr:    "income.update",
		},
		{
			name: "delete",
			kind: core.Expense,
			run: func(c *Categories) (bool, string) {
				r := c.Delete(ctx, 2)
				return r.OK(), r.Err
			},
			result:     ok(`{"error":false}`),
			wantPath:   "/categories/expense/2",
			wantMethod: "DELETE",
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRequester{result: tt.result}
			gotOK, gotErr := tt.run(NewCategories(tt.kind, deps(r, nil)))
			if gotOK != tt.wantOK || gotErr != tt.wantErr {
				t.Errorf("got (%v, %q), want (%v, %q)", gotOK, gotErr, tt.wantOK, tt.wantErr)
			}
			if len(r.calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(r.calls))
			}
			if r.calls[0].path != tt.wantPath || r.calls[0].method != tt.wantMethod {
				t.Errorf("call = %+v", r.calls[0])
			}
		})
	}
}

func TestCategories_PublishesEvents(t *testing.T) {
	r := &fakeRequester{result: ok(`{"id":9,"title":"Бонус"}`)}
	p := &fakePublisher{}
	c := NewCategories(core.Income, deps(r, p))

	c.Create(context.Background(), "Бонус")
	c.Delete(context.Background(), 9)

	if len(p.published) != 2 {
		t.Fatalf("published %d events, want 2", len(p.published))
	}
	if got := p.published[0].RoutingKey(); got != "category.created" {
		t.Errorf("first routing key = %q", got)
	}
	if p.published[0].ID != 9 || p.published[0].Kind != core.Income {
		t.Errorf("first event = %+v", p.published[0])
	}
	if got := p.published[1].RoutingKey(); got != "category.deleted" {
		t.Errorf("second routing key = %q", got)
	}
}

func TestPublishFailureDoesNotFailCall(t *testing.T) {
	r := &fakeRequester{result: ok(`{"id":3}`)}
	p := &fakePublisher{err: errors.New("broker down")}
	got := NewOperations(deps(r, p)).Delete(context.Background(), 3)
	if !got.OK() {
		t.Errorf("Delete() = %+v, want success", got)
	}
	if len(p.published) != 1 {
		t.Errorf("published %d events, want 1", len(p.published))
	}
}

func TestOperations_List(t *testing.T) {
	tests := []struct {
		name      string
		filter    core.Filter
		wantPath  string
		wantCalls int
		wantOK    bool
	}{
		{"today", core.Filter{Period: core.PeriodToday}, "/operations?period=today", 1, true},
		{"interval", core.Filter{Period: core.PeriodInterval, DateFrom: "01.02.2024", DateTo: "29.02.2024"}, "/operations?period=interval&dateFrom=2024-02-01&dateTo=2024-02-29", 1, true},
		{"interval without dates", core.Filter{Period: core.PeriodInterval}, "/operations?period=interval", 1, true},
		{"bad period", core.Filter{Period: "decade"}, "", 0, false},
		{"bad date", core.Filter{Period: core.PeriodInterval, DateFrom: "2024-02-01", DateTo: "29.02.2024"}, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRequester{result: ok(`[{"id":1,"type":"income","amount":100,"date":"2024-02-01","comment":"","category":"Зарплата"}]`)}
			got := NewOperations(deps(r, nil)).List(context.Background(), tt.filter)
			if got.OK() != tt.wantOK {
				t.Fatalf("List() = %+v", got)
			}
			if len(r.calls) != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", len(r.calls), tt.wantCalls)
			}
			if tt.wantCalls > 0 && r.calls[0].path != tt.wantPath {
				t.Errorf("path = %q, want %q", r.calls[0].path, tt.wantPath)
			}
			if tt.wantOK && (len(got.Value) != 1 || got.Value[0].Category != "Зарплата") {
				t.Errorf("Value = %+v", got.Value)
			}
		})
	}
}

func TestOperations_CreateUpdate(t *testing.T) {
	in := core.OperationInput{
		Type:       core.Expense,
		Amount:     core.Money{Cents: 25000},
		Date:       "2024-03-01",
		Comment:    " ",
		CategoryID: 4,
	}

	r := &fakeRequester{result: ok(`{"id":12,"type":"expense"}`)}
	p := &fakePublisher{}
	ops := NewOperations(deps(r, p))

	if got := ops.Create(context.Background(), in); !got.OK() {
		t.Fatalf("Create() = %+v", got)
	}
	want := `{"type":"expense","amount":250,"date":"2024-03-01","comment":" ","category_id":4}`
	if r.calls[0].path != "/operations" || r.calls[0].method != "POST" || r.calls[0].body != want {
		t.Errorf("create call = %+v", r.calls[0])
	}
	if p.published[0].ID != 12 || p.published[0].RoutingKey() != "operation.created" {
		t.Errorf("event = %+v", p.published[0])
	}

	if got := ops.Update(context.Background(), 12, in); !got.OK() {
		t.Fatalf("Update() = %+v", got)
	}
	if r.calls[1].path != "/operations/12" || r.calls[1].method != "PUT" {
		t.Errorf("update call = %+v", r.calls[1])
	}

	r.result = ok(`{"error":false}`)
	if got := ops.Update(context.Background(), 12, in); got.OK() || got.Err != "operations.update" {
		t.Errorf("Update() without id = %+v", got)
	}
}

func TestOperations_Get(t *testing.T) {
	r := &fakeRequester{result: ok(`{"id":5,"type":"income","amount":"99.90","date":"2024-01-10","comment":"x","category":"Зарплата"}`)}
	got := NewOperations(deps(r, nil)).Get(context.Background(), 5)
	if !got.OK() || got.Value.Amount.Cents != 9990 || got.Value.Type != core.Income {
		t.Errorf("Get() = %+v", got)
	}
}
