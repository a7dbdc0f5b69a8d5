package shell

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lumincoin/internal/validation"
)

type inner struct{ hidden string }

type Form struct {
	Comment string
}

type sample struct {
	inner
	Form
	Email  validation.Field
	Count  int
	Ready  bool
	Nested struct{ Label string }
	calls  []string
}

func (s *sample) Save(ctx context.Context) error {
	if ctx == nil {
		return errors.New("nil context")
	}
	s.calls = append(s.calls, "save")
	return nil
}

func (s *sample) Pick(id int, label string) {
	s.calls = append(s.calls, label)
	s.Count = id
}

func (s *sample) Fail() error { return errors.New("boom") }

func TestEntries(t *testing.T) {
	s := &sample{Email: validation.Field{Value: "x", Invalid: true}, Count: 2}
	s.Comment = "c"
	s.Nested.Label = "n"

	var got []string
	for _, e := range Entries(s) {
		got = append(got, e.Path+"="+e.Value)
	}
	want := `Comment=c|Email="x" (invalid)|Count=2|Ready=false|Nested.Label=n`
	if strings.Join(got, "|") != want {
		t.Errorf("Entries() = %s, want %s", strings.Join(got, "|"), want)
	}

	if Entries(nil) != nil {
		t.Error("Entries(nil) should be nil")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		path, value string
		wantErr     error
		check       func(*sample) bool
	}{
		{path: "email", value: "a@b.c", check: func(s *sample) bool { return s.Email.Value == "a@b.c" }},
		{path: "COUNT", value: "7", check: func(s *sample) bool { return s.Count == 7 }},
		{path: "ready", value: "true", check: func(s *sample) bool { return s.Ready }},
		{path: "comment", value: "hi", check: func(s *sample) bool { return s.Comment == "hi" }},
		{path: "nested.label", value: "L", check: func(s *sample) bool { return s.Nested.Label == "L" }},
		{path: "missing", value: "x", wantErr: ErrUnknownField},
		{path: "hidden", value: "x", wantErr: ErrUnknownField},
		{path: "count.x", value: "1", wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := &sample{}
			err := Set(s, tt.path, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if !tt.check(s) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tt.path, tt.value, s)
			}
		})
	}

	if err := Set(&sample{}, "count", "many"); err == nil {
		t.Error("expected parse error")
	}
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	s := &sample{}

	if err := Invoke(ctx, s, "save", nil); err != nil {
		t.Fatalf("Invoke(save) error = %v", err)
	}
	if err := Invoke(ctx, s, "Pick", []string{"4", "four"}); err != nil {
		t.Fatalf("Invoke(Pick) error = %v", err)
	}
	if s.Count != 4 || strings.Join(s.calls, ",") != "save,four" {
		t.Errorf("state = %+v", s)
	}

	if err := Invoke(ctx, s, "Pick", []string{"4"}); err == nil {
		t.Error("expected missing argument error")
	}
	if err := Invoke(ctx, s, "Fail", nil); err == nil || err.Error() != "boom" {
		t.Errorf("Invoke(Fail) error = %v", err)
	}
	if err := Invoke(ctx, s, "nope", nil); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("Invoke(nope) error = %v", err)
	}
	if err := Invoke(ctx, nil, "save", nil); !errors.Is(err, ErrNoView) {
		t.Errorf("Invoke(nil) error = %v", err)
	}
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage(strings.NewReader(`<div><h1> Доходы </h1>
<a href="/income/create">Создать</a><script>var x = 1;</script>
<input id="titleInput"><select id="categorySelect"></select></div>`))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(p.Text, "|") != "Доходы|Создать" {
		t.Errorf("Text = %q", p.Text)
	}
	if len(p.Links) != 1 || p.Links[0] != "/income/create" {
		t.Errorf("Links = %v", p.Links)
	}
	if strings.Join(p.Inputs, ",") != "titleInput,categorySelect" {
		t.Errorf("Inputs = %v", p.Inputs)
	}
}
