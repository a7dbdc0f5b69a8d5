package main

import (
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "lumincoin" {
			t.Errorf("expected use 'lumincoin', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has global flags", func(t *testing.T) {
		t.Parallel()
		for name, short := range map[string]string{"verbose": "v", "config": "c"} {
			flag := cmd.PersistentFlags().Lookup(name)
			if flag == nil {
				t.Fatalf("expected %s flag", name)
			}
			if flag.Shorthand != short {
				t.Errorf("%s shorthand = %q, want %q", name, flag.Shorthand, short)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := []string{"login", "signup", "logout", "balance", "categories", "operations", "dashboard", "export", "shell", "events", "version"}
		for _, name := range want {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("missing subcommand %q", name)
			}
		}
	})

	t.Run("categories has both ledgers", func(t *testing.T) {
		t.Parallel()
		for _, path := range [][]string{
			{"categories", "income", "list"},
			{"categories", "expense", "rename"},
			{"operations", "update"},
			{"balance", "set"},
		} {
			sub, _, err := cmd.Find(path)
			if err != nil || sub.Name() != path[len(path)-1] {
				t.Errorf("Find(%v) = %v, %v", path, sub, err)
			}
		}
	})
}
