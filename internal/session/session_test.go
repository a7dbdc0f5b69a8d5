package session

import (
	"context"
	"errors"
	"testing"

	"lumincoin/internal/core"
)

type failingBackend struct {
	*MemoryBackend
	failRemove string
}

func (f *failingBackend) RemoveItem(ctx context.Context, key string) error {
	if key == f.failRemove {
		return errors.New("disk full")
	}
	return f.MemoryBackend.RemoveItem(ctx, key)
}

func TestStore_WriteSnapshotClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend())

	user := &core.User{ID: 7, Name: "Анна", LastName: "Смирнова"}
	if err := s.Write(ctx, "a1", "r1", user); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if info.AccessToken != "a1" || info.RefreshToken != "r1" {
		t.Errorf("tokens = %q/%q", info.AccessToken, info.RefreshToken)
	}
	if info.UserInfo != `{"id":7,"name":"Анна","lastName":"Смирнова"}` {
		t.Errorf("UserInfo = %s", info.UserInfo)
	}

	got, err := s.User(ctx)
	if err != nil || got == nil || got.FullName() != "Анна Смирнова" {
		t.Errorf("User() = %+v, %v", got, err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	info, _ = s.Snapshot(ctx)
	if info != (Info{}) {
		t.Errorf("expected empty snapshot after Clear, got %+v", info)
	}
	if u, err := s.User(ctx); u != nil || err != nil {
		t.Errorf("User() after Clear = %+v, %v", u, err)
	}
}

func TestStore_WriteWithoutUserKeepsProfile(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend())

	if err := s.Write(ctx, "a1", "r1", &core.User{ID: 1, Name: "Олег", LastName: "Ким"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(ctx, "a2", "r2", nil); err != nil {
		t.Fatal(err)
	}

	info, _ := s.Snapshot(ctx)
	if info.AccessToken != "a2" || info.RefreshToken != "r2" {
		t.Errorf("tokens not replaced: %+v", info)
	}
	if info.UserInfo == "" {
		t.Error("profile should survive a token-only write")
	}
}

func TestStore_UnknownKey(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	if _, err := s.Get(context.Background(), Key("sessionId")); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get() error = %v, want ErrUnknownKey", err)
	}
}

func TestStore_ClearAttemptsEveryKey(t *testing.T) {
	ctx := context.Background()
	b := &failingBackend{MemoryBackend: NewMemoryBackend(), failRemove: string(AccessTokenKey)}
	s := NewStore(b)
	_ = s.Write(ctx, "a", "r", &core.User{ID: 1})

	if err := s.Clear(ctx); err == nil {
		t.Fatal("expected error from failing backend")
	}
	if b.Len() != 1 {
		t.Errorf("expected only the failing key to remain, got %d entries", b.Len())
	}
	if tok := s.AccessToken(ctx); tok != "a" {
		t.Errorf("AccessToken() = %q", tok)
	}
}

func TestInfo_UserCorrupt(t *testing.T) {
	if _, err := (Info{UserInfo: "{"}).User(); err == nil {
		t.Error("expected decode error")
	}
}
