// Package session keeps the authenticated session (access token, refresh
// token and profile) in a pluggable key-value backend.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lumincoin/internal/core"
)

// Key names one of the three persisted session entries.
type Key string

const (
	AccessTokenKey  Key = "accessToken"
	RefreshTokenKey Key = "refreshToken"
	UserInfoKey     Key = "userInfo"
)

// Keys lists every session key in storage order.
var Keys = []Key{AccessTokenKey, RefreshTokenKey, UserInfoKey}

var ErrUnknownKey = errors.New("unknown session key")

// Backend is a string key-value store. Missing keys report ok=false.
type Backend interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Info is a snapshot of all three entries. Absent entries are empty.
type Info struct {
	AccessToken  string
	RefreshToken string
	UserInfo     string
}

// User decodes UserInfo. It returns nil when no profile is stored.
func (i Info) User() (*core.User, error) {
	if i.UserInfo == "" {
		return nil, nil
	}
	var u core.User
	if err := json.Unmarshal([]byte(i.UserInfo), &u); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &u, nil
}

type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func valid(key Key) bool {
	return key == AccessTokenKey || key == RefreshTokenKey || key == UserInfoKey
}

// Get returns the stored value for a recognised key, or "" if absent.
func (s *Store) Get(ctx context.Context, key Key) (string, error) {
	if !valid(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	v, _, err := s.backend.GetItem(ctx, string(key))
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

// Snapshot returns all three entries at once.
func (s *Store) Snapshot(ctx context.Context) (Info, error) {
	var info Info
	var err error
	if info.AccessToken, err = s.Get(ctx, AccessTokenKey); err != nil {
		return Info{}, err
	}
	if info.RefreshToken, err = s.Get(ctx, RefreshTokenKey); err != nil {
		return Info{}, err
	}
	if info.UserInfo, err = s.Get(ctx, UserInfoKey); err != nil {
		return Info{}, err
	}
	return info, nil
}

// AccessToken is a convenience for Get(AccessTokenKey). Backend errors are
// treated as "no token".
func (s *Store) AccessToken(ctx context.Context) string {
	v, err := s.Get(ctx, AccessTokenKey)
	if err != nil {
		return ""
	}
	return v
}

// User returns the stored profile, nil if none.
func (s *Store) User(ctx context.Context) (*core.User, error) {
	raw, err := s.Get(ctx, UserInfoKey)
	if err != nil {
		return nil, err
	}
	return Info{UserInfo: raw}.User()
}

// Write stores both tokens. The profile is only written when user is non-nil,
// so a token refresh keeps the existing profile.
func (s *Store) Write(ctx context.Context, accessToken, refreshToken string, user *core.User) error {
	if err := s.backend.SetItem(ctx, string(AccessTokenKey), accessToken); err != nil {
		return fmt.Errorf("set access token: %w", err)
	}
	if err := s.backend.SetItem(ctx, string(RefreshTokenKey), refreshToken); err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	if user == nil {
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user info: %w", err)
	}
	if err := s.backend.SetItem(ctx, string(UserInfoKey), string(data)); err != nil {
		return fmt.Errorf("set user info: %w", err)
	}
	return nil
}

// Clear removes all session entries. Every key is attempted even if one fails.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range Keys {
		if err := s.backend.RemoveItem(ctx, string(key)); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
