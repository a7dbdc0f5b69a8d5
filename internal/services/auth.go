package services

import (
	"context"
	"net/http"

	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
	"lumincoin/internal/log"
)

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type LoginResponse struct {
	Tokens core.Tokens `json:"tokens"`
	User   core.User   `json:"user"`
}

type SignupRequest struct {
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

type SignupResponse struct {
	User core.User `json:"user"`
}

type Auth struct {
	base
}

func NewAuth(d Deps) *Auth {
	return &Auth{base: newBase(d)}
}

// Login authenticates without an access token. The second return value is
// false when the backend rejected the credentials or answered with an
// incomplete payload.
func (a *Auth) Login(ctx context.Context, req LoginRequest) (LoginResponse, bool) {
	res := a.client.Request(ctx, "/login", http.MethodPost, false, req)
	if !accepted(res, "tokens.accessToken", "tokens.refreshToken", "user.id", "user.name", "user.lastName") {
		a.logger.InfoContext(ctx, "Login rejected", log.FieldOperation, log.OpLogin, log.FieldStatusCode, res.Status)
		return LoginResponse{}, false
	}
	out := decode[LoginResponse](ctx, a.base, i18n.MsgLoginFailed, res)
	return out.Value, out.OK()
}

// Signup registers a user. It does not log in.
func (a *Auth) Signup(ctx context.Context, req SignupRequest) (SignupResponse, bool) {
	res := a.client.Request(ctx, "/signup", http.MethodPost, false, req)
	if !accepted(res, "user.id", "user.name", "user.lastName", "user.email") {
		a.logger.InfoContext(ctx, "Signup rejected", log.FieldOperation, log.OpSignup, log.FieldStatusCode, res.Status)
		return SignupResponse{}, false
	}
	out := decode[SignupResponse](ctx, a.base, i18n.MsgSignupFailed, res)
	return out.Value, out.OK()
}

// Logout invalidates the refresh token on the backend. The outcome is not
// reported; callers clear the local session regardless.
func (a *Auth) Logout(ctx context.Context, refreshToken string) {
	res := a.client.Request(ctx, "/logout", http.MethodPost, false, map[string]string{"refreshToken": refreshToken})
	if res.Error {
		a.logger.InfoContext(ctx, "Logout request failed", log.FieldOperation, log.OpLogout, log.FieldStatusCode, res.Status)
	}
}
