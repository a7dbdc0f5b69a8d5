package views

import (
	"context"

	"lumincoin/internal/core"
	"lumincoin/internal/log"
	"lumincoin/internal/services"
	"lumincoin/internal/session"
	"lumincoin/internal/validation"
)

// Login is the sign-in form.
type Login struct {
	base
	Email      validation.Field
	Password   validation.Field
	RememberMe bool
	// CommonError is shown when the backend rejected the credentials.
	CommonError bool
}

// NewLogin sends signed-in users to the dashboard and returns nil.
func NewLogin(ctx context.Context, d Deps) (*Login, error) {
	b := newBase(d)
	if b.signedIn(ctx) {
		return nil, b.open(ctx, "/")
	}
	return &Login{
		base:     b,
		Email:    validation.Field{Name: "email"},
		Password: validation.Field{Name: "password"},
	}, nil
}

func (v *Login) rules() []validation.Rule {
	return []validation.Rule{
		validation.Required(&v.Password),
		{Field: &v.Email, Pattern: validation.Email},
	}
}

// Submit validates the form and signs in.
func (v *Login) Submit(ctx context.Context) error {
	v.CommonError = false
	if !validation.ValidateForm(v.rules()) {
		return nil
	}

	res, ok := v.Auth.Login(ctx, services.LoginRequest{
		Email:      v.Email.Value,
		Password:   v.Password.Value,
		RememberMe: v.RememberMe,
	})
	if !ok {
		v.CommonError = true
		return nil
	}
	return v.startSession(ctx, res)
}

func (b base) startSession(ctx context.Context, res services.LoginResponse) error {
	user := core.User{ID: res.User.ID, Name: res.User.Name, LastName: res.User.LastName}
	if err := b.Session.Write(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken, &user); err != nil {
		return err
	}
	b.Logger.InfoContext(ctx, "Signed in", log.FieldOperation, log.OpLogin, log.FieldID, user.ID)
	return b.open(ctx, "/")
}

// Signup is the registration form. On success the user is signed in with
// the same credentials.
type Signup struct {
	base
	Name           validation.Field
	LastName       validation.Field
	Email          validation.Field
	Password       validation.Field
	PasswordRepeat validation.Field
	CommonError    bool
}

func NewSignup(ctx context.Context, d Deps) (*Signup, error) {
	b := newBase(d)
	if b.signedIn(ctx) {
		return nil, b.open(ctx, "/")
	}
	return &Signup{
		base:           b,
		Name:           validation.Field{Name: "name"},
		LastName:       validation.Field{Name: "last-name"},
		Email:          validation.Field{Name: "email"},
		Password:       validation.Field{Name: "password"},
		PasswordRepeat: validation.Field{Name: "repeat-password"},
	}, nil
}

func (v *Signup) rules() []validation.Rule {
	return []validation.Rule{
		{Field: &v.Name, Pattern: validation.Name},
		{Field: &v.LastName, Pattern: validation.Name},
		{Field: &v.Email, Pattern: validation.Email},
		{Field: &v.Password, Pattern: validation.Password},
		{Field: &v.PasswordRepeat, CompareTo: &v.Password},
	}
}

func (v *Signup) Submit(ctx context.Context) error {
	v.CommonError = false
	if !validation.ValidateForm(v.rules()) {
		return nil
	}

	_, ok := v.Auth.Signup(ctx, services.SignupRequest{
		Name:           v.Name.Value,
		LastName:       v.LastName.Value,
		Email:          v.Email.Value,
		Password:       v.Password.Value,
		PasswordRepeat: v.PasswordRepeat.Value,
	})
	if ok {
		res, ok := v.Auth.Login(ctx, services.LoginRequest{
			Email:    v.Email.Value,
			Password: v.Password.Value,
		})
		if ok {
			return v.startSession(ctx, res)
		}
	}
	v.CommonError = true
	return nil
}

// Logout ends the session on the backend and locally, then opens the login
// page.
func Logout(ctx context.Context, d Deps) error {
	b := newBase(d)
	refresh, err := b.Session.Get(ctx, session.RefreshTokenKey)
	if err != nil {
		b.Logger.WarnContext(ctx, "Failed to read refresh token", log.FieldError, err)
	}
	if refresh != "" {
		b.Auth.Logout(ctx, refresh)
	}
	if err := b.Session.Clear(ctx); err != nil {
		b.Logger.ErrorContext(ctx, "Failed to clear session", log.FieldError, err)
	}
	return b.open(ctx, "/login")
}
