package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/i18n"
	"lumincoin/internal/validation"
	"lumincoin/internal/views"
)

func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE:  run(runLogin),
	}
	cmd.Flags().StringP("email", "e", "", "Account email")
	cmd.Flags().StringP("password", "P", "", "Account password")
	cmd.Flags().BoolP("remember", "r", false, "Ask for a long-lived refresh token")
	return cmd
}

func runLogin(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	rec := &recorder{}
	d := rt.Deps
	d.Nav, d.Alert = rec, rec

	v, err := views.NewLogin(ctx, d)
	if err != nil {
		return err
	}
	if v == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "already signed in")
		return nil
	}

	v.Email.Value, _ = cmd.Flags().GetString("email")
	v.Password.Value, _ = cmd.Flags().GetString("password")
	v.RememberMe, _ = cmd.Flags().GetBool("remember")
	if err := v.Submit(ctx); err != nil {
		return err
	}
	if err := invalid(&v.Email, &v.Password); err != nil {
		return err
	}
	if v.CommonError {
		return errors.New(rt.Messages.T(i18n.MsgLoginFailed))
	}

	user, err := rt.Session.User(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", user.FullName())
	return nil
}

func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE:  run(runSignup),
	}
	cmd.Flags().String("name", "", "First name (Cyrillic, capitalized)")
	cmd.Flags().String("last-name", "", "Last name (Cyrillic, capitalized)")
	cmd.Flags().StringP("email", "e", "", "Account email")
	cmd.Flags().StringP("password", "P", "", "Password: 8+ latin letters and digits with upper, lower case and a digit")
	cmd.Flags().String("password-repeat", "", "Password confirmation (defaults to --password)")
	return cmd
}

func runSignup(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	rec := &recorder{}
	d := rt.Deps
	d.Nav, d.Alert = rec, rec

	v, err := views.NewSignup(ctx, d)
	if err != nil {
		return err
	}
	if v == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "already signed in")
		return nil
	}

	flags := cmd.Flags()
	v.Name.Value, _ = flags.GetString("name")
	v.LastName.Value, _ = flags.GetString("last-name")
	v.Email.Value, _ = flags.GetString("email")
	v.Password.Value, _ = flags.GetString("password")
	v.PasswordRepeat.Value, _ = flags.GetString("password-repeat")
	if !flags.Changed("password-repeat") {
		v.PasswordRepeat.Value = v.Password.Value
	}

	if err := v.Submit(ctx); err != nil {
		return err
	}
	if err := invalid(&v.Name, &v.LastName, &v.Email, &v.Password, &v.PasswordRepeat); err != nil {
		return err
	}
	if v.CommonError {
		return errors.New(rt.Messages.T(i18n.MsgSignupFailed))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "account created, signed in")
	return nil
}

func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
			rec := &recorder{}
			d := rt.Deps
			d.Nav, d.Alert = rec, rec
			if err := views.Logout(ctx, d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		}),
	}
}

// invalid reports the form fields that failed validation.
func invalid(fields ...*validation.Field) error {
	var names []string
	for _, f := range fields {
		if f.Invalid {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("invalid input: %s", strings.Join(names, ", "))
}
