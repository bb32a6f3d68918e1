package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email, and password and creates a new
// account. A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	return a.sess.Register(ctx, name, email, password)
}

// Login prompts for credentials and authenticates against the local store.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	return a.sess.Login(ctx, email, password)
}

// ChangePassword verifies the current password and replaces it.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}

	return a.sess.ChangePassword(ctx, current, next)
}

// Logout ends the session. Resource stores clear themselves via their
// session subscription.
func (a *App) Logout(ctx context.Context) error {
	a.sess.Logout(ctx)
	return nil
}

func (a *App) getStatus() string {
	if id := a.sess.Current(); id != nil {
		return fmt.Sprintf("(%s)", id.Name)
	}
	return ""
}
