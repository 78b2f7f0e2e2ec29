package cli

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for a display name, email and password and creates
// a new account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Success!"
	}
	printlnFn(Success.Sprint(msg))
	return nil
}

// Login prompts for credentials and stores the resulting session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	printlnFn(Success.Sprintf("Welcome, %s!", user.Name))
	return nil
}

// Logout forgets the stored session. Cached stories and queued uploads stay
// on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
