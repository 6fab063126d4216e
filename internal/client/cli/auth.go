package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}

	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Register(callCtx, userName, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can login now")
	return nil
}

// Login authenticates and moves the session into the user's home folder.
func (a *App) Login(ctx context.Context, _ []string) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Login(callCtx, userName, string(password)); err != nil {
		return err
	}

	a.userName = userName
	if err := a.enter(ctx, ""); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", userName)
	return nil
}

// Logout forgets the tokens and the current folder. Nothing is sent to the
// server.
func (a *App) Logout(_ context.Context, _ []string) error {
	a.api.Logout()
	a.userName = ""
	a.cwd = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
