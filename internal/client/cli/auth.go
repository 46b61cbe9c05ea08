package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/climatetracker/internal/client/apiclient"
	"github.com/dmitrijs2005/climatetracker/internal/common"
)

// getSimpleText, getPassword and getNumber are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getNumber     = GetNumber
)

// Register prompts the user for a username and password and creates a new
// account.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			fmt.Fprintln(a.out, "Username already exists.")
		} else {
			log.Printf("Registration unsuccessfull: %s", err.Error())
		}
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. A server
// that cannot be reached switches the prompt to offline mode.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, password); err != nil {
		switch {
		case errors.Is(err, apiclient.ErrUnavailable):
			log.Printf("Server unavailable")
			a.setMode(ModeOffline)
		case errors.Is(err, apiclient.ErrUnauthorized):
			fmt.Fprintln(a.out, "Invalid credentials.")
		default:
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successfull")
	a.userName = userName
	a.setMode(ModeOnline)
	return nil
}

// Logout forgets the session tokens.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	return nil
}
