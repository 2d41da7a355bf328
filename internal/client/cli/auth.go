package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raidellg/blocnotes/internal/common"
)

func (a *App) login(ctx context.Context) {
	token, err := GetSecret("Paste access token", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if token == "" {
		fmt.Println("No token given")
		return
	}

	owner, err := a.session.SignIn(ctx, token)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}

	a.userName = owner.Email
	if a.userName == "" {
		a.userName = owner.ID
	}
	fmt.Println("Logged in as", a.userName)
}

func (a *App) logout(ctx context.Context) {
	if err := a.session.SignOut(ctx); err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.userName = ""
	fmt.Println("Logged out")
}

func (a *App) whoami(ctx context.Context) {
	owner, err := a.session.CurrentOwner(ctx)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		fmt.Println("Not logged in")
	case errors.Is(err, common.ErrorSessionExpired):
		fmt.Println("Session expired, please login again")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Printf("%s (%s)\n", owner.Email, owner.ID)
	}
}
