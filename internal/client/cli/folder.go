package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) folders() {
	for _, f := range a.store.Folders() {
		count := len(a.store.NotesByFolder(f.ID))
		fmt.Printf("%-10s %s (%d)\n", f.ID, f.Name, count)
	}
}

func (a *App) addFolder(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: addfolder <name>")
		return
	}
	name := strings.Join(args, " ")

	f, err := a.store.AddFolder(ctx, name)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Added folder", f.Name, "("+f.ID+")")
}

func (a *App) rmFolder(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: rmfolder <id>")
		return
	}

	if err := a.store.DeleteFolder(ctx, args[0]); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Removed folder", args[0])
}
