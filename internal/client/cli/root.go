package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to blocnotes (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		fmt.Printf("bn %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Notes:    (l)ist [folder], show <id>, add, attach <id> <image|audio> <path>, tag <id> <tags...>, move <id> <folder>")
			fmt.Println("Trash:    trash <id>, restore <id>")
			fmt.Println("Folders:  folders, addfolder <name>, rmfolder <id>")
			fmt.Println("Account:  login, logout, whoami")
			fmt.Println("Other:    sync, tags, exit")

		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami(ctx)

		case "l", "list":
			a.list(args)
		case "show":
			a.show(args)
		case "add":
			a.addNote(ctx)
		case "attach":
			a.attach(ctx, args)
		case "tag":
			a.tag(ctx, args)
		case "tags":
			a.tags()
		case "move":
			a.move(ctx, args)

		case "trash":
			a.trash(ctx, args)
		case "restore":
			a.restore(ctx, args)

		case "folders":
			a.folders()
		case "addfolder":
			a.addFolder(ctx, args)
		case "rmfolder":
			a.rmFolder(ctx, args)

		case "sync":
			a.sync(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
