package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	DealerLogin(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Save(ctx context.Context, args []string) error
	Unsave(ctx context.Context, args []string) error
	ListSaved(ctx context.Context) error
	Dashboard(ctx context.Context) error
	AdminPanel(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the HaulBay CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	help                       — show available commands
//	login                      — unified sign in (user or dealer account)
//	dealer-login               — dealer sign in
//	admin-login                — admin sign in
//	logout                     — sign out of every active session
//	status                     — show identity resolution state
//	save <truck|trailer> <id>  — save a listing
//	unsave <truck|trailer> <id> — remove a saved listing
//	saved                      — list saved listings
//	dashboard                  — dealer area (guarded)
//	admin                      — admin area (guarded)
//	exit | quit                — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hb> %s", statusFn()))
		if !scanner.Scan() {
			return
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
			if a.isLoggedIn() {
				printlnFn("Available commands: status, save, unsave, saved, dashboard, admin, logout, exit")
			} else {
				printlnFn("Available commands: login, dealer-login, admin-login, status, save, unsave, saved, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "dealer-login":
			_ = a.DealerLogin(ctx)

		case "admin-login":
			_ = a.AdminLogin(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status", "whoami":
			_ = a.Status(ctx)

		case "save":
			_ = a.Save(ctx, args)

		case "unsave":
			_ = a.Unsave(ctx, args)

		case "saved":
			_ = a.ListSaved(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "admin":
			_ = a.AdminPanel(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
