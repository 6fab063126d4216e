package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	ChangeDir(ctx context.Context, args []string) error
	MakeDir(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	RemoveDir(ctx context.Context, args []string) error
	Put(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
}

type command struct {
	minArgs int
	usage   string
	auth    bool
	run     func(execIface, context.Context, []string) error
}

var commands = map[string]command{
	"register": {run: execIface.Register},
	"login":    {run: execIface.Login},
	"logout":   {auth: true, run: execIface.Logout},
	"ls":       {auth: true, run: execIface.List},
	"cd":       {auth: true, minArgs: 1, usage: "cd <folder-id|..|home>", run: execIface.ChangeDir},
	"mkdir":    {auth: true, minArgs: 1, usage: "mkdir <name>", run: execIface.MakeDir},
	"rename":   {auth: true, minArgs: 2, usage: "rename <folder-id> <name>", run: execIface.Rename},
	"rmdir":    {auth: true, minArgs: 1, usage: "rmdir <folder-id>", run: execIface.RemoveDir},
	"put":      {auth: true, minArgs: 1, usage: "put <path>", run: execIface.Put},
	"get":      {auth: true, minArgs: 1, usage: "get <file-id> [dest]", run: execIface.Get},
	"rm":       {auth: true, minArgs: 1, usage: "rm <file-id>", run: execIface.Remove},
}

// runREPL starts a simple read-eval-print loop for the GophDrive CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - ls [id]                  list the current (or given) folder
//	  - cd <id|..|home>          change the current folder
//	  - mkdir <name>             create a subfolder here
//	  - rename <id> <name>       rename a folder
//	  - rmdir <id>               delete a folder and everything in it
//	  - put <path>               upload a local file here
//	  - get <file-id> [dest]     download a file
//	  - rm <file-id>             delete a file
//	  - logout                   log out
//
// Command errors are printed and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gd %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: ls, cd, mkdir, rename, rmdir, put, get, rm, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := commands[name]
		switch {
		case !ok:
			printlnFn("Unknown command:", name)
		case cmd.auth && !a.isLoggedIn():
			printlnFn("Please login first")
		case len(args) < cmd.minArgs:
			printlnFn("Usage:", cmd.usage)
		default:
			if err := cmd.run(a, ctx, args); err != nil {
				printlnFn("Error:", describe(err))
			}
		}
	}
}

// describe turns client errors into short user-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please login again"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
