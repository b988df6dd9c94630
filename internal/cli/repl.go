package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	ResendCode(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ResetRequest(ctx context.Context, args []string) error
	ResetPassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	AddNote(ctx context.Context, in *models.NoteInput) error
	EditNote(ctx context.Context, id string, in *models.NoteInput) error
	ToggleNote(ctx context.Context, id string) error
	DeleteNotes(ctx context.Context, ids []string) error
	ShowNote(ctx context.Context, id string) error
	Stats(ctx context.Context) error
	Browse(ctx context.Context, op string, args []string) error

	SetAlarm(ctx context.Context, title, at string) error
	ListAlarms(ctx context.Context) error

	ShowDraft(ctx context.Context) error
	ClearDraft(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	Language(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, verify [email] [code], resend [email], login [email], " +
		"reset [email], newpass, theme [light|dark|toggle], lang [en|ar], exit"
	helpUser = "Available commands: (l)ist, add, show <id>, edit <id>, toggle <id>, delete <id...>, " +
		"search <text>, filter <all|completed|pending|today|week>, sort <newest|oldest|title|completed>, " +
		"page <n>, next, prev, select <id...>, selectall, delsel, stats, alarm, alarms, draft, discard, " +
		"theme, lang, whoami, logout, delete-account, exit"
)

// runREPL starts a read–eval–print loop over reader.
//
// It reads a line, parses the first token as the command and dispatches to
// methods on a. Command prompts read from the same reader, so the loop and
// the handlers share one buffer. Handler errors are rendered as error
// banners and the loop carries on. It exits on EOF, on "exit" or "quit",
// or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("todo%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(banner(bannerError, err.Error()))
		}
	}
}

func needID(args []string, cmd string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: %s <id>", cmd)
	}
	return args[0], nil
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpUser)
		} else {
			printlnFn(helpGuest)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "verify":
		return a.Verify(ctx, args)
	case "resend":
		return a.ResendCode(ctx, args)
	case "login":
		return a.Login(ctx, args)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "reset":
		return a.ResetRequest(ctx, args)
	case "newpass":
		return a.ResetPassword(ctx)
	case "delete-account":
		return a.DeleteAccount(ctx)

	case "add":
		return a.AddNote(ctx, nil)
	case "show", "edit", "toggle":
		id, err := needID(args, cmd)
		if err != nil {
			return err
		}
		switch cmd {
		case "show":
			return a.ShowNote(ctx, id)
		case "edit":
			return a.EditNote(ctx, id, nil)
		}
		return a.ToggleNote(ctx, id)
	case "delete", "rm":
		return a.DeleteNotes(ctx, args)
	case "stats":
		return a.Stats(ctx)
	case "l", "list":
		return a.Browse(ctx, "list", args)
	case "search", "filter", "sort", "page", "next", "prev", "select", "selectall", "delsel":
		return a.Browse(ctx, cmd, args)

	case "alarm":
		return a.SetAlarm(ctx, "", "")
	case "alarms":
		return a.ListAlarms(ctx)

	case "draft":
		return a.ShowDraft(ctx)
	case "discard":
		return a.ClearDraft(ctx)
	case "theme":
		return a.Theme(ctx, args)
	case "lang":
		return a.Language(ctx, args)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}
