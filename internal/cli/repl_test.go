package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) rec(name string, args ...string) error {
	call := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, call)
	if f.failOn == name {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool                         { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error           { return f.rec("register") }
func (f *fakeExec) Verify(_ context.Context, a []string) error { return f.rec("verify", a...) }
func (f *fakeExec) ResendCode(_ context.Context, a []string) error {
	return f.rec("resend", a...)
}
func (f *fakeExec) Login(_ context.Context, a []string) error {
	f.loggedIn = true
	return f.rec("login", a...)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.rec("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.rec("whoami") }
func (f *fakeExec) ResetRequest(_ context.Context, a []string) error {
	return f.rec("reset", a...)
}
func (f *fakeExec) ResetPassword(context.Context) error { return f.rec("newpass") }
func (f *fakeExec) DeleteAccount(context.Context) error { return f.rec("delete-account") }
func (f *fakeExec) AddNote(_ context.Context, in *models.NoteInput) error {
	if in != nil {
		return f.rec("add", in.Title)
	}
	return f.rec("add")
}
func (f *fakeExec) EditNote(_ context.Context, id string, _ *models.NoteInput) error {
	return f.rec("edit", id)
}
func (f *fakeExec) ToggleNote(_ context.Context, id string) error   { return f.rec("toggle", id) }
func (f *fakeExec) DeleteNotes(_ context.Context, ids []string) error { return f.rec("delete", ids...) }
func (f *fakeExec) ShowNote(_ context.Context, id string) error       { return f.rec("show", id) }
func (f *fakeExec) Stats(context.Context) error                       { return f.rec("stats") }
func (f *fakeExec) Browse(_ context.Context, op string, a []string) error {
	return f.rec("browse:"+op, a...)
}
func (f *fakeExec) SetAlarm(context.Context, string, string) error { return f.rec("alarm") }
func (f *fakeExec) ListAlarms(context.Context) error               { return f.rec("alarms") }
func (f *fakeExec) ShowDraft(context.Context) error                { return f.rec("draft") }
func (f *fakeExec) ClearDraft(context.Context) error               { return f.rec("discard") }
func (f *fakeExec) Theme(_ context.Context, a []string) error      { return f.rec("theme", a...) }
func (f *fakeExec) Language(_ context.Context, a []string) error   { return f.rec("lang", a...) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"login sara@example.com",
		"help",
		"add",
		"",
		"l",
		"search milk",
		"filter today",
		"next",
		"select a b",
		"delsel",
		"show 123",
		"toggle 123",
		"delete 1 2",
		"alarm",
		"theme dark",
		"foobar",
		"logout",
		"exit",
		"stats",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{
		"login sara@example.com",
		"add",
		"browse:list",
		"browse:search milk",
		"browse:filter today",
		"browse:next",
		"browse:select a b",
		"browse:delsel",
		"show 123",
		"toggle 123",
		"delete 1 2",
		"alarm",
		"theme dark",
		"logout",
	}, exec.calls)

	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, helpGuest)
	assert.Contains(t, out, helpUser)
	assert.Contains(t, out, "Unknown command:foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_UsageErrorsAndHandlerFailures(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failOn: "stats"}
	runREPL(context.Background(), exec, func() string { return " (s)" }, rdr("show\nedit\nstats\nquit\n"))

	assert.Equal(t, []string{"stats"}, exec.calls)
	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "usage: show <id>")
	assert.Contains(t, out, "usage: edit <id>")
	assert.Contains(t, out, "stats failed")
	assert.Contains(t, out, "todo (s)> ")
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("register"))
	require.Equal(t, []string{"register"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register\n")))
	assert.Empty(t, exec.calls)
}
