package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Whoami(ctx context.Context) error { return f.record("whoami") }
func (f *fakeExec) List(ctx context.Context) error   { return f.record("list") }
func (f *fakeExec) Upload(ctx context.Context, path string) error {
	return f.record("upload " + path)
}
func (f *fakeExec) Download(ctx context.Context, id int64, dest string) error {
	return f.record(fmt.Sprintf("download %d %q", id, dest))
}
func (f *fakeExec) Delete(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("delete %d", id))
}
func (f *fakeExec) Share(ctx context.Context, id int64, email, message string) error {
	return f.record(fmt.Sprintf("share %d %s %q", id, email, message))
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"list",
		"login",
		"help",
		"whoami",
		"l",
		"upload ./a.txt",
		"download 3",
		"download 3 /tmp/x",
		"delete 4",
		"share 5 bob@example.com see this",
		"share 6 bob@example.com",
		"",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"whoami",
		"list",
		"upload ./a.txt",
		`download 3 ""`,
		`download 3 "/tmp/x"`,
		"delete 4",
		`share 5 bob@example.com "see this"`,
		`share 6 bob@example.com ""`,
		"logout",
	}, exec.calls)

	assert.Contains(t, *out, helpAnonymous)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "fs status>")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageAndInvalidIDs(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"upload",
		"upload a b",
		"download",
		"download abc",
		"delete",
		"delete 0",
		"share 1",
		"share -2 x@y",
	}, "\n")

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Empty(t, exec.calls)
	for _, want := range []string{
		"Usage: upload <path>",
		"Usage: download <id> [dest]",
		"Invalid file id: abc",
		"Usage: delete <id>",
		"Invalid file id: 0",
		"Usage: share <id> <email> [message...]",
		"Invalid file id: -2",
	} {
		assert.Contains(t, *out, want)
	}
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register")))

	assert.Equal(t, []string{"register"}, exec.calls)
}
