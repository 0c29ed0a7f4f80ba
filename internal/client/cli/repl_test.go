package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) List(context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Add(context.Context) error  { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Form(context.Context) error { f.calls = append(f.calls, "form"); return nil }
func (f *fakeExec) Edit(_ context.Context, id string) error {
	f.calls = append(f.calls, "edit "+id)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}
func (f *fakeExec) Clear(context.Context) error { f.calls = append(f.calls, "clear"); return nil }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func TestRunREPL_Dispatch(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	input := "help\n\nl\nadd\nedit 3\nform\ndelete 4\nclear\nlist\nexit\nlist\n"
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{"list", "add", "edit 3", "form", "delete 4", "clear", "list"}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	printed := silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(editing #1)" }, rdr("edit\ndelete\nfoobar\nquit\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *printed, "Usage: edit <id>")
	assert.Contains(t, *printed, "Usage: delete <id>")
	assert.Contains(t, *printed, "Unknown command:")
	assert.Contains(t, *printed, "userbook (editing #1)> ")
	assert.Contains(t, *printed, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list"))

	assert.Equal(t, []string{"list"}, exec.calls)
}
