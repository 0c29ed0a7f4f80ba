package cli

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/dmitrijs2005/userbook/internal/validation"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// prompts go nowhere when input is piped in
func (a *App) promptWriter() io.Writer {
	if a.interactive {
		return a.out
	}
	return io.Discard
}

// showNotice prints the current notice once, right after the command that
// raised it.
func (a *App) showNotice() {
	n := a.state.ActiveNotice(a.ctrl.Now())
	if n == nil {
		return
	}
	printlnFn(RenderNotice(n))
	a.state.Notice = nil
}

func (a *App) List(ctx context.Context) error {
	err := a.ctrl.LoadList(ctx, a.state)
	if err == nil {
		printlnFn(RenderUsers(a.state.Users))
	}
	a.showNotice()
	return err
}

// Add starts a fresh form and submits it.
func (a *App) Add(ctx context.Context) error {
	a.ctrl.Clear(a.state)
	return a.Form(ctx)
}

// Edit loads the user into the form and submits the changes.
func (a *App) Edit(ctx context.Context, rawID string) error {
	id, err := validation.ParseID(rawID)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.ctrl.Edit(ctx, a.state, id); err != nil {
		a.showNotice()
		return err
	}
	return a.Form(ctx)
}

// Form prompts for every field, using what the form already holds as
// defaults, then submits.
func (a *App) Form(ctx context.Context) error {
	w := a.promptWriter()
	f := &a.state.Form

	var err error
	if f.Name, err = GetWithDefault(a.reader, "Name", f.Name, w); err != nil {
		return err
	}
	if f.Email, err = GetWithDefault(a.reader, "Email", f.Email, w); err != nil {
		return err
	}
	if f.Phone, err = GetWithDefault(a.reader, "Phone (optional, '-' to clear)", f.Phone, w); err != nil {
		return err
	}

	err = a.ctrl.Submit(ctx, a.state)
	var ve *validation.Error
	if errors.As(err, &ve) {
		printlnFn(RenderFieldErrors(a.state.FieldErrors))
		printlnFn("Fix the fields with 'form' or start over with 'clear'.")
		return err
	}
	if err == nil {
		printlnFn(RenderUsers(a.state.Users))
	}
	a.showNotice()
	return err
}

// Delete asks for confirmation before removing the user.
func (a *App) Delete(ctx context.Context, rawID string) error {
	id, err := validation.ParseID(rawID)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	prompt := a.ctrl.RequestDelete(a.state, id)
	ok, err := Confirm(a.reader, prompt, a.promptWriter())
	if err != nil || !ok {
		a.ctrl.CancelDelete(a.state)
		return err
	}

	err = a.ctrl.ConfirmDelete(ctx, a.state)
	if err == nil {
		printlnFn(RenderUsers(a.state.Users))
	}
	a.showNotice()
	return err
}

func (a *App) Clear(context.Context) error {
	a.ctrl.Clear(a.state)
	return nil
}

var _ execIface = (*App)(nil)
