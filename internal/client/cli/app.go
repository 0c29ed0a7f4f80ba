package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/userbook/internal/client/client"
	"github.com/dmitrijs2005/userbook/internal/client/config"
	"github.com/dmitrijs2005/userbook/internal/client/controller"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config *config.Config
	ctrl   *controller.Controller
	state  *controller.State
	reader *bufio.Reader
	out    io.Writer
	// prompts are only printed when stdin is a terminal
	interactive bool
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		ctrl:        controller.New(apiClient, c.NoticeTTL),
		state:       controller.NewState(),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}, nil
}

func (a *App) getStatus() string {
	if a.state.Mode == controller.ModeEditing {
		return "(editing #" + itoa(a.state.Form.ID) + ")"
	}
	return ""
}

// Run loads the list once and then serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to userbook (type 'help' for commands)")

	_ = a.List(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
