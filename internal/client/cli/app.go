package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

type App struct {
	config *config.Config
	api    client.Client
	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, errors.New("server url is empty")
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	return &App{
		config: c,
		api:    api,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err in a form suitable for the terminal. A rejected token
// drops the local session.
func (a *App) report(err error) {
	var apiErr *client.APIError

	switch {
	case client.IsUnavailable(err):
		a.printf("Server unavailable at %s\n", a.config.ServerURL)
	case errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn():
		a.forget()
		a.printf("Session expired, please log in again\n")
	case errors.As(err, &apiErr):
		a.printf("Error: %s\n", apiErr.Message)
	default:
		a.printf("Error: %v\n", err)
	}
}

func (a *App) forget() {
	a.user = nil
	a.api.SetToken("")
}
