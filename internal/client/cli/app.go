package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/config"
)

// location is the folder the REPL is currently "in".
type location struct {
	id       string
	name     string
	parentID string
}

type App struct {
	config   *config.Config
	api      client.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
	cwd      *location
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGophDriveClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, api: api, reader: r, out: w}
}

// Run greets the user and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.api.Close(); err != nil {
			log.Printf("close connection: %s", err.Error())
		}
	}()

	pingCtx, cancel := a.callCtx(ctx)
	if err := a.api.Ping(pingCtx); err != nil {
		log.Printf("server %s is not reachable yet: %s", a.config.ServerEndpointAddr, err.Error())
	}
	cancel()

	printlnFn("Welcome to GophDrive CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn() && a.cwd != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	}
	if a.cwd != nil {
		s = fmt.Sprintf("%s:%s", s, a.cwd.name)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// callCtx bounds a single server call by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
