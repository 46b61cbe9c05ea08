package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/climatetracker/internal/client/apiclient"
	"github.com/dmitrijs2005/climatetracker/internal/client/config"
	"github.com/dmitrijs2005/climatetracker/internal/client/models"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// TrackerAPI is the server surface the CLI needs. *apiclient.HTTPClient
// implements it.
type TrackerAPI interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout()
	LoggedIn() bool
	Preview(ctx context.Context, u insight.Usage) (*insight.Assessment, error)
	Calculate(ctx context.Context, u insight.Usage) (*models.Report, error)
	History(ctx context.Context) ([]float64, error)
	Leaderboard(ctx context.Context) ([]models.RankEntry, error)
	Prediction(ctx context.Context) (*models.Prediction, error)
	Export(ctx context.Context) (*models.ExportResult, error)
}

type App struct {
	config   *config.Config
	api      TrackerAPI
	userName string
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	api, err := apiclient.New(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (app *App) setMode(mode Mode) {
	if app.Mode != mode {
		app.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

// StartOnlineStatusWatcher pings the server every interval and updates Mode
// until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// Ping reports whether the server answers.
func (a *App) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
