package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/climatetracker/internal/client/models"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
)

type fakeAPI struct {
	pingErr error

	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error
	loggedIn  bool

	usage      insight.Usage
	assessment *insight.Assessment
	report     *models.Report
	history    []float64
	ranking    []models.RankEntry
	prediction *models.Prediction
	export     *models.ExportResult
	err        error
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}

func (f *fakeAPI) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr == nil {
		f.loggedIn = true
	}
	return f.loginErr
}

func (f *fakeAPI) Logout()        { f.loggedIn = false }
func (f *fakeAPI) LoggedIn() bool { return f.loggedIn }

func (f *fakeAPI) Preview(_ context.Context, u insight.Usage) (*insight.Assessment, error) {
	f.usage = u
	return f.assessment, f.err
}

func (f *fakeAPI) Calculate(_ context.Context, u insight.Usage) (*models.Report, error) {
	f.usage = u
	return f.report, f.err
}

func (f *fakeAPI) History(context.Context) ([]float64, error) { return f.history, f.err }

func (f *fakeAPI) Leaderboard(context.Context) ([]models.RankEntry, error) {
	return f.ranking, f.err
}

func (f *fakeAPI) Prediction(context.Context) (*models.Prediction, error) {
	return f.prediction, f.err
}

func (f *fakeAPI) Export(context.Context) (*models.ExportResult, error) {
	return f.export, f.err
}

// newTestApp returns an App reading input from in and writing to the
// returned buffer.
func newTestApp(api TrackerAPI, in string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		api:    api,
		reader: bufio.NewReader(strings.NewReader(in)),
		out:    out,
	}, out
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
