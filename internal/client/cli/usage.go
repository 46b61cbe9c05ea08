package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/dmitrijs2005/climatetracker/internal/client/apiclient"
	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/filex"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
	"github.com/dmitrijs2005/climatetracker/internal/netx"
)

// exportDir is the working-directory subfolder that receives downloaded exports.
const exportDir = "exports"

// downloadExport is a test seam for netx.DownloadPresignedURL.
var downloadExport = netx.DownloadPresignedURL

// readUsage asks for one month of consumption.
func (a *App) readUsage() (insight.Usage, error) {
	var u insight.Usage
	var err error

	if u.ElectricityKWh, err = getNumber(a.reader, "Electricity (kWh)", a.out); err != nil {
		return u, err
	}
	if u.PetrolLiters, err = getNumber(a.reader, "Petrol (Liters)", a.out); err != nil {
		return u, err
	}
	if u.FoodExpense, err = getNumber(a.reader, "Food Expense", a.out); err != nil {
		return u, err
	}
	return u, nil
}

// Calc records a month of usage and prints the assessment, leaderboard and
// prediction.
func (a *App) Calc(ctx context.Context) error {
	u, err := a.readUsage()
	if err != nil {
		return a.report(err)
	}

	r, err := a.api.Calculate(ctx, u)
	if err != nil {
		return a.report(err)
	}

	printAssessment(a.out, &r.Assessment)
	printLeaderboard(a.out, r.Ranking)
	printPrediction(a.out, &r.Prediction)
	return nil
}

// Preview prints the assessment of a month of usage without recording it.
func (a *App) Preview(ctx context.Context) error {
	u, err := a.readUsage()
	if err != nil {
		return a.report(err)
	}

	assessment, err := a.api.Preview(ctx, u)
	if err != nil {
		return a.report(err)
	}

	printAssessment(a.out, assessment)
	return nil
}

func (a *App) History(ctx context.Context) error {
	h, err := a.api.History(ctx)
	if err != nil {
		return a.report(err)
	}
	printHistory(a.out, h)
	return nil
}

func (a *App) Leaderboard(ctx context.Context) error {
	r, err := a.api.Leaderboard(ctx)
	if err != nil {
		return a.report(err)
	}
	printLeaderboard(a.out, r)
	return nil
}

func (a *App) Predict(ctx context.Context) error {
	p, err := a.api.Prediction(ctx)
	if err != nil {
		return a.report(err)
	}
	printPrediction(a.out, p)
	return nil
}

// Export uploads the history, prints the download link and saves a local
// copy under exportDir.
func (a *App) Export(ctx context.Context) error {
	res, err := a.api.Export(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "History exported to %s\nDownload (valid 15 minutes): %s\n", res.Key, res.URL)

	path, err := filex.Save(exportDir, res.Key, func(w io.Writer) error {
		return downloadExport(ctx, res.URL, w)
	})
	if err != nil {
		log.Printf("error saving export: %v", err)
		fmt.Fprintln(a.out, "Could not save a local copy.")
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

// report prints a user-facing explanation of err and returns it.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, errNotANumber):
		fmt.Fprintln(a.out, err.Error())
	case errors.Is(err, apiclient.ErrNotLoggedIn), errors.Is(err, apiclient.ErrUnauthorized):
		fmt.Fprintln(a.out, "Please login first.")
	case errors.Is(err, apiclient.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	case errors.Is(err, common.ErrExportDisabled):
		fmt.Fprintln(a.out, "Export is not available on this server.")
	default:
		log.Printf("error: %v", err)
		fmt.Fprintln(a.out, err.Error())
	}
	return err
}
