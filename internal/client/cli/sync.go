package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/raidellg/blocnotes/internal/common"
)

func (a *App) sync(ctx context.Context) {
	if a.syncSvc == nil {
		fmt.Println("Sync is not configured: set a remote DSN and S3 settings")
		return
	}

	if err := a.ensureMigrated(ctx); err != nil {
		fmt.Println("Sync failed:", err)
		return
	}

	report, err := a.syncSvc.SyncNotes(ctx)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		fmt.Println("Please login first")
		return
	case errors.Is(err, common.ErrorSessionExpired):
		fmt.Println("Session expired, please login again")
		return
	case err != nil:
		fmt.Println("Sync failed:", err)
		return
	}

	a.setMode(ModeOnline)
	fmt.Printf("Synced: %d fetched (%d new), %d pushed, %d uploaded, %d downloaded\n",
		report.FetchedNew+report.FetchedUpdated, report.FetchedNew,
		report.Upserted, report.Uploaded, report.Downloaded)
	if report.UploadErrors > 0 || report.DownloadErrors > 0 {
		fmt.Printf("Transfers pending retry: %d uploads, %d downloads\n",
			report.UploadErrors, report.DownloadErrors)
	}
}
