package cfg

import (
	"fmt"

	"vidgrab/internal/database"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/paths"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/repo"

	"github.com/spf13/cobra"
)

// statusCmd lists recent rows of the download ledger.
func statusCmd() *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent per-entry download statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitDB(paths.DBFilePath)
			if err != nil {
				return err
			}
			defer db.Close()

			ds := repo.GetDownloadStore(db.DB)
			var rows []models.LedgerRow
			if runID != "" {
				rows, err = ds.ListRun(cmd.Context(), runID)
			} else {
				rows, err = ds.ListRecent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				logging.P("No downloads recorded")
				return nil
			}
			for _, r := range rows {
				logging.P("%s", describeLedgerRow(r))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, keys.Limit, 20, "Number of rows to show")
	cmd.Flags().StringVar(&runID, keys.RunID, "", "Show every entry of one run")
	return cmd
}

func describeLedgerRow(r models.LedgerRow) string {
	s := fmt.Sprintf("%s  %.8s #%-3d %-9s %5.1f%%  %s", r.UpdatedAt.Local().Format(consts.DateLayout), r.RunID, r.EntryIndex+1, r.Status, r.Percent, r.Title)
	if r.Error != "" {
		s += "  (" + r.Error + ")"
	}
	return s
}
