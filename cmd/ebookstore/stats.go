package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory statistics",
	Long: `Show the number of records, the total number of copies in stock
and the size and age of the database file.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	Records  int       `json:"records"`
	Copies   int       `json:"copies"`
	DBPath   string    `json:"db_path"`
	DBSize   int64     `json:"db_size"`
	Modified time.Time `json:"modified"`
}

func runStats(cmd *cobra.Command, args []string) error {
	db, svc := mustOpenService(cmd.Context())
	defer db.Close()

	st, err := svc.Stats(cmd.Context())
	if err != nil {
		return failf(ExitError, "%v", err)
	}
	info, err := os.Stat(settings.DBPath)
	if err != nil {
		return failf(ExitError, "reading database file: %v", err)
	}

	resp := StatsResponse{
		Records:  st.Records,
		Copies:   st.Copies,
		DBPath:   settings.DBPath,
		DBSize:   info.Size(),
		Modified: info.ModTime(),
	}
	if humanOutput {
		printStatsHuman(resp)
		return nil
	}
	outputJSON(resp)
	return nil
}

func printStatsHuman(r StatsResponse) {
	fmt.Printf("Records:  %s\n", humanize.Comma(int64(r.Records)))
	fmt.Printf("Copies:   %s\n", humanize.Comma(int64(r.Copies)))
	fmt.Printf("Database: %s (%s, modified %s)\n",
		r.DBPath, humanize.Bytes(uint64(r.DBSize)), humanize.Time(r.Modified))
}
