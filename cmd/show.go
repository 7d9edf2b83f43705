package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EmmanuelCobian/league-wrapped/internal/aggregator"
	"github.com/EmmanuelCobian/league-wrapped/internal/report"
)

var (
	showLast int
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show <puuid-prefix | gameName#tagLine>",
	Short: "Print a recap from cached matches only",
	Long:  "Builds the recap from matches already in the local cache. No Riot API calls are made.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showLast, "last", 0, "only use the N most recent cached matches (default from config)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the recap as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	acct, err := db.FindAccount(args[0])
	if err != nil {
		return fmt.Errorf("find player: %w", err)
	}
	if acct == nil {
		fmt.Fprintf(os.Stderr, "No cached player matches %q\n", args[0])
		return nil
	}

	limit := cfg.MatchCount
	if showLast > 0 {
		limit = showLast
	}
	matches, err := db.GetPlayerMatches(acct.PUUID, limit)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}

	result := aggregator.GenerateSummaryIn(matches, acct.PUUID, cfg.Location())
	if showJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	report.PrintWrapped(os.Stdout, acct.GameName+"#"+acct.TagLine, result)
	return nil
}
