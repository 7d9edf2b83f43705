package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/EmmanuelCobian/league-wrapped/internal/report"
)

var (
	wrappedJSON      bool
	wrappedNarrative bool
)

var wrappedCmd = &cobra.Command{
	Use:   "wrapped <gameName#tagLine>",
	Short: "Fetch recent matches and print the recap",
	Long: `Resolves the Riot ID, fetches the player's most recent matches (reusing any
already in the local cache), and prints the recap.

Examples:
  lolwrapped wrapped "Hide on bush#KR1"
  lolwrapped wrapped Doublelift#NA1 --narrative
  lolwrapped wrapped Doublelift#NA1 --json > recap.json`,
	Args: cobra.ExactArgs(1),
	RunE: runWrapped,
}

func init() {
	wrappedCmd.Flags().BoolVar(&wrappedJSON, "json", false, "print the recap as JSON")
	wrappedCmd.Flags().BoolVar(&wrappedNarrative, "narrative", false, "also print the region narrative")
}

func runWrapped(cmd *cobra.Command, args []string) error {
	gameName, tagLine, err := parseRiotID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := newService(cfg, db, cliLogger())
	res, err := svc.Generate(ctx, gameName, tagLine)
	if err != nil {
		return err
	}

	if wrappedJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Wrapped)
	}

	fmt.Fprintf(os.Stderr, "%d matches (%d fetched, %d from cache)\n", res.Fetched+res.Cached, res.Fetched, res.Cached)
	report.PrintWrapped(os.Stdout, res.GameName+"#"+res.TagLine, res.Wrapped)

	if wrappedNarrative && res.Wrapped.Overall.Games() > 0 {
		n, err := svc.Narrative(ctx, res.Wrapped.RoleStats.Scores, res.Wrapped.Summary.TopChamp)
		if err != nil {
			return fmt.Errorf("narrative: %w", err)
		}
		report.PrintNarrative(os.Stdout, n.Region, n.Output)
	}
	return nil
}
