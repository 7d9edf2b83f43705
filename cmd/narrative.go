package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EmmanuelCobian/league-wrapped/internal/aggregator"
	"github.com/EmmanuelCobian/league-wrapped/internal/report"
)

var (
	narrativeModel  string
	narrativeAPIKey string
)

var narrativeCmd = &cobra.Command{
	Use:   "narrative <puuid-prefix | gameName#tagLine>",
	Short: "Describe a cached player's playstyle as a Runeterra region",
	Long: `Scores the player's cached matches, picks the matching Runeterra region, and
writes a short description flavored by their most-played champion's lore.
With an Anthropic API key (ANTHROPIC_API_KEY or --api-key) the description is
rewritten by the model; otherwise the template text is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runNarrative,
}

func init() {
	narrativeCmd.Flags().StringVar(&narrativeModel, "model", "", "Anthropic model to use (default from config)")
	narrativeCmd.Flags().StringVar(&narrativeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
}

func runNarrative(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if narrativeModel != "" {
		cfg.AnthropicModel = narrativeModel
	}
	if narrativeAPIKey != "" {
		cfg.AnthropicAPIKey = narrativeAPIKey
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
		return fmt.Errorf("no cached player matches %q; run 'lolwrapped fetch' first", args[0])
	}
	matches, err := db.GetPlayerMatches(acct.PUUID, cfg.MatchCount)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	result := aggregator.GenerateSummaryIn(matches, acct.PUUID, cfg.Location())
	if result.Overall.Games() == 0 {
		return fmt.Errorf("no cached games for %s#%s", acct.GameName, acct.TagLine)
	}

	svc := newService(cfg, db, cliLogger())
	n, err := svc.Narrative(context.Background(), result.RoleStats.Scores, result.Summary.TopChamp)
	if err != nil {
		return err
	}
	report.PrintNarrative(os.Stdout, n.Region, n.Output)
	return nil
}
