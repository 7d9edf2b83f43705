package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var fetchCount int

// fetchCmd warms the cache without printing a recap.
var fetchCmd = &cobra.Command{
	Use:   "fetch <gameName#tagLine>...",
	Short: "Download recent matches into the local cache",
	Long: `Resolves each Riot ID and stores its most recent matches in the local cache.
Matches already cached are not downloaded again.

Examples:
  lolwrapped fetch Doublelift#NA1
  lolwrapped fetch Doublelift#NA1 "Hide on bush#KR1" --count 50`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchCount, "count", 0, "number of recent matches to fetch (default from config, max 100)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fetchCount > 0 {
		if fetchCount > 100 {
			return fmt.Errorf("--count must be at most 100")
		}
		cfg.MatchCount = fetchCount
	}
	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := newService(cfg, db, cliLogger())
	for _, arg := range args {
		gameName, tagLine, err := parseRiotID(arg)
		if err != nil {
			return err
		}
		res, err := svc.Sync(ctx, gameName, tagLine)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		fmt.Fprintf(os.Stdout, "%s#%s  puuid=%s  fetched=%d  cached=%d\n",
			res.GameName, res.TagLine, res.PUUID, res.Fetched, res.Cached)
	}
	return nil
}
