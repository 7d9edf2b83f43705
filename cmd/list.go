package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EmmanuelCobian/league-wrapped/internal/storage"
)

var listPlayer string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached players, or one player's cached matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listPlayer, "player", "", "list matches for this player (puuid prefix or gameName#tagLine)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if listPlayer != "" {
		return listMatches(db, listPlayer)
	}

	accts, err := db.ListAccounts()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accts) == 0 {
		fmt.Fprintln(os.Stdout, "No players cached yet. Run 'lolwrapped fetch <gameName#tagLine>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-24s  %7s  %s\n", "PUUID", "RIOT ID", "MATCHES", "LAST GAME")
	fmt.Fprintf(os.Stdout, "%-14s  %-24s  %7s  %s\n",
		"──────────────", "────────────────────────", "───────", "──────────")
	for _, a := range accts {
		last := "—"
		if !a.Latest.IsZero() {
			last = a.Latest.Format("2006-01-02")
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-24s  %7d  %s\n",
			shortID(a.PUUID), a.GameName+"#"+a.TagLine, a.Matches, last)
	}
	return nil
}

func listMatches(db *storage.DB, ref string) error {
	acct, err := db.FindAccount(ref)
	if err != nil {
		return fmt.Errorf("find player: %w", err)
	}
	if acct == nil {
		fmt.Fprintf(os.Stderr, "No cached player matches %q\n", ref)
		return nil
	}
	refs, err := db.ListPlayerMatches(acct.PUUID)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%s#%s: %d cached matches\n\n", acct.GameName, acct.TagLine, len(refs))
	fmt.Fprintf(os.Stdout, "%-16s  %-16s  %5s  %s\n", "MATCH", "STARTED", "QUEUE", "MODE")
	for _, r := range refs {
		fmt.Fprintf(os.Stdout, "%-16s  %-16s  %5d  %s\n",
			r.MatchID, r.GameStart.Format("2006-01-02 15:04"), r.QueueID, r.GameMode)
	}
	return nil
}

func shortID(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
