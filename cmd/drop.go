package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EmmanuelCobian/league-wrapped/internal/storage"
)

var (
	dropForce  bool
	dropPlayer string
)

// dropCmd deletes the match cache, or one player's share of it.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the match cache",
	Long: `Permanently delete the SQLite match cache. Cached matches will be downloaded
again on the next recap.

With --player, only that player's account and the matches no other cached
player shares are removed.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropPlayer, "player", "", "only drop this player (puuid prefix or gameName#tagLine)")
}

func runDrop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dropPlayer != "" {
		return dropOnePlayer(cfg.DBPath, dropPlayer)
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DBPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files; absent when the database was closed cleanly.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(cfg.DBPath + suffix)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DBPath)
	return nil
}

func dropOnePlayer(path, ref string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	db, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	acct, err := db.FindAccount(ref)
	if err != nil {
		return fmt.Errorf("find player: %w", err)
	}
	if acct == nil {
		fmt.Fprintf(os.Stderr, "No cached player matches %q\n", ref)
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete %s#%s (%s) from %s\n", acct.GameName, acct.TagLine, acct.PUUID, path)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	removed, err := db.DeletePlayer(acct.PUUID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted %s#%s and %d unshared matches\n", acct.GameName, acct.TagLine, removed)
	return nil
}
