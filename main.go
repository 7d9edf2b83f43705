// Package main is the entry point for the lolwrapped CLI, which fetches a
// League of Legends player's recent matches and summarizes them.
package main

import "github.com/EmmanuelCobian/league-wrapped/cmd"

func main() {
	cmd.Execute()
}
