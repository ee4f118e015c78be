package main

import (
	"github.com/ward28/wardbot/internal/board"
	"github.com/ward28/wardbot/internal/config"
)

// newScheduleFetcher wires the Trello client over the configured boards.
func newScheduleFetcher(cfg *config.Config) *board.Fetcher {
	client := board.NewClient(cfg.Trello.APIKey, cfg.Trello.APIToken)

	return board.NewFetcher(
		client,
		cfg.Trello.MembersBoardID,
		cfg.Trello.InterviewLists,
		cfg.Trello.CallingLists(),
	)
}
