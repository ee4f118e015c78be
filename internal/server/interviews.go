package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ward28/wardbot/internal/blockkit"
	"github.com/ward28/wardbot/internal/board"
	"github.com/ward28/wardbot/internal/ward"
)

// handleInterviews returns the Sunday schedule grouped by bishopric member.
func (s *Server) handleInterviews(w http.ResponseWriter, r *http.Request) {
	grouped, err := s.schedule.GroupedByMember(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch interview schedule")
		respondError(w, http.StatusInternalServerError, "failed to fetch schedule")
		return
	}

	respondJSON(w, http.StatusOK, grouped)
}

// handlePostInterviews posts the Sunday schedule to the bishopric channel,
// one section per interviewer.
func (s *Server) handlePostInterviews(w http.ResponseWriter, r *http.Request) {
	grouped, err := s.schedule.GroupedByMember(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch interview schedule")
		respondError(w, http.StatusInternalServerError, "failed to fetch schedule")
		return
	}

	channel := s.cfg.Channels.Bishopric
	if isDryRun(r) {
		channel = s.cfg.Channels.AutomationTesting
	}

	text := formatInterviewsMessage(grouped)

	msg, err := blockkit.NewMessage().Channel(channel).Text(text).Build()
	if err != nil {
		log.Error().Err(err).Msg("build interviews message")
		respondError(w, http.StatusInternalServerError, "failed to build message")
		return
	}

	if _, err := s.poster.PostMessage(r.Context(), msg); err != nil {
		log.Error().Err(err).Msg("post interviews message")
		respondError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// formatInterviewsMessage renders the per-interviewer schedule sections.
func formatInterviewsMessage(grouped map[string][]board.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<@%s>, here are the interviews and callings for this Sunday.\n", ward.Bishop.SlackID())

	for _, member := range ward.Interviewers() {
		fmt.Fprintf(&b, "\n*<@%s>*\n", member.SlackID())

		entries := grouped[member.TrelloID()]
		if len(entries) == 0 {
			b.WriteString("• Nothing scheduled\n")
			continue
		}
		for _, entry := range entries {
			b.WriteString(board.FormatEntry(entry))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
