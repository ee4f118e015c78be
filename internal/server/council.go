package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ward28/wardbot/internal/blockkit"
)

// handleWardCouncilReminder posts the standing agenda reminder to the ward
// council channel.
func (s *Server) handleWardCouncilReminder(w http.ResponseWriter, r *http.Request) {
	channel := s.cfg.Channels.WardCouncil
	if isDryRun(r) {
		channel = s.cfg.Channels.AutomationTesting
	}

	msg, err := blockkit.NewMessage().
		Channel(channel).
		Text("Reminder: ward council meets this Sunday.").
		AddBlock(blockkit.Section().Text(blockkit.Markdown("*Ward council reminder* :calendar:"))).
		AddBlock(blockkit.Divider()).
		AddBlock(blockkit.Section().Text(blockkit.Markdown(
			"Ward council meets this Sunday an hour before sacrament meeting. Please reply in this thread with any agenda items by Saturday evening."))).
		Build()
	if err != nil {
		log.Error().Err(err).Msg("build ward council reminder")
		respondError(w, http.StatusInternalServerError, "failed to build message")
		return
	}

	if _, err := s.poster.PostMessage(r.Context(), msg); err != nil {
		log.Error().Err(err).Msg("post ward council reminder")
		respondError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
