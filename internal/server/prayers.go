package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ward28/wardbot/internal/blockkit"
)

var (
	openingPrayer = regexp.MustCompile(`(?i)opening prayer:?\s([a-zA-Z]+\s[a-zA-Z]+)`) //nolint:gochecknoglobals // compiled once
	closingPrayer = regexp.MustCompile(`(?i)closing prayer:?\s([a-zA-Z]+\s[a-zA-Z]+)`) //nolint:gochecknoglobals // compiled once
)

type prayersRequest struct {
	Message string `json:"message"`
	DryRun  bool   `json:"dryRun"`
}

// handlePostPrayers parses the invocation and benediction out of a pasted
// program message and posts them to the bishopric channel.
func (s *Server) handlePostPrayers(w http.ResponseWriter, r *http.Request) {
	var req prayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "no request body found")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, `missing payload value: "message"`)
		return
	}

	opening := openingPrayer.FindStringSubmatch(req.Message)
	closing := closingPrayer.FindStringSubmatch(req.Message)
	if opening == nil || closing == nil {
		respondError(w, http.StatusUnprocessableEntity, "could not parse the opening and closing prayers")
		return
	}

	invocation := strings.TrimSpace(opening[1])
	benediction := strings.TrimSpace(closing[1])

	channel := s.cfg.Channels.Bishopric
	if req.DryRun {
		channel = s.cfg.Channels.AutomationTesting
	}

	text := fmt.Sprintf("Sacrament meeting prayers:\n\nOpening prayer: %s\nClosing prayer: %s", invocation, benediction)

	msg, err := blockkit.NewMessage().Channel(channel).Text(text).Build()
	if err != nil {
		log.Error().Err(err).Msg("build prayers message")
		respondError(w, http.StatusInternalServerError, "failed to build message")
		return
	}

	if _, err := s.poster.PostMessage(r.Context(), msg); err != nil {
		log.Error().Err(err).Msg("post prayers message")
		respondError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
