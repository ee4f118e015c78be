package server

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/ward28/wardbot/internal/blockkit"
	"github.com/ward28/wardbot/internal/interaction"
	"github.com/ward28/wardbot/internal/schedule"
)

// conductorMention extracts the first user mention from the bishopric
// channel topic, which names whoever is conducting this month.
var conductorMention = regexp.MustCompile(`<@([A-Z0-9]+)>`) //nolint:gochecknoglobals // compiled once

// handleSpeakersCron posts the weekly speakers prompt to the bishopric
// channel. Fast and testimony Sundays have no assigned speakers, so the
// first Sunday of the month is skipped.
func (s *Server) handleSpeakersCron(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sunday := schedule.ClosestSunday(s.now())
	if schedule.IsFirstSunday(sunday) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Skipped"})
		return
	}

	topic, err := s.poster.ChannelTopic(ctx, s.cfg.Channels.Bishopric)
	if err != nil {
		log.Error().Err(err).Msg("read bishopric channel topic")
		respondError(w, http.StatusInternalServerError, "failed to resolve conductor")
		return
	}

	var conductor string
	if matches := conductorMention.FindStringSubmatch(topic); matches != nil {
		conductor = matches[1]
	}

	channel := s.cfg.Channels.Bishopric
	if isDryRun(r) {
		channel = s.cfg.Channels.AutomationTesting
	}

	prompt := fmt.Sprintf("<@%s>, please click the button below to add Sacrament speakers for the week.", conductor)

	msg, err := blockkit.NewMessage().
		Channel(channel).
		Text(prompt).
		AddBlock(blockkit.Section().Text(blockkit.Markdown(prompt + " Thank you!"))).
		AddBlock(blockkit.Divider()).
		AddBlock(blockkit.Actions().
			BlockID("speakers_actions").
			AddElement(blockkit.Button(blockkit.PlainText("Submit Sacrament Speakers").Emoji()).
				Style(slacklib.StylePrimary).
				ActionID(string(interaction.ActionOpenSpeakersModal)))).
		Build()
	if err != nil {
		log.Error().Err(err).Msg("build speakers prompt")
		respondError(w, http.StatusInternalServerError, "failed to build message")
		return
	}

	if _, err := s.poster.PostMessage(ctx, msg); err != nil {
		log.Error().Err(err).Msg("post speakers prompt")
		respondError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}
