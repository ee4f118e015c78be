package board

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ward28/wardbot/internal/schedule"
	"github.com/ward28/wardbot/internal/ward"
)

// Kind discriminates the two card flavors tracked on the boards.
type Kind string

const (
	KindInterview Kind = "interview"
	KindCalling   Kind = "calling"
)

// Label is a Trello card label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Entry is one appointment on a bishopric member's Sunday schedule, either
// an interview or a calling step.
type Entry struct {
	Kind     Kind              `json:"kind"`
	Name     string            `json:"name"`
	Due      time.Time         `json:"due"`
	Assigned string            `json:"assigned,omitempty"`
	Purpose  string            `json:"purpose,omitempty"`
	Calling  string            `json:"calling,omitempty"`
	Stage    ward.CallingStage `json:"stage,omitempty"`
}

// CallingList pairs a Trello list with the workflow stage its cards are in.
type CallingList struct {
	ID    string
	Stage ward.CallingStage
}

// Default board and list IDs. Overridable through configuration.
const (
	DefaultMembersBoardID  = "5f62c8d17e174a5346016935"
	DefaultInterviewListID = "5f62e544085cf226223925e8"
)

// DefaultCallingLists returns the calling workflow lists in stage order.
func DefaultCallingLists() []CallingList {
	return []CallingList{
		{ID: "5f62ba5c3d87c93ade73a3a1", Stage: ward.StageNeedsCallingExtended},
		{ID: "5f62ba76ea8a665c566846a2", Stage: ward.StageNeedsSettingApart},
		{ID: "5f62bc2052e58c7dc5740b4f", Stage: ward.StageNeedsSettingApart},
	}
}

// callingName captures "<person> as <calling>" card titles.
var callingName = regexp.MustCompile(`^(.+?)\sas\s([^;]+)$`) //nolint:gochecknoglobals // compiled once

// Fetcher assembles the Sunday schedule from the Trello boards.
type Fetcher struct {
	client         *Client
	membersBoardID string
	interviewLists []string
	callingLists   []CallingList
	now            func() time.Time
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetcherClock overrides the clock used to resolve the closest Sunday.
func WithFetcherClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) {
		f.now = now
	}
}

// NewFetcher creates a Fetcher over the given Trello lists.
func NewFetcher(client *Client, membersBoardID string, interviewLists []string, callingLists []CallingList, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:         client,
		membersBoardID: membersBoardID,
		interviewLists: interviewLists,
		callingLists:   callingLists,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GroupedByMember fetches every interview and calling card due the closest
// Sunday and groups them by the assigned member's Trello ID, each group
// sorted by due time.
func (f *Fetcher) GroupedByMember(ctx context.Context) (map[string][]Entry, error) {
	names, err := f.client.BoardMembers(ctx, f.membersBoardID)
	if err != nil {
		return nil, fmt.Errorf("board.Fetcher.GroupedByMember: %w", err)
	}

	sunday := schedule.ClosestSunday(f.now())

	var entries []struct {
		memberID string
		entry    Entry
	}

	collect := func(cards []apiCard, build func(apiCard) (Entry, bool)) {
		for _, card := range cards {
			if len(card.IDMembers) == 0 {
				continue
			}
			due, parseErr := time.Parse(time.RFC3339, card.Due)
			if parseErr != nil {
				log.Warn().Str("card", card.Name).Str("due", card.Due).Msg("card has unparseable due date")
				continue
			}
			if !sameDay(due, sunday) {
				continue
			}

			entry, ok := build(card)
			if !ok {
				continue
			}
			entry.Due = due
			entry.Assigned = names[card.IDMembers[0]]

			entries = append(entries, struct {
				memberID string
				entry    Entry
			}{card.IDMembers[0], entry})
		}
	}

	for _, listID := range f.interviewLists {
		cards, listErr := f.client.ListCards(ctx, listID)
		if listErr != nil {
			return nil, fmt.Errorf("board.Fetcher.GroupedByMember: %w", listErr)
		}
		collect(cards, buildInterview)
	}

	for _, list := range f.callingLists {
		cards, listErr := f.client.ListCards(ctx, list.ID)
		if listErr != nil {
			return nil, fmt.Errorf("board.Fetcher.GroupedByMember: %w", listErr)
		}
		stage := list.Stage
		collect(cards, func(card apiCard) (Entry, bool) {
			return buildCalling(card, stage)
		})
	}

	grouped := make(map[string][]Entry)
	for _, e := range entries {
		grouped[e.memberID] = append(grouped[e.memberID], e.entry)
	}
	for _, group := range grouped {
		sort.Slice(group, func(i, j int) bool { return group[i].Due.Before(group[j].Due) })
	}

	return grouped, nil
}

// buildInterview turns a raw interview card into an entry. The first label
// names the interview's purpose.
func buildInterview(card apiCard) (Entry, bool) {
	entry := Entry{Kind: KindInterview, Name: card.Name}
	if len(card.Labels) > 0 {
		entry.Purpose = card.Labels[0].Name
	}
	return entry, true
}

// buildCalling turns a raw calling card into an entry. Card titles follow
// "<person> as <calling>"; cards that do not are skipped.
func buildCalling(card apiCard, stage ward.CallingStage) (Entry, bool) {
	match := callingName.FindStringSubmatch(card.Name)
	if match == nil {
		log.Warn().Str("card", card.Name).Msg("calling card title is not in '<person> as <calling>' form")
		return Entry{}, false
	}

	return Entry{
		Kind:    KindCalling,
		Name:    strings.TrimSpace(match[1]),
		Calling: strings.TrimSpace(match[2]),
		Stage:   stage,
	}, true
}

// sameDay reports whether due falls on the same calendar day as sunday,
// evaluated in sunday's location.
func sameDay(due, sunday time.Time) bool {
	dy, dm, dd := due.In(sunday.Location()).Date()
	sy, sm, sd := sunday.Date()
	return dy == sy && dm == sm && dd == sd
}

// FormatEntry renders one schedule line the way it is posted to Slack.
func FormatEntry(e Entry) string {
	when := e.Due.Format("3:04pm")

	if e.Kind == KindCalling {
		action := "Meet"
		if pretty, err := e.Stage.Pretty(); err == nil {
			action = pretty
		}
		return fmt.Sprintf("• %s w/ %s - %s as %s", when, e.Name, action, e.Calling)
	}

	return fmt.Sprintf("• %s w/ %s - %s", when, e.Name, e.Purpose)
}
