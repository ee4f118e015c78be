package ward

import "fmt"

// Member identifies a seat in the bishopric. The roster is small and changes
// rarely, so it lives in code rather than configuration.
type Member string

const (
	Bishop             Member = "bishop"
	FirstCounselor     Member = "firstCounselor"
	SecondCounselor    Member = "secondCounselor"
	ExecutiveSecretary Member = "executiveSecretary"
)

// Interviewers returns the members who conduct interviews, in the order
// their sections appear in reports. The executive secretary schedules but
// does not interview.
func Interviewers() []Member {
	return []Member{Bishop, FirstCounselor, SecondCounselor}
}

// TrelloID returns the member's Trello account ID.
func (m Member) TrelloID() string {
	switch m {
	case Bishop:
		return "5f5b72d54777a21de18c6ac5"
	case FirstCounselor:
		return "5552302a4bb771aa0a2532e2"
	case SecondCounselor:
		return "67a938bda1e6bd8da53408ba"
	case ExecutiveSecretary:
		return "5a837d172c1860b067ef60c8"
	default:
		return ""
	}
}

// SlackID returns the member's Slack user ID, used for mentions.
func (m Member) SlackID() string {
	switch m {
	case Bishop:
		return "U01ASQSJ04Q"
	case FirstCounselor:
		return "U02RLUSKGQL"
	case SecondCounselor:
		return "U08DC1RGZME"
	case ExecutiveSecretary:
		return "U01B1LT9999"
	default:
		return ""
	}
}

// Name returns the member's display name.
func (m Member) Name() string {
	switch m {
	case Bishop:
		return "Paul Hill"
	case FirstCounselor:
		return "Chris Davis"
	case SecondCounselor:
		return "Will Stewart"
	case ExecutiveSecretary:
		return "Kasey Cowley"
	default:
		return ""
	}
}

// MemberByTrelloID resolves a Trello account ID back to a bishopric member.
func MemberByTrelloID(id string) (Member, bool) {
	for _, m := range []Member{Bishop, FirstCounselor, SecondCounselor, ExecutiveSecretary} {
		if m.TrelloID() == id {
			return m, true
		}
	}
	return "", false
}

// Default Slack channel IDs. Configuration may override these per deployment.
const (
	ChannelAutomationTesting = "C04R54CHA78"
	ChannelBishopric         = "C08CE1P0NBF"
	ChannelWardCouncil       = "C01A3032RB4"
)

// CallingStage is where a calling card sits in its workflow.
type CallingStage string

const (
	StageNeedsCallingExtended CallingStage = "needs_calling_extended"
	StageNeedsSettingApart    CallingStage = "needs_setting_apart"
)

// Pretty returns the human wording used in Slack reports.
func (s CallingStage) Pretty() (string, error) {
	switch s {
	case StageNeedsCallingExtended:
		return "Extend calling", nil
	case StageNeedsSettingApart:
		return "Set apart", nil
	default:
		return "", fmt.Errorf("ward.CallingStage.Pretty: unrecognized stage %q", string(s))
	}
}
