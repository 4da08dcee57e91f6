package profile

import (
	"strconv"
	"strings"
)

// LogicalField names one logical submission field regardless of which alias
// the client used for it.
type LogicalField string

const (
	FieldManagerName         LogicalField = "managerName"
	FieldClubName            LogicalField = "clubName"
	FieldDivision            LogicalField = "division"
	FieldCareerHighlights    LogicalField = "careerHighlights"
	FieldFavouriteFormation  LogicalField = "favouriteFormation"
	FieldTacticalPhilosophy  LogicalField = "tacticalPhilosophy"
	FieldMostMemorableMoment LogicalField = "mostMemorableMoment"
	FieldMostFearedOpponent  LogicalField = "mostFearedOpponent"
	FieldFutureAmbitions     LogicalField = "futureAmbitions"
	FieldStory               LogicalField = "story"
	FieldTotalPoints         LogicalField = "totalPoints"
	FieldGamesPlayed         LogicalField = "gamesPlayed"
	FieldType                LogicalField = "type"
)

// fieldAliases lists the accepted payload keys per logical field, in priority
// order. Older clients used sheet-header casing ("Manager Name") or shorter
// keys ("name", "club"); the first alias present with a non-blank trimmed
// value wins. The legacy story alias is an alternative input, never
// concatenated onto the primary story.
var fieldAliases = map[LogicalField][]string{
	FieldManagerName:         {"managerName", "Manager Name", "name", "Name"},
	FieldClubName:            {"clubName", "Club Name", "club", "Club"},
	FieldDivision:            {"division", "Division"},
	FieldCareerHighlights:    {"careerHighlights", "Career Highlights", "highlights"},
	FieldFavouriteFormation:  {"favouriteFormation", "Favourite Formation", "formation"},
	FieldTacticalPhilosophy:  {"tacticalPhilosophy", "Tactical Philosophy", "philosophy"},
	FieldMostMemorableMoment: {"mostMemorableMoment", "Most Memorable Moment", "memorableMoment"},
	FieldMostFearedOpponent:  {"mostFearedOpponent", "Most Feared Opponent", "fearedOpponent"},
	FieldFutureAmbitions:     {"futureAmbitions", "Future Ambitions", "ambitions"},
	FieldStory:               {"story", "Story", "managerStory"},
	FieldTotalPoints:         {"totalPoints", "Total Points", "points"},
	FieldGamesPlayed:         {"gamesPlayed", "Games Played", "games"},
	FieldType:                {"type", "Type", "managerType"},
}

// ResolveField resolves one logical field out of a raw payload. Missing
// fields resolve to the empty string.
func ResolveField(payload map[string]any, field LogicalField) string {
	for _, key := range fieldAliases[field] {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		if v := stringify(raw); strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// stringify folds the JSON value types a payload cell can arrive as into the
// cell string that gets stored.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
