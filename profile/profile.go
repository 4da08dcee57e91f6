// Package profile holds the field normalization rules shared by intake,
// publication and the maintenance jobs: slug identifiers, alias resolution
// for submitted payloads, and the derivation of a public manager record from
// an approved submission.
package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/manager-directory/models"
)

const signatureMaxLen = 150

// Slugify lowercases name, collapses every run of characters outside
// [a-z0-9] into a single hyphen and strips leading/trailing hyphens.
// There is deliberately no transliteration: "Jürgen Klopp-Smith!!" becomes
// "j-rgen-klopp-smith".
func Slugify(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}

// ParseNumber parses a cell into a number, coercing anything unparsable or
// non-finite to 0.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// IsNumeric reports whether a cell parses as a finite number. Blank cells
// are not numeric.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AveragePoints derives points-per-game. An explicit non-blank stored value
// is trusted over recomputation; otherwise points/games when games > 0,
// else 0.
func AveragePoints(points, games float64, explicit string) float64 {
	if strings.TrimSpace(explicit) != "" {
		return ParseNumber(explicit)
	}
	if games > 0 {
		avg := points / games
		if math.IsNaN(avg) || math.IsInf(avg, 0) {
			return 0
		}
		return avg
	}
	return 0
}

// NormalizeType lowercases a stored manager type and falls back to "rising"
// for anything outside the known set.
func NormalizeType(t string) string {
	mt := models.ManagerType(strings.ToLower(strings.TrimSpace(t)))
	if !models.ValidManagerType(mt) {
		return string(models.TypeRising)
	}
	return string(mt)
}

// Signature picks the first non-empty candidate line for the directory card
// and truncates it. The fallback is "<name> - <club>".
func Signature(sub models.Submission) string {
	candidates := []string{
		sub.CareerHighlights,
		sub.TacticalPhilosophy,
		sub.MostMemorableMoment,
		sub.Story,
	}
	sig := ""
	for _, c := range candidates {
		if s := strings.TrimSpace(c); s != "" {
			sig = s
			break
		}
	}
	if sig == "" {
		sig = fmt.Sprintf("%s - %s", strings.TrimSpace(sub.ManagerName), strings.TrimSpace(sub.ClubName))
	}
	return truncate(sig, signatureMaxLen)
}

// truncate cuts s to at most max characters. Slicing on bytes would split
// multibyte runes and leave invalid UTF-8 in the sheet.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// AssembleStory builds the published story: the submission's own story first,
// then a labelled section per non-empty narrative field, separated by blank
// lines.
func AssembleStory(sub models.Submission) string {
	sections := []struct {
		label string
		value string
	}{
		{"Career Highlights", sub.CareerHighlights},
		{"Favourite Formation", sub.FavouriteFormation},
		{"Tactical Philosophy", sub.TacticalPhilosophy},
		{"Most Memorable Moment", sub.MostMemorableMoment},
		{"Most Feared Opponent", sub.MostFearedOpponent},
		{"Future Ambitions", sub.FutureAmbitions},
	}

	parts := make([]string, 0, len(sections)+1)
	if s := strings.TrimSpace(sub.Story); s != "" {
		parts = append(parts, s)
	}
	for _, sec := range sections {
		if v := strings.TrimSpace(sec.value); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", sec.label, v))
		}
	}
	return strings.Join(parts, "\n\n")
}

// ManagerFromSubmission derives the published record for an approved
// submission. The identifier is the slug of the manager name, which means
// two names that slugify identically will upsert over each other.
func ManagerFromSubmission(sub models.Submission) models.Manager {
	points := ParseNumber(sub.TotalPoints)
	games := ParseNumber(sub.GamesPlayed)

	return models.Manager{
		ID:                  Slugify(sub.ManagerName),
		Name:                strings.TrimSpace(sub.ManagerName),
		Club:                strings.TrimSpace(sub.ClubName),
		Division:            strings.TrimSpace(sub.Division),
		Type:                NormalizeType(sub.Type),
		Points:              points,
		Games:               games,
		AvgPoints:           AveragePoints(points, games, ""),
		Signature:           Signature(sub),
		CareerHighlights:    sub.CareerHighlights,
		FavouriteFormation:  sub.FavouriteFormation,
		TacticalPhilosophy:  sub.TacticalPhilosophy,
		MostMemorableMoment: sub.MostMemorableMoment,
		MostFearedOpponent:  sub.MostFearedOpponent,
		FutureAmbitions:     sub.FutureAmbitions,
		Story:               AssembleStory(sub),
	}
}
