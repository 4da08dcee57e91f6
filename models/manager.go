package models

type ManagerType string

const (
	TypeLegend  ManagerType = "legend"
	TypeElite   ManagerType = "elite"
	TypeRising  ManagerType = "rising"
	TypeVeteran ManagerType = "veteran"
)

func ValidManagerType(t ManagerType) bool {
	switch t {
	case TypeLegend, TypeElite, TypeRising, TypeVeteran:
		return true
	}
	return false
}

// Manager is the published, public-facing profile: one row of the Managers
// sheet. Points, Games and AvgPoints are derived numbers; everything else is
// stored as written.
type Manager struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Club                string  `json:"club"`
	Division            string  `json:"division"`
	Type                string  `json:"type"`
	Points              float64 `json:"points"`
	Games               float64 `json:"games"`
	AvgPoints           float64 `json:"avgPoints"`
	Signature           string  `json:"signature"`
	CareerHighlights    string  `json:"careerHighlights"`
	FavouriteFormation  string  `json:"favouriteFormation"`
	TacticalPhilosophy  string  `json:"tacticalPhilosophy"`
	MostMemorableMoment string  `json:"mostMemorableMoment"`
	MostFearedOpponent  string  `json:"mostFearedOpponent"`
	FutureAmbitions     string  `json:"futureAmbitions"`
	Story               string  `json:"story"`
}

// Canonical header cells of the Managers sheet, in write order.
const (
	ColManagerID = "ID"
	ColName      = "Name"
	ColClub      = "Club"
	ColMgrType   = "Type"
	ColPoints    = "Points"
	ColGames     = "Games"
	ColAvgPoints = "Avg Points"
	ColSignature = "Signature"
)

func ManagerHeader() []string {
	return []string{
		ColManagerID,
		ColName,
		ColClub,
		ColDivision,
		ColMgrType,
		ColPoints,
		ColGames,
		ColAvgPoints,
		ColSignature,
		ColCareerHighlights,
		ColFavouriteFormation,
		ColTacticalPhilosophy,
		ColMostMemorableMoment,
		ColMostFearedOpponent,
		ColFutureAmbitions,
		ColStory,
	}
}
