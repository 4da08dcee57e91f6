package models

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// ValidStatus reports whether s is one of the three known review states.
func ValidStatus(s SubmissionStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission is one row of the Submissions sheet. All cells are kept as
// strings; numeric fields are only parsed when a manager record is derived.
type Submission struct {
	RequestID           string           `json:"requestId"`
	Timestamp           string           `json:"timestamp"`
	ManagerName         string           `json:"managerName"`
	ClubName            string           `json:"clubName"`
	Division            string           `json:"division"`
	CareerHighlights    string           `json:"careerHighlights"`
	FavouriteFormation  string           `json:"favouriteFormation"`
	TacticalPhilosophy  string           `json:"tacticalPhilosophy"`
	MostMemorableMoment string           `json:"mostMemorableMoment"`
	MostFearedOpponent  string           `json:"mostFearedOpponent"`
	FutureAmbitions     string           `json:"futureAmbitions"`
	Story               string           `json:"story"`
	TotalPoints         string           `json:"totalPoints"`
	GamesPlayed         string           `json:"gamesPlayed"`
	Type                string           `json:"type"`
	Status              SubmissionStatus `json:"status"`
}

// Canonical header cells of the Submissions sheet, in write order.
// Readers must still resolve positions by header name: manually edited
// sheets are not guaranteed to keep this order.
const (
	ColRequestID           = "Request ID"
	ColTimestamp           = "Timestamp"
	ColManagerName         = "Manager Name"
	ColClubName            = "Club Name"
	ColDivision            = "Division"
	ColCareerHighlights    = "Career Highlights"
	ColFavouriteFormation  = "Favourite Formation"
	ColTacticalPhilosophy  = "Tactical Philosophy"
	ColMostMemorableMoment = "Most Memorable Moment"
	ColMostFearedOpponent  = "Most Feared Opponent"
	ColFutureAmbitions     = "Future Ambitions"
	ColStory               = "Story"
	ColTotalPoints         = "Total Points"
	ColGamesPlayed         = "Games Played"
	ColType                = "Type"
	ColStatus              = "Status"
)

func SubmissionHeader() []string {
	return []string{
		ColRequestID,
		ColTimestamp,
		ColManagerName,
		ColClubName,
		ColDivision,
		ColCareerHighlights,
		ColFavouriteFormation,
		ColTacticalPhilosophy,
		ColMostMemorableMoment,
		ColMostFearedOpponent,
		ColFutureAmbitions,
		ColStory,
		ColTotalPoints,
		ColGamesPlayed,
		ColType,
		ColStatus,
	}
}
