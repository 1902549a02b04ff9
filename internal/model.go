package internal

import "time"

// SpeciesOther is the sentinel species value that carries a free-text
// CustomSpecies alongside it.
const SpeciesOther = "Other"

// SpeciesList is the fixed set of species selectable in the logging form.
var SpeciesList = []string{"Widgeon", "Spoon", "Teal", "Sprig", "Mallard", "Goose", SpeciesOther}

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// BirdLogEntry is one recorded observation within a submission. Quantity is
// kept as a string (form input); it must parse to an integer > 0 to be valid.
type BirdLogEntry struct {
	Species       string `json:"species"`
	CustomSpecies string `json:"custom_species,omitempty"`
	Quantity      string `json:"quantity"`
	Sex           string `json:"sex,omitempty"` // Male, Female or empty
}

// LogSubmission is one save action by a user for one calendar date. It is
// created atomically and never updated in place; deletion removes the whole
// submission.
type LogSubmission struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Date      string         `json:"date"` // ISO YYYY-MM-DD
	Blind     string         `json:"blind,omitempty"`
	Entries   []BirdLogEntry `json:"entries"`
	Photos    []string       `json:"photos,omitempty"` // opaque URIs, set only at creation
	CreatedAt time.Time      `json:"created_at"`
}

// DateGroup collects all of one user's submissions sharing the same date.
// Derived for display, never stored.
type DateGroup struct {
	Date        string          `json:"date"`
	Submissions []LogSubmission `json:"submissions"`
}

// RecentFeedEntry is a per-date rollup for the recent-activity feed.
type RecentFeedEntry struct {
	Date         string `json:"date"`
	TotalBirds   int    `json:"total_birds"`
	BlindDisplay string `json:"blind"`
}
