package models

import "encoding/json"

// Document keys in the blob store
const (
	LeaderboardKey = "leaderboard.json"
	InfractionsKey = "infractions.json"
)

// Limits
const (
	MaxDescriptionLength = 500
	DefaultPoints        = 500
)

// Domain types

type Department struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

type Infraction struct {
	Department  string  `json:"department"`
	Points      float64 `json:"points"`
	Description string  `json:"description"`
	Date        int64   `json:"date"` // epoch milliseconds
}

type LeaderboardDocument struct {
	Departments []Department `json:"departments"`
}

type InfractionsDocument struct {
	Infractions []Infraction `json:"infractions"`
}

// DefaultDepartments is the roster a fresh or corrupt leaderboard is reset to
var DefaultDepartments = []string{
	"Manipulator",
	"Mobility",
	"Programming",
	"CAD",
	"Wiring",
	"Media",
}

// DefaultLeaderboard returns a new document with every default department at DefaultPoints
func DefaultLeaderboard() LeaderboardDocument {
	departments := make([]Department, 0, len(DefaultDepartments))
	for _, name := range DefaultDepartments {
		departments = append(departments, Department{Name: name, Points: DefaultPoints})
	}
	return LeaderboardDocument{Departments: departments}
}

func EmptyInfractions() InfractionsDocument {
	return InfractionsDocument{Infractions: []Infraction{}}
}

// Request types
// Fields whose type is checked by the validation layer stay raw.

type LeaderboardRequest struct {
	Departments json.RawMessage `json:"departments"`
	Password    string          `json:"password"`
	Test        bool            `json:"test"`
}

type DeleteInfractionRequest struct {
	Index    json.RawMessage `json:"index"`
	Password string          `json:"password"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type LoginResponse struct {
	OK bool `json:"ok"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
