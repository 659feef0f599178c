// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"encoding/json"

	"github.com/danielhkuo/safety-points/models"
)

// NormalizeLeaderboard decodes a stored leaderboard. ok is false when the
// document is unreadable, has no departments array, contains any malformed
// department, or is empty; callers reset such documents to the default.
func NormalizeLeaderboard(data []byte) (doc models.LeaderboardDocument, ok bool) {
	var raw struct {
		Departments []any `json:"departments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || len(raw.Departments) == 0 {
		return models.LeaderboardDocument{}, false
	}

	departments := make([]models.Department, 0, len(raw.Departments))
	for _, item := range raw.Departments {
		d, valid := toDepartment(item)
		if !valid {
			return models.LeaderboardDocument{}, false
		}
		departments = append(departments, d)
	}
	return models.LeaderboardDocument{Departments: departments}, true
}

// NormalizeInfractions decodes a stored infraction log, dropping malformed
// entries. changed is true when the result differs in length from what was
// stored, including when the document itself is unreadable.
func NormalizeInfractions(data []byte) (doc models.InfractionsDocument, dropped int, changed bool) {
	doc = models.EmptyInfractions()

	var raw struct {
		Infractions []any `json:"infractions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || raw.Infractions == nil {
		return doc, 0, true
	}

	for _, item := range raw.Infractions {
		if !IsValidInfraction(item) {
			dropped++
			continue
		}
		doc.Infractions = append(doc.Infractions, toInfraction(item))
	}
	return doc, dropped, dropped > 0
}
