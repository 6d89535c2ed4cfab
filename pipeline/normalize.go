// ABOUTME: Normalization of extraction candidates into validated deal fields
// ABOUTME: Total function; every malformed field collapses to its default
package pipeline

import (
	"strings"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// Normalize validates a candidate against the calendar date and the user
// roster. It never fails; unusable values fall back to their defaults.
func Normalize(c models.Candidate, today string, userNames []string) models.DealFields {
	fields := models.DealFields{
		ClientName: strings.TrimSpace(c.ClientName),
		Memo:       strings.TrimSpace(c.Memo),
		DueDate:    strings.TrimSpace(c.DueDate),
		Importance: models.ParseTri(c.Importance),
		Urgency:    models.ParseTri(c.Urgency),
		Profit:     models.ParseTri(c.Profit),
		Assignment: models.ParseAssignment(c.AssignmentType),
	}

	if !models.ValidYMD(fields.DueDate) {
		fields.DueDate = today
	}

	fields.Assignee = matchAssignee(c.Assignee, userNames)
	return fields
}

// matchAssignee maps a free-text name onto the roster. Exact match wins;
// otherwise a substring match in either direction covers honorifics and
// partial names ("田中さん" vs "田中"). No match leaves the field blank for
// the user to fill in.
func matchAssignee(raw string, userNames []string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	for _, u := range userNames {
		if u == name {
			return u
		}
	}
	for _, u := range userNames {
		if u != "" && (strings.Contains(name, u) || strings.Contains(u, name)) {
			return u
		}
	}
	return ""
}
