// ABOUTME: Tests for candidate normalization
// ABOUTME: Covers defaults, date fallback, and fuzzy assignee matching
package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

func TestNormalizeDefaults(t *testing.T) {
	fields := Normalize(models.Candidate{Memo: "打ち合わせメモ"}, "2025-01-15", nil)

	assert.Equal(t, "打ち合わせメモ", fields.Memo)
	assert.Equal(t, "2025-01-15", fields.DueDate)
	assert.Equal(t, models.TriMedium, fields.Importance)
	assert.Equal(t, models.TriMedium, fields.Urgency)
	assert.Equal(t, models.TriMedium, fields.Profit)
	assert.Equal(t, models.AssignDelegate, fields.Assignment)
	assert.Empty(t, fields.Assignee)
}

func TestNormalizeJapaneseTokens(t *testing.T) {
	fields := Normalize(models.Candidate{
		Memo:           "見積もり対応",
		Importance:     "高",
		Urgency:        "低",
		Profit:         "中",
		AssignmentType: "自分で",
	}, "2025-01-15", nil)

	assert.Equal(t, models.TriHigh, fields.Importance)
	assert.Equal(t, models.TriLow, fields.Urgency)
	assert.Equal(t, models.TriMedium, fields.Profit)
	assert.Equal(t, models.AssignSelf, fields.Assignment)
}

func TestNormalizeDueDate(t *testing.T) {
	// Valid dates pass through.
	fields := Normalize(models.Candidate{DueDate: "2025-02-28"}, "2025-01-15", nil)
	assert.Equal(t, "2025-02-28", fields.DueDate)

	// Malformed dates collapse to today.
	for _, bad := range []string{"", "来週金曜", "2025-2-28", "2025-02-30"} {
		fields = Normalize(models.Candidate{DueDate: bad}, "2025-01-15", nil)
		assert.Equal(t, "2025-01-15", fields.DueDate, "input %q", bad)
	}
}

func TestMatchAssignee(t *testing.T) {
	roster := []string{"田中", "佐藤", "鈴木"}

	// Exact match.
	fields := Normalize(models.Candidate{Assignee: "佐藤"}, "2025-01-15", roster)
	assert.Equal(t, "佐藤", fields.Assignee)

	// Honorific suffix still resolves.
	fields = Normalize(models.Candidate{Assignee: "田中さん"}, "2025-01-15", roster)
	assert.Equal(t, "田中", fields.Assignee)

	// Partial roster name inside the spoken name.
	fields = Normalize(models.Candidate{Assignee: "鈴"}, "2025-01-15", roster)
	assert.Equal(t, "鈴木", fields.Assignee)

	// No match leaves the field blank.
	fields = Normalize(models.Candidate{Assignee: "山田"}, "2025-01-15", roster)
	assert.Empty(t, fields.Assignee)
}
