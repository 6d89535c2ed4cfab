// ABOUTME: Data models for deal tracking entities
// ABOUTME: Defines Deal, User, Candidate structs and tri-level priority axes
package models

import (
	"strings"
	"time"
)

// Tri is a three-rank ordinal used for the importance, urgency and
// profit axes.
type Tri string

const (
	TriHigh   Tri = "high"
	TriMedium Tri = "medium"
	TriLow    Tri = "low"
)

// AssignmentMode says whether the creator handles a deal themselves or
// hands it to someone else.
type AssignmentMode string

const (
	AssignDelegate AssignmentMode = "delegate"
	AssignSelf     AssignmentMode = "self"
)

// Status constants. Deletion is not a status; deals are removed outright.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

type Deal struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	CreatedBy  string         `json:"created_by"`
	ClientName string         `json:"client_name"`
	Memo       string         `json:"memo"`
	DueDate    string         `json:"due_date"` // YYYY-MM-DD, no time component
	Importance Tri            `json:"importance"`
	Urgency    Tri            `json:"urgency"`
	Profit     Tri            `json:"profit"`
	Assignment AssignmentMode `json:"assignment_type"`
	Assignee   string         `json:"assignee"`
	Status     Status         `json:"status"`
	ImageURL   string         `json:"image_url,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate is the unvalidated structured output of the extraction stage.
// Every field is optional and may carry either English tokens or the
// Japanese tokens the extraction prompt historically used.
type Candidate struct {
	ClientName     string `json:"clientName"`
	Memo           string `json:"memo"`
	DueDate        string `json:"dueDate"`
	Importance     string `json:"importance"`
	Urgency        string `json:"urgency"`
	Profit         string `json:"profit"`
	AssignmentType string `json:"assignmentType"`
	Assignee       string `json:"assignee"`
}

// DealFields is the mutable field set used for creation and editing.
type DealFields struct {
	ClientName string
	Memo       string
	DueDate    string
	Importance Tri
	Urgency    Tri
	Profit     Tri
	Assignment AssignmentMode
	Assignee   string
	ImageURL   string
}

// DealPatch is a partial update; nil fields are left untouched.
type DealPatch struct {
	ClientName *string         `json:"client_name,omitempty"`
	Memo       *string         `json:"memo,omitempty"`
	DueDate    *string         `json:"due_date,omitempty"`
	Importance *Tri            `json:"importance,omitempty"`
	Urgency    *Tri            `json:"urgency,omitempty"`
	Profit     *Tri            `json:"profit,omitempty"`
	Assignment *AssignmentMode `json:"assignment_type,omitempty"`
	Assignee   *string         `json:"assignee,omitempty"`
	Status     *Status         `json:"status,omitempty"`
	ImageURL   *string         `json:"image_url,omitempty"`
}

// Apply copies the non-nil patch fields onto the deal.
func (p DealPatch) Apply(d *Deal) {
	if p.ClientName != nil {
		d.ClientName = *p.ClientName
	}
	if p.Memo != nil {
		d.Memo = *p.Memo
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Importance != nil {
		d.Importance = *p.Importance
	}
	if p.Urgency != nil {
		d.Urgency = *p.Urgency
	}
	if p.Profit != nil {
		d.Profit = *p.Profit
	}
	if p.Assignment != nil {
		d.Assignment = *p.Assignment
	}
	if p.Assignee != nil {
		d.Assignee = *p.Assignee
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.ImageURL != nil {
		d.ImageURL = *p.ImageURL
	}
}

// Score maps a tri value for descending comparisons: high=3, medium=2, low=1.
func (t Tri) Score() int {
	switch t {
	case TriHigh:
		return 3
	case TriLow:
		return 1
	default:
		return 2
	}
}

// ParseTri normalizes a tri token. Unknown or empty input collapses to
// medium. Accepts the Japanese tokens used by the extraction prompt.
func ParseTri(s string) Tri {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "high", "高":
		return TriHigh
	case "low", "低":
		return TriLow
	case "medium", "mid", "中":
		return TriMedium
	default:
		return TriMedium
	}
}

// ParseAssignment normalizes an assignment token. Unknown or empty input
// collapses to delegate.
func ParseAssignment(s string) AssignmentMode {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "self", "自分で":
		return AssignSelf
	case "delegate", "任せる":
		return AssignDelegate
	default:
		return AssignDelegate
	}
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool {
	return s == StatusOpen || s == StatusDone
}

// ValidYMD reports whether s is a well-formed zero-padded calendar date.
func ValidYMD(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// TodayYMD formats t as the zero-padded YYYY-MM-DD date string used for
// due dates. Zero padding keeps lexical comparison consistent with
// chronological order.
func TodayYMD(t time.Time) string {
	return t.Format("2006-01-02")
}
