// ABOUTME: Session context passed into retrieval and lifecycle operations
// ABOUTME: Replaces ambient globals with an explicit value
package deals

import (
	"time"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// Session identifies the interactive user and the calendar date views are
// computed against. It is a plain value so view computation stays a pure
// function of its inputs.
type Session struct {
	Me    string
	Today string // YYYY-MM-DD
}

// NewSession builds a session for the given user at the current date.
func NewSession(me string) Session {
	return Session{Me: me, Today: models.TodayYMD(time.Now())}
}
