package store

import "time"

// Session is the server-side half of an access token: the token names the
// session, the session names the one notebook it opened. Deleting the session
// revokes every token issued for it.
type Session struct {
	ID         string    `json:"id"`
	NotebookId int64     `json:"notebook_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
