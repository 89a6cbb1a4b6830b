// Package access holds the capability a caller presents to notebook-scoped
// store calls.
package access

import "time"

// Grant proves that a session opened one notebook through select or create.
// It is resolved from the caller's token and passed explicitly into every
// notebook-scoped service call.
type Grant struct {
	SessionId  string
	NotebookId int64
	ExpiresAt  time.Time
}

// Allows reports whether the grant covers notebookId. A nil grant allows nothing.
func (g *Grant) Allows(notebookId int64) bool {
	return g != nil && g.NotebookId == notebookId
}
