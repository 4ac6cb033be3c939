package detail

import (
	"bookweb/internal/entity"
	"bookweb/internal/session"
)

// Mode is the composer state shown under the comment list.
type Mode int

const (
	Viewing Mode = iota
	ComposingNew
	Editing
)

func (m Mode) String() string {
	switch m {
	case ComposingNew:
		return "composing-new"
	case Editing:
		return "editing"
	default:
		return "viewing"
	}
}

// Composer drives the comment form of one book. It works directly on the
// session's compose state so every transition survives the redirect.
type Composer struct {
	st *session.ComposeState
}

func NewComposer(st *session.ComposeState) *Composer {
	return &Composer{st: st}
}

// Reset scopes the composer to bookID with no edit target and no draft.
func (c *Composer) Reset(bookID int64) {
	*c.st = session.ComposeState{BookID: bookID}
}

// Scoped reports whether the composer already belongs to bookID.
func (c *Composer) Scoped(bookID int64) bool {
	return c.st.BookID == bookID
}

// StartEdit makes comment the edit target and pre-fills the draft with its
// content. Callers check ownership first.
func (c *Composer) StartEdit(comment entity.Comment) {
	c.st.EditCommentID = comment.ID
	c.st.Draft = comment.Content
}

// CancelEdit drops the edit target and the draft.
func (c *Composer) CancelEdit() {
	c.st.EditCommentID = 0
	c.st.Draft = ""
}

// Target returns the comment being edited.
func (c *Composer) Target() (int64, bool) {
	return c.st.EditCommentID, c.st.EditCommentID != 0
}

func (c *Composer) BookID() int64 { return c.st.BookID }

func (c *Composer) Draft() string { return c.st.Draft }

func (c *Composer) keepDraft(content string) { c.st.Draft = content }

func (c *Composer) Mode() Mode {
	switch {
	case c.st.EditCommentID != 0:
		return Editing
	case c.st.Draft != "":
		return ComposingNew
	default:
		return Viewing
	}
}
