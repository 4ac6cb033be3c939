package entity

// CommentMember is the member reference embedded in a comment.
type CommentMember struct {
	ID int64 `json:"id"`
}

// Comment is a comment on a book.
//
// CommentLoginID is not sent by the API; it is resolved with a member lookup
// and is empty when the lookup was skipped or failed.
type Comment struct {
	ID             int64          `json:"commentId"`
	Content        string         `json:"content"`
	Author         string         `json:"author"`
	Member         *CommentMember `json:"member,omitempty"`
	CommentLoginID string         `json:"commentLoginId,omitempty"`
}

// MemberID returns the id of the posting member, or 0 when unknown.
func (c Comment) MemberID() int64 {
	if c.Member == nil {
		return 0
	}
	return c.Member.ID
}
