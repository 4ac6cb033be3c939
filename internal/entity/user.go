package entity

// User is the current-user record kept in the browser session.
type User struct {
	LoginID  string `json:"loginId"`
	MemberID int64  `json:"memberId,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Member is the public member record returned by the remote API.
type Member struct {
	ID      int64  `json:"id"`
	LoginID string `json:"loginId"`
	Name    string `json:"name"`
}

// User converts the member returned at login into a session user.
func (m Member) User() User {
	return User{LoginID: m.LoginID, MemberID: m.ID, Name: m.Name}
}
