package entity

// Book is a book as returned by the remote API.
type Book struct {
	ID         int64  `json:"bookId"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Content    string `json:"content,omitempty"`
	ImgURL     string `json:"imgUrl,omitempty"`
	ImageID    int64  `json:"imageId,omitempty"`
	RegTime    string `json:"regTime,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
	Liked      bool   `json:"liked,omitempty"`
	LikeCount  int    `json:"likeCount,omitempty"`
}

// BookDraft is the register/update form payload carried between pages.
type BookDraft struct {
	BookID      int64  `json:"bookId,omitempty"`
	Title       string `json:"title" validate:"required,max=200"`
	Author      string `json:"author" validate:"required,max=100"`
	Description string `json:"description" validate:"max=5000"`
	CoverImage  string `json:"coverImage,omitempty" validate:"omitempty,url"`
	ImageID     int64  `json:"imageId,omitempty"`
}

// Draft builds an edit draft from an existing book.
func (b Book) Draft() BookDraft {
	return BookDraft{
		BookID:      b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Content,
		CoverImage:  b.ImgURL,
		ImageID:     b.ImageID,
	}
}

// LikeStatus is the canonical like-toggle response.
type LikeStatus struct {
	Liked bool `json:"liked"`
}

// GeneratedImage is an AI cover candidate. It lives in page state only.
type GeneratedImage struct {
	ImgID  int64  `json:"imgId"`
	BookID int64  `json:"bookId,omitempty"`
	ImgURL string `json:"imgUrl"`
}
