package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookweb/internal/entity"
	"bookweb/internal/metrics"

	"golang.org/x/time/rate"
)

const defaultUserAgent = "bookweb/1.0"

// Options configures a Client.
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	RPS                float64
	IncludeCredentials bool
	UserAgent          string
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the book API. Every call is a single attempt.
type Client struct {
	httpClient         *http.Client
	baseURL            string
	userAgent          string
	limiter            *rate.Limiter
	includeCredentials bool
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	limit := rate.Inf
	burst := 1
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
		burst = max(1, int(opts.RPS))
	}
	return &Client{
		httpClient:         httpClient,
		baseURL:            strings.TrimRight(opts.BaseURL, "/"),
		userAgent:          userAgent,
		limiter:            rate.NewLimiter(limit, burst),
		includeCredentials: opts.IncludeCredentials,
	}
}

type contentBody struct {
	Content string `json:"content"`
}

type bookBody struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	ImgURL  string `json:"imgUrl,omitempty"`
	ImageID int64  `json:"imageId,omitempty"`
}

type loginBody struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// JoinRequest is the member registration payload.
type JoinRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func draftBody(d entity.BookDraft) bookBody {
	return bookBody{
		Title:   d.Title,
		Author:  d.Author,
		Content: d.Description,
		ImgURL:  d.CoverImage,
		ImageID: d.ImageID,
	}
}

// ListBooks handles GET /api/books
func (c *Client) ListBooks(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if err := c.do(ctx, "list_books", http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook handles GET /api/books/{bookId}
func (c *Client) GetBook(ctx context.Context, bookID int64) (entity.Book, error) {
	var b entity.Book
	if err := c.do(ctx, "get_book", http.MethodGet, fmt.Sprintf("/api/books/%d", bookID), nil, &b); err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// CreateBook handles POST /api/books
func (c *Client) CreateBook(ctx context.Context, d entity.BookDraft) (entity.Book, error) {
	var b entity.Book
	if err := c.do(ctx, "create_book", http.MethodPost, "/api/books", draftBody(d), &b); err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// UpdateBook handles PUT /api/books/{bookId}
func (c *Client) UpdateBook(ctx context.Context, d entity.BookDraft) (entity.Book, error) {
	var b entity.Book
	if err := c.do(ctx, "update_book", http.MethodPut, fmt.Sprintf("/api/books/%d", d.BookID), draftBody(d), &b); err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// ListComments handles GET /api/books/{bookId}/comments
func (c *Client) ListComments(ctx context.Context, bookID int64) ([]entity.Comment, error) {
	var comments []entity.Comment
	if err := c.do(ctx, "list_comments", http.MethodGet, fmt.Sprintf("/api/books/%d/comments", bookID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment handles POST /api/books/{bookId}/comments
func (c *Client) CreateComment(ctx context.Context, bookID int64, content string) error {
	return c.do(ctx, "create_comment", http.MethodPost, fmt.Sprintf("/api/books/%d/comments", bookID), contentBody{Content: content}, nil)
}

// UpdateComment handles PUT /api/comments/{id}
func (c *Client) UpdateComment(ctx context.Context, commentID int64, content string) error {
	return c.do(ctx, "update_comment", http.MethodPut, fmt.Sprintf("/api/comments/%d", commentID), contentBody{Content: content}, nil)
}

// DeleteComment handles DELETE /api/comments/{id}
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	return c.do(ctx, "delete_comment", http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil, nil)
}

// GetMember handles GET /api/member/{id}
func (c *Client) GetMember(ctx context.Context, memberID int64) (entity.Member, error) {
	var m entity.Member
	if err := c.do(ctx, "get_member", http.MethodGet, fmt.Sprintf("/api/member/%d", memberID), nil, &m); err != nil {
		return entity.Member{}, err
	}
	return m, nil
}

// Login handles POST /api/member/login. The session cookie the API sets is
// captured by the credentials bound to ctx.
func (c *Client) Login(ctx context.Context, loginID, password string) (entity.Member, error) {
	var m entity.Member
	if err := c.do(ctx, "login", http.MethodPost, "/api/member/login", loginBody{LoginID: loginID, Password: password}, &m); err != nil {
		return entity.Member{}, err
	}
	if m.LoginID == "" {
		m.LoginID = loginID
	}
	return m, nil
}

// Join handles POST /api/member/join
func (c *Client) Join(ctx context.Context, req JoinRequest) error {
	return c.do(ctx, "join", http.MethodPost, "/api/member/join", req, nil)
}

// Logout handles POST /api/member/logout
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/api/member/logout", nil, nil)
}

// MyBooks handles GET /api/mypage
func (c *Client) MyBooks(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if err := c.do(ctx, "my_books", http.MethodGet, "/api/mypage", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// LikedBooks handles GET /api/mypage/liked
func (c *Client) LikedBooks(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if err := c.do(ctx, "liked_books", http.MethodGet, "/api/mypage/liked", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// DeleteMyBook handles DELETE /api/mypage/{bookId}
func (c *Client) DeleteMyBook(ctx context.Context, bookID int64) error {
	return c.do(ctx, "delete_my_book", http.MethodDelete, fmt.Sprintf("/api/mypage/%d", bookID), nil, nil)
}

// ToggleLike handles POST /api/books/{bookId}/like
func (c *Client) ToggleLike(ctx context.Context, bookID int64) (entity.LikeStatus, error) {
	var st entity.LikeStatus
	if err := c.do(ctx, "toggle_like", http.MethodPost, fmt.Sprintf("/api/books/%d/like", bookID), struct{}{}, &st); err != nil {
		return entity.LikeStatus{}, err
	}
	return st, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, target any) error {
	started := time.Now()
	err := c.send(ctx, op, method, path, body, target)
	metrics.ObserveUpstream(op, started, err)
	return err
}

func (c *Client) send(ctx context.Context, op, method, path string, body, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	creds := CredentialsFrom(ctx)
	if c.includeCredentials && creds != nil {
		creds.attach(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	if c.includeCredentials && creds != nil {
		creds.update(resp.Cookies())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: decode response: %w: %w", op, ErrTransport, err)
	}
	return nil
}
