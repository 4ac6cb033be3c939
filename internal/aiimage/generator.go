package aiimage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookweb/internal/apiclient"
	"bookweb/internal/entity"
)

// PlaceholderGenerator returns a random stock image keyed by a time-based id.
// It stands in until a real image provider is configured.
type PlaceholderGenerator struct {
	now func() time.Time
}

func NewPlaceholderGenerator() *PlaceholderGenerator {
	return &PlaceholderGenerator{now: time.Now}
}

func (g *PlaceholderGenerator) Generate(ctx context.Context, req Request) (entity.GeneratedImage, error) {
	if err := ctx.Err(); err != nil {
		return entity.GeneratedImage{}, err
	}
	id := g.now().UnixMilli()
	return entity.GeneratedImage{
		ImgID:  id,
		BookID: req.BookID,
		ImgURL: fmt.Sprintf("https://picsum.photos/seed/%d/600/400", id),
	}, nil
}

// HTTPGenerator posts the request to an image service.
type HTTPGenerator struct {
	url        string
	httpClient *http.Client
}

func NewHTTPGenerator(url string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// generated accepts both camelCase and snake_case field names.
type generated struct {
	ImgID      int64  `json:"imgId"`
	BookID     int64  `json:"bookId"`
	ImgURL     string `json:"imgUrl"`
	SnakeID    int64  `json:"img_id"`
	SnakeBook  int64  `json:"book_id"`
	SnakeImage string `json:"img_url"`
}

func (g generated) image() entity.GeneratedImage {
	img := entity.GeneratedImage{ImgID: g.ImgID, BookID: g.BookID, ImgURL: g.ImgURL}
	if img.ImgID == 0 {
		img.ImgID = g.SnakeID
	}
	if img.BookID == 0 {
		img.BookID = g.SnakeBook
	}
	if img.ImgURL == "" {
		img.ImgURL = g.SnakeImage
	}
	return img
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (entity.GeneratedImage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return entity.GeneratedImage{}, fmt.Errorf("encode image request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return entity.GeneratedImage{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return entity.GeneratedImage{}, fmt.Errorf("%w: %w", apiclient.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return entity.GeneratedImage{}, &apiclient.StatusError{Op: "generate_image", StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}

	var out generated
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entity.GeneratedImage{}, fmt.Errorf("decode image response: %w", err)
	}
	img := out.image()
	if img.ImgURL == "" {
		return entity.GeneratedImage{}, errors.New("image response has no url")
	}
	return img, nil
}
