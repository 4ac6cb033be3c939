package aiimage

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookweb/internal/entity"
	"bookweb/internal/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrEmptyPrompt is returned for a blank prompt.
var ErrEmptyPrompt = errors.New("prompt is empty")

const generateTimeout = 60 * time.Second

// Service runs at most one generation per key at a time. A request that
// arrives while one is in flight for the same key gets that result.
type Service struct {
	gen   Generator
	group singleflight.Group
	log   *logrus.Logger
}

func NewService(gen Generator, log *logrus.Logger) *Service {
	return &Service{gen: gen, log: log}
}

// Generate asks the generator for an image. key is the caller's session id.
// The call outlives a cancelled caller so joined requests still get a result.
func (s *Service) Generate(ctx context.Context, key string, req Request) (entity.GeneratedImage, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return entity.GeneratedImage{}, ErrEmptyPrompt
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		gctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), generateTimeout)
		defer cancel()
		img, err := s.gen.Generate(gctx, req)
		metrics.ObserveImageGeneration(err)
		return img, err
	})
	if shared {
		s.log.WithField("session_id", key).Debug("joined in-flight image generation")
	}
	if err != nil {
		return entity.GeneratedImage{}, err
	}
	return v.(entity.GeneratedImage), nil
}
