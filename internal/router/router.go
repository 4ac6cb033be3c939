package router

import (
	"context"
	"net/http"
	"time"

	"bookweb/internal/aiimage"
	"bookweb/internal/apiclient"
	"bookweb/internal/auth"
	"bookweb/internal/book"
	"bookweb/internal/config"
	"bookweb/internal/detail"
	"bookweb/internal/home"
	"bookweb/internal/httpx"
	"bookweb/internal/metrics"
	"bookweb/internal/mypage"
	"bookweb/internal/session"
	"bookweb/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Deps is everything the routing table wires together.
type Deps struct {
	Config    config.Config
	Log       *logrus.Logger
	Sessions  *session.Manager
	API       *apiclient.Client
	Views     *view.Renderer
	Generator aiimage.Generator
	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

// Router is the HTTP handler of the web app. Close stops background work
// started by middleware.
type Router struct {
	http.Handler
	limiter *httpx.RateLimitMiddleware
}

func (rt *Router) Close() {
	rt.limiter.Close()
}

func New(d Deps) *Router {
	log := d.Log
	limiter := httpx.NewRateLimitMiddleware(d.Config.RateLimitRPS, d.Config.RateLimitBurst, d.Config.TrustProxy)

	homeH := home.NewHTTPHandler(home.NewService(d.API, log), d.Sessions, d.Views, log)
	authH := auth.NewHTTPHandler(auth.NewService(d.API), d.Sessions, d.Views, log)
	detailH := detail.NewHTTPHandler(detail.NewService(d.API, log), d.Sessions, d.Views, log)
	mypageH := mypage.NewHTTPHandler(mypage.NewService(d.API, log), d.Sessions, d.Views, log)
	bookH := book.NewHTTPHandler(book.NewService(d.API), d.Sessions, d.Views, log)
	aiH := aiimage.NewHTTPHandler(aiimage.NewService(d.Generator, log), d.Sessions, d.Views, log)

	r := chi.NewRouter()
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware(log))
	r.Use(d.Sessions.Middleware)
	r.Use(httpx.AccessLogMiddleware(log))
	r.Use(metrics.InstrumentHandler)
	r.Use(httpx.SecurityHeadersMiddleware(d.Config.EnableHSTS))
	r.Use(httpx.RequestSizeLimitMiddleware(d.Config.MaxBodyBytes))
	r.Use(limiter.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.ErrorPage(w, r, http.StatusNotFound, "Page not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.ErrorPage(w, r, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				log.WithError(err).Warn("readiness check failed")
				httpx.JSONError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Session store not ready", nil)
				return
			}
		}
		httpx.JSONSuccess(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Method(http.MethodGet, "/static/*", view.Static())

	r.Get("/", homeH.Show)
	r.Get("/login", authH.ShowLogin)
	r.Post("/login", authH.Login)
	r.Get("/join", authH.ShowJoin)
	r.Post("/join", authH.Join)
	r.Post("/logout", authH.Logout)

	r.Get("/detail", detailH.Show)
	r.Post("/navigate/detail", detailH.Navigate)

	r.Group(func(r chi.Router) {
		r.Use(httpx.RequireLogin(d.Sessions, log))

		r.Post("/detail/comments", detailH.Submit)
		r.Post("/detail/comments/cancel", detailH.CancelEdit)
		r.Post("/detail/comments/{id}/edit", detailH.StartEdit)
		r.Post("/detail/comments/{id}/delete", detailH.Delete)

		r.Get("/mypage", mypageH.Show)
		r.Post("/mypage/books/{id}/delete", mypageH.Delete)
		r.Post("/mypage/books/{id}/edit", mypageH.Edit)
		r.Post("/mypage/likes/{id}", mypageH.ToggleLike)

		r.Get("/register", bookH.ShowRegister)
		r.Post("/register", bookH.Register)
		r.Get("/update", bookH.ShowUpdate)
		r.Post("/update", bookH.Update)
		r.Post("/navigate/ai", bookH.NavigateAI)

		r.Get("/ai-image", aiH.Show)
		r.Post("/ai-image/generate", aiH.Generate)
		r.Post("/ai-image/select", aiH.Select)
	})

	return &Router{Handler: r, limiter: limiter}
}
