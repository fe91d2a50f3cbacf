// Package router wires the routes and the middleware chain.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eveplan/eveweb/internal/middleware"
	"github.com/eveplan/eveweb/internal/setup"
)

func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	h := deps.Handler

	// Public routes.
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)

	// Session-guarded routes.
	r.Group(func(r chi.Router) {
		r.Use(deps.Guard.RequireSession)

		r.Get("/", h.EventsGetHandler)
		r.Post("/logout", h.LogoutPostHandler)

		r.Get("/events/new", h.EventNewGetHandler)
		r.Post("/events/new", h.EventNewPostHandler)
		r.Get("/events/{id}", h.EventGetHandler)
		r.Get("/events/{id}/edit", h.EventEditGetHandler)
		r.Post("/events/{id}/edit", h.EventEditPostHandler)
		r.Post("/events/{id}/delete", h.EventDeletePostHandler)

		r.Post("/events/{id}/comments", h.CommentCreatePostHandler)
		r.Post("/events/{id}/comments/{commentID}/edit", h.CommentEditPostHandler)
		r.Post("/events/{id}/comments/{commentID}/delete", h.CommentDeletePostHandler)
	})

	return r
}
