package handler

import (
	"net/http"

	"github.com/eveplan/eveweb/internal/logger"
	"github.com/eveplan/eveweb/internal/middleware"
)

type loginPageData struct {
	Email    string
	ReturnTo string
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if h.Store.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderTemplate(w, "login.html", loginPageData{
		ReturnTo: safeReturnTo(r.URL.Query().Get(middleware.ReturnToParam)),
	})
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	returnTo := safeReturnTo(r.FormValue(middleware.ReturnToParam))

	if _, err := h.Client.Login(r.Context(), email); err != nil {
		logger.Log.Error("login failed", "error", err)
		h.renderTemplate(w, "login.html", loginPageData{Email: email, ReturnTo: returnTo})
		return
	}

	if returnTo == "" {
		returnTo = "/"
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (h *Handler) LogoutPostHandler(w http.ResponseWriter, r *http.Request) {
	// Local state is cleared even when the backend call fails; the user
	// always ends up logged out.
	if err := h.Client.Logout(r.Context()); err != nil {
		logger.Log.Warn("backend logout failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
