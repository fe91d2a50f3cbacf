package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eveplan/eveweb/internal/apierrors"
	"github.com/eveplan/eveweb/internal/logger"
	"github.com/eveplan/eveweb/internal/middleware"
)

// failRedirect routes a failed API call. Auth failures go to the login page
// carrying the current location; everything else bounces to fallback, where
// the drained notice explains what happened. The classifier already pushed
// the user-facing message before the error reached us.
func (h *Handler) failRedirect(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger.Log.Error("API call failed", "path", r.URL.Path, "error", err)
	if apierrors.IsAuthFailure(err) {
		middleware.RedirectToLogin(w, r)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// formLayout is the value format of HTML datetime-local inputs.
const formLayout = "2006-01-02T15:04"

// parseFormTime reads an optional datetime-local value as a local wall-clock
// instant in the codec's timezone.
func (h *Handler) parseFormTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(formLayout, value, h.Codec.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date/time %q", value)
	}
	return &t, nil
}

// formTime renders an instant back into datetime-local form value.
func (h *Handler) formTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(h.Codec.Location()).Format(formLayout)
}

// safeReturnTo accepts only same-site relative paths for post-login
// redirects.
func safeReturnTo(value string) string {
	if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
		return value
	}
	return ""
}
