package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eveplan/eveweb/internal/apiclient"
	"github.com/eveplan/eveweb/internal/apierrors"
	"github.com/eveplan/eveweb/internal/domain"
	"github.com/eveplan/eveweb/internal/markdown"
	"github.com/eveplan/eveweb/internal/notify"
	"github.com/eveplan/eveweb/internal/session"
	"github.com/eveplan/eveweb/internal/timecodec"
)

// testTemplates builds a minimal template set so handlers can render without
// the real files on disk.
func testTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()
	base := `{{define "base.html"}}[{{range .Common.Notices}}{{.Message}};{{end}}]{{template "content" .}}{{end}}`
	pages := map[string]string{
		"login.html":        `{{define "content"}}login:{{.Data.Email}}{{end}}`,
		"events.html":       `{{define "content"}}events:{{.Data.Filter}}:{{len .Data.Events}}{{end}}`,
		"event_detail.html": `{{define "content"}}event:{{.Data.Event.Title}}:{{range .Data.Comments}}{{.Message}}/{{.Editable}};{{end}}{{end}}`,
		"event_form.html":   `{{define "content"}}form:{{.Data.Title}}:{{.Data.Error}}{{end}}`,
	}

	templates := make(map[string]*template.Template)
	for name, content := range pages {
		tmpl, err := template.New("base.html").Parse(base)
		require.NoError(t, err)
		tmpl, err = tmpl.Parse(content)
		require.NoError(t, err)
		templates[name] = tmpl
	}
	return templates
}

type env struct {
	handler *Handler
	store   *session.Store
	router  chi.Router
}

// newEnv stands up the full pipeline against a stub backend: classifier,
// notification center, session store, API client and handler.
func newEnv(t *testing.T, backend http.HandlerFunc) env {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	store, err := session.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	notices := notify.NewCenter(0)
	classifier := apierrors.NewClassifier("", notices)
	codec := timecodec.New(time.FixedZone("UTC-3", -3*60*60))
	client := apiclient.New(server.URL, store, classifier, codec)
	h := New(testTemplates(t), client, store, codec, notices, markdown.New())

	r := chi.NewRouter()
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)
	r.Post("/logout", h.LogoutPostHandler)
	r.Get("/", h.EventsGetHandler)
	r.Get("/events/{id}", h.EventGetHandler)
	r.Post("/events/new", h.EventNewPostHandler)
	r.Post("/events/{id}/comments/{commentID}/delete", h.CommentDeletePostHandler)

	return env{handler: h, store: store, router: r}
}

func jsonResponse(status int, payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			_ = json.NewEncoder(w).Encode(payload)
		}
	}
}

func TestLoginFlow(t *testing.T) {
	t.Run("successful login redirects to return location", func(t *testing.T) {
		e := newEnv(t, jsonResponse(http.StatusOK, map[string]string{"session_id": "tok-1"}))

		form := url.Values{"email": {"alice@example.com"}, "return_to": {"/events/7"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		e.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/events/7", rr.Header().Get("Location"))
		assert.True(t, e.store.Authenticated())
		assert.Equal(t, "alice@example.com", e.store.Email())
	})

	t.Run("failed login re-renders with notice", func(t *testing.T) {
		e := newEnv(t, jsonResponse(http.StatusBadRequest, map[string]string{"detail": "invalid email"}))

		form := url.Values{"email": {"nope"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		e.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid email;")
		assert.False(t, e.store.Authenticated())
	})

	t.Run("offsite return location is dropped", func(t *testing.T) {
		e := newEnv(t, jsonResponse(http.StatusOK, map[string]string{"session_id": "tok-1"}))

		form := url.Values{"email": {"alice@example.com"}, "return_to": {"https://evil.example"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		e.router.ServeHTTP(rr, req)

		assert.Equal(t, "/", rr.Header().Get("Location"))
	})
}

func TestAuthFailureClearsSessionAndRedirects(t *testing.T) {
	e := newEnv(t, jsonResponse(http.StatusForbidden,
		map[string]string{"detail": "not authorized to perform this action"}))
	require.NoError(t, e.store.Set("tok-1", "alice@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/events/7", nil)
	rr := httptest.NewRecorder()

	e.router.ServeHTTP(rr, req)

	// Session cleared before the redirect was issued, and the redirect
	// carries the pre-failure location.
	assert.False(t, e.store.Authenticated())
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?return_to=%2Fevents%2F7", rr.Header().Get("Location"))
}

func TestEventDetailOwnership(t *testing.T) {
	backend := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/comments") {
			_ = json.NewEncoder(w).Encode([]domain.Comment{
				{ID: 1, EventID: 7, Message: "mine", Rating: 5, AuthorEmail: "alice@example.com"},
				{ID: 2, EventID: 7, Message: "theirs", Rating: 3, AuthorEmail: "bob@example.com"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.EventWire{
			ID: 7, Title: "Party", AuthorEmail: "alice@example.com",
		})
	}

	e := newEnv(t, backend)
	require.NoError(t, e.store.Set("tok-1", "alice@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/events/7", nil)
	rr := httptest.NewRecorder()

	e.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	// Edit/delete affordances only for the session identity's own comment.
	assert.Contains(t, rr.Body.String(), "mine/true;")
	assert.Contains(t, rr.Body.String(), "theirs/false;")
}

func TestLogoutAlwaysEndsAnonymous(t *testing.T) {
	e := newEnv(t, jsonResponse(http.StatusInternalServerError, nil))
	require.NoError(t, e.store.Set("tok-1", "alice@example.com"))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rr := httptest.NewRecorder()

	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.False(t, e.store.Authenticated())
}

func TestEventsFilter(t *testing.T) {
	var paths []string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		jsonResponse(http.StatusOK, []domain.EventWire{})(w, r)
	})
	require.NoError(t, e.store.Set("tok-1", "alice@example.com"))

	for _, target := range []string{"/", "/?filter=upcoming", "/?filter=mine"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		e.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, []string{"/events", "/events/upcoming", "/events/my"}, paths)
}

func TestCreateEventFormValidation(t *testing.T) {
	e := newEnv(t, jsonResponse(http.StatusOK, nil))
	require.NoError(t, e.store.Set("tok-1", "alice@example.com"))

	// Malformed datetime re-renders the form instead of submitting.
	form := url.Values{"title": {"Party"}, "start_time": {"not-a-time"}}
	req := httptest.NewRequest(http.MethodPost, "/events/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid date/time")
}
