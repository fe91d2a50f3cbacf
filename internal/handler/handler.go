// Package handler renders the pages and processes the form actions. All
// backend access goes through the API client; handlers only shape data for
// templates and decide where failures send the user.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/eveplan/eveweb/internal/apiclient"
	"github.com/eveplan/eveweb/internal/logger"
	"github.com/eveplan/eveweb/internal/markdown"
	"github.com/eveplan/eveweb/internal/notify"
	"github.com/eveplan/eveweb/internal/session"
	"github.com/eveplan/eveweb/internal/timecodec"
)

type Handler struct {
	Templates map[string]*template.Template
	Client    *apiclient.Client
	Store     *session.Store
	Codec     *timecodec.Codec
	Notices   *notify.Center
	Markdown  *markdown.Renderer
}

func New(
	templates map[string]*template.Template,
	client *apiclient.Client,
	store *session.Store,
	codec *timecodec.Codec,
	notices *notify.Center,
	md *markdown.Renderer,
) *Handler {
	return &Handler{
		Templates: templates,
		Client:    client,
		Store:     store,
		Codec:     codec,
		Notices:   notices,
		Markdown:  md,
	}
}

// CommonTemplateData is available to every page. Notices are drained here,
// so rendering a page consumes them.
type CommonTemplateData struct {
	Email         string
	Authenticated bool
	Notices       []notify.Notice
	NoticeMillis  int64
}

// TemplateData wraps page-specific data with the common data. Templates
// access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) commonData() CommonTemplateData {
	sess := h.Store.Current()
	return CommonTemplateData{
		Email:         sess.Email,
		Authenticated: sess.Authenticated(),
		Notices:       h.Notices.Drain(),
		NoticeMillis:  h.Notices.TTL().Milliseconds(),
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{Data: data, Common: h.commonData()}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}
	_, _ = buf.WriteTo(w)
}
