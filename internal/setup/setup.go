// Package setup builds the dependency graph from configuration.
package setup

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/eveplan/eveweb/internal/apiclient"
	"github.com/eveplan/eveweb/internal/apierrors"
	"github.com/eveplan/eveweb/internal/config"
	"github.com/eveplan/eveweb/internal/handler"
	"github.com/eveplan/eveweb/internal/logger"
	"github.com/eveplan/eveweb/internal/markdown"
	"github.com/eveplan/eveweb/internal/middleware"
	"github.com/eveplan/eveweb/internal/notify"
	"github.com/eveplan/eveweb/internal/session"
	"github.com/eveplan/eveweb/internal/timecodec"
)

const (
	baseTemplate = "base.html"
	tmplPath     = "templates"
)

type Dependencies struct {
	Handler *handler.Handler
	Guard   *middleware.SessionGuard
	Store   *session.Store
}

// SetupDependencies wires the application bottom-up: durable session store,
// notification center, classifier, codec, API client, handler.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize session store: %w", err)
	}

	store.Subscribe(func(s session.Session) {
		logger.Log.Info("session state changed",
			"authenticated", s.Authenticated(), "email", s.Email)
	})

	notices := notify.NewCenter(cfg.Notifications.Duration)
	classifier := apierrors.NewClassifier(cfg.Notifications.DefaultErrorMessage, notices)
	codec := timecodec.New(nil)
	client := apiclient.New(cfg.API.BaseURL, store, classifier, codec)

	templates, err := loadTemplates(tmplPath)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	h := handler.New(templates, client, store, codec, notices, markdown.New())

	return &Dependencies{
		Handler: h,
		Guard:   middleware.NewSessionGuard(store),
		Store:   store,
	}, nil
}

// Cleanup releases everything SetupDependencies opened.
func (d *Dependencies) Cleanup() {
	if err := d.Store.Close(); err != nil {
		logger.Log.Error("closing session store", "error", err)
	}
}

func loadTemplates(dir string) (map[string]*template.Template, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		name := f.Name()
		if filepath.Ext(name) != ".html" || name == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFiles(
			path.Join(dir, baseTemplate),
			path.Join(dir, name),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}
