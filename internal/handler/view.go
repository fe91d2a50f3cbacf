package handler

import (
	"html/template"

	"github.com/samber/lo"

	"github.com/eveplan/eveweb/internal/domain"
)

// EventView is an event shaped for templates: times pre-rendered in local
// time, free text converted to sanitized HTML, ownership resolved against
// the current session.
type EventView struct {
	domain.Event
	StartDisplay    string
	EndDisplay      string
	DescriptionHTML template.HTML
	ProgramHTML     template.HTML
	Mine            bool
}

// CommentView mirrors EventView for comments. Editable decides whether
// edit/delete controls are rendered; the backend still enforces ownership.
type CommentView struct {
	domain.Comment
	MessageHTML template.HTML
	Editable    bool
}

func (h *Handler) eventView(event domain.Event) EventView {
	return EventView{
		Event:           event,
		StartDisplay:    h.Codec.FormatDisplay(event.StartTime),
		EndDisplay:      h.Codec.FormatDisplay(event.EndTime),
		DescriptionHTML: h.Markdown.Render(event.Description),
		ProgramHTML:     h.Markdown.Render(event.Program),
		Mine:            event.Mine(h.Store.Email()),
	}
}

func (h *Handler) eventViews(events []domain.Event) []EventView {
	return lo.Map(events, func(event domain.Event, _ int) EventView {
		return h.eventView(event)
	})
}

func (h *Handler) commentViews(comments []domain.Comment) []CommentView {
	email := h.Store.Email()
	return lo.Map(comments, func(comment domain.Comment, _ int) CommentView {
		return CommentView{
			Comment:     comment,
			MessageHTML: h.Markdown.Render(comment.Message),
			Editable:    comment.EditableBy(email),
		}
	})
}
