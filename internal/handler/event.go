package handler

import (
	"fmt"
	"net/http"

	"github.com/eveplan/eveweb/internal/domain"
)

type eventsPageData struct {
	Filter string
	Events []EventView
}

func (h *Handler) EventsGetHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	var (
		events []domain.Event
		err    error
	)
	switch filter {
	case "upcoming":
		events, err = h.Client.UpcomingEvents(r.Context())
	case "mine":
		events, err = h.Client.MyEvents(r.Context())
	default:
		filter = "all"
		events, err = h.Client.Events(r.Context())
	}
	if err != nil {
		h.failRedirect(w, r, err, "/login")
		return
	}

	h.renderTemplate(w, "events.html", eventsPageData{
		Filter: filter,
		Events: h.eventViews(events),
	})
}

type eventDetailPageData struct {
	Event    EventView
	Comments []CommentView
}

func (h *Handler) EventGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.Client.Event(r.Context(), id)
	if err != nil {
		h.failRedirect(w, r, err, "/")
		return
	}
	comments, err := h.Client.EventComments(r.Context(), id)
	if err != nil {
		h.failRedirect(w, r, err, "/")
		return
	}

	h.renderTemplate(w, "event_detail.html", eventDetailPageData{
		Event:    h.eventView(event),
		Comments: h.commentViews(comments),
	})
}

// eventFormPageData feeds the shared create/edit form.
type eventFormPageData struct {
	Title     string
	Action    string
	Event     domain.Event
	StartForm string
	EndForm   string
	Error     string
}

func (h *Handler) EventNewGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "event_form.html", eventFormPageData{
		Title:  "New event",
		Action: "/events/new",
	})
}

func (h *Handler) EventNewPostHandler(w http.ResponseWriter, r *http.Request) {
	event, formErr := h.eventFromForm(r)
	event.AuthorEmail = h.Store.Email()
	if formErr != nil {
		h.renderEventForm(w, "New event", "/events/new", event, formErr)
		return
	}

	created, err := h.Client.CreateEvent(r.Context(), event)
	if err != nil {
		h.failRedirect(w, r, err, "/events/new")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/events/%d", created.ID), http.StatusSeeOther)
}

func (h *Handler) EventEditGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.Client.Event(r.Context(), id)
	if err != nil {
		h.failRedirect(w, r, err, "/")
		return
	}

	h.renderEventForm(w, "Edit event", fmt.Sprintf("/events/%d/edit", id), event, nil)
}

func (h *Handler) EventEditPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	action := fmt.Sprintf("/events/%d/edit", id)

	event, formErr := h.eventFromForm(r)
	event.ID = id
	// The author never changes; it travels through the form as a hidden
	// field so edits keep the original identity.
	event.AuthorEmail = r.FormValue("author_email")
	if formErr != nil {
		h.renderEventForm(w, "Edit event", action, event, formErr)
		return
	}

	if _, err := h.Client.UpdateEvent(r.Context(), id, event); err != nil {
		h.failRedirect(w, r, err, action)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/events/%d", id), http.StatusSeeOther)
}

func (h *Handler) EventDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Client.DeleteEvent(r.Context(), id); err != nil {
		h.failRedirect(w, r, err, fmt.Sprintf("/events/%d", id))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// eventFromForm collects the submitted fields. Times arrive as local
// wall-clock values and stay local here; the API client converts them to
// wire format on submission.
func (h *Handler) eventFromForm(r *http.Request) (domain.Event, error) {
	event := domain.Event{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		Place:           r.FormValue("place"),
		Food:            r.FormValue("food"),
		Drinks:          r.FormValue("drinks"),
		Program:         r.FormValue("program"),
		ParkingInfo:     r.FormValue("parking_info"),
		Music:           r.FormValue("music"),
		Theme:           r.FormValue("theme"),
		AgeRestrictions: r.FormValue("age_restrictions"),
	}

	start, err := h.parseFormTime(r.FormValue("start_time"))
	if err != nil {
		return event, err
	}
	event.StartTime = start

	end, err := h.parseFormTime(r.FormValue("end_time"))
	if err != nil {
		return event, err
	}
	event.EndTime = end

	return event, nil
}

func (h *Handler) renderEventForm(w http.ResponseWriter, title, action string, event domain.Event, formErr error) {
	data := eventFormPageData{
		Title:     title,
		Action:    action,
		Event:     event,
		StartForm: h.formTime(event.StartTime),
		EndForm:   h.formTime(event.EndTime),
	}
	if formErr != nil {
		data.Error = formErr.Error()
	}
	h.renderTemplate(w, "event_form.html", data)
}
