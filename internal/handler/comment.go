package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/eveplan/eveweb/internal/domain"
)

func commentPayloadFromForm(r *http.Request) domain.CommentPayload {
	// Rating parse failures fall through to 0 and get caught by the
	// payload validation or the backend.
	rating, _ := strconv.Atoi(r.FormValue("rating"))
	return domain.CommentPayload{
		Message: r.FormValue("message"),
		Rating:  rating,
	}
}

func (h *Handler) CommentCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	eventPage := fmt.Sprintf("/events/%d", eventID)

	if _, err := h.Client.CreateComment(r.Context(), eventID, commentPayloadFromForm(r)); err != nil {
		h.failRedirect(w, r, err, eventPage)
		return
	}
	http.Redirect(w, r, eventPage, http.StatusSeeOther)
}

func (h *Handler) CommentEditPostHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	commentID, err := pathID(r, "commentID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	eventPage := fmt.Sprintf("/events/%d", eventID)

	if _, err := h.Client.UpdateComment(r.Context(), eventID, commentID, commentPayloadFromForm(r)); err != nil {
		h.failRedirect(w, r, err, eventPage)
		return
	}
	http.Redirect(w, r, eventPage, http.StatusSeeOther)
}

func (h *Handler) CommentDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	commentID, err := pathID(r, "commentID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	eventPage := fmt.Sprintf("/events/%d", eventID)

	if err := h.Client.DeleteComment(r.Context(), eventID, commentID); err != nil {
		h.failRedirect(w, r, err, eventPage)
		return
	}
	http.Redirect(w, r, eventPage, http.StatusSeeOther)
}
