package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eveplan/eveweb/internal/domain"
)

// Events returns every event.
func (c *Client) Events(ctx context.Context) ([]domain.Event, error) {
	return c.listEvents(ctx, "/events")
}

// UpcomingEvents returns events with a future start time, filtered by the
// backend.
func (c *Client) UpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	return c.listEvents(ctx, "/events/upcoming")
}

// MyEvents returns events authored by the current identity, filtered by the
// backend.
func (c *Client) MyEvents(ctx context.Context) ([]domain.Event, error) {
	return c.listEvents(ctx, "/events/my")
}

func (c *Client) listEvents(ctx context.Context, path string) ([]domain.Event, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var wires []domain.EventWire
	if err := decode(data, "events", &wires); err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(wires))
	for _, wire := range wires {
		event, err := wire.Local(c.codec)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// Event returns a single event by id.
func (c *Client) Event(ctx context.Context, id int64) (domain.Event, error) {
	return c.eventCall(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil)
}

// CreateEvent submits a new event. Required-field presence is checked before
// transmission; everything else is the backend's call.
func (c *Client) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if err := event.Validate(); err != nil {
		return domain.Event{}, err
	}
	return c.eventCall(ctx, http.MethodPost, "/events", event)
}

// UpdateEvent replaces the event with the given id.
func (c *Client) UpdateEvent(ctx context.Context, id int64, event domain.Event) (domain.Event, error) {
	if err := event.Validate(); err != nil {
		return domain.Event{}, err
	}
	return c.eventCall(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), event)
}

// DeleteEvent removes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil)
	return err
}

// eventCall sends an optional event body and decodes the single-event
// response. Encoding and decoding both go through the codec -- the wire
// never carries a local time in either direction.
func (c *Client) eventCall(ctx context.Context, method, path string, event any) (domain.Event, error) {
	var body any
	if e, ok := event.(domain.Event); ok {
		body = e.Wire(c.codec)
	}

	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return domain.Event{}, err
	}

	var wire domain.EventWire
	if err := decode(data, "event", &wire); err != nil {
		return domain.Event{}, err
	}
	return wire.Local(c.codec)
}
