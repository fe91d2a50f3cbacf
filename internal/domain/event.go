// Package domain holds the event-planning entities, their over-the-wire
// shapes, and the conversions between the two.
package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eveplan/eveweb/internal/timecodec"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Event is the local representation: start and end times are absolute
// instants. AuthorEmail is required on create and immutable afterwards; the
// backend enforces that, the client only stamps it.
type Event struct {
	ID              int64
	Title           string `validate:"required"`
	Description     string
	Place           string
	StartTime       *time.Time
	EndTime         *time.Time
	Food            string
	Drinks          string
	Program         string
	ParkingInfo     string
	Music           string
	Theme           string
	AgeRestrictions string
	AuthorEmail     string `validate:"required,email"`
}

// EventWire is the DTO shape: times are UTC-naive strings. Field names match
// the backend schema.
type EventWire struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Place           string  `json:"place,omitempty"`
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	Food            string  `json:"food,omitempty"`
	Drinks          string  `json:"drinks,omitempty"`
	Program         string  `json:"program,omitempty"`
	ParkingInfo     string  `json:"parking_info,omitempty"`
	Music           string  `json:"music,omitempty"`
	Theme           string  `json:"theme,omitempty"`
	AgeRestrictions string  `json:"age_restrictions,omitempty"`
	AuthorEmail     string  `json:"author_email"`
}

// Validate checks required-field presence before submission. Full validation
// stays on the backend.
func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("event is missing required fields: %w", err)
	}
	return nil
}

// Mine reports whether the event belongs to the given identity.
func (e Event) Mine(email string) bool {
	return email != "" && e.AuthorEmail == email
}

// Wire encodes the event for transmission, converting both instants through
// the codec.
func (e Event) Wire(codec *timecodec.Codec) EventWire {
	return EventWire{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Place:           e.Place,
		StartTime:       codec.EncodeOptional(e.StartTime),
		EndTime:         codec.EncodeOptional(e.EndTime),
		Food:            e.Food,
		Drinks:          e.Drinks,
		Program:         e.Program,
		ParkingInfo:     e.ParkingInfo,
		Music:           e.Music,
		Theme:           e.Theme,
		AgeRestrictions: e.AgeRestrictions,
		AuthorEmail:     e.AuthorEmail,
	}
}

// Local decodes a wire record into the local representation.
func (w EventWire) Local(codec *timecodec.Codec) (Event, error) {
	start, err := codec.DecodeOptional(w.StartTime)
	if err != nil {
		return Event{}, fmt.Errorf("event %d start time: %w", w.ID, err)
	}
	end, err := codec.DecodeOptional(w.EndTime)
	if err != nil {
		return Event{}, fmt.Errorf("event %d end time: %w", w.ID, err)
	}
	return Event{
		ID:              w.ID,
		Title:           w.Title,
		Description:     w.Description,
		Place:           w.Place,
		StartTime:       start,
		EndTime:         end,
		Food:            w.Food,
		Drinks:          w.Drinks,
		Program:         w.Program,
		ParkingInfo:     w.ParkingInfo,
		Music:           w.Music,
		Theme:           w.Theme,
		AgeRestrictions: w.AgeRestrictions,
		AuthorEmail:     w.AuthorEmail,
	}, nil
}
