package dto

import (
	"github.com/nailroom/salon-scheduler/internal/models"
	"github.com/nailroom/salon-scheduler/internal/timefmt"
)

// EventDTO is the calendar wire shape; start/end carry the fixed
// "YYYY-MM-DD HH:MM:SS" layout.
type EventDTO struct {
	Title string `json:"title"`
	ID    uint   `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func FromEvent(ev models.Event) EventDTO {
	return EventDTO{
		Title: ev.Title,
		ID:    ev.ID,
		Start: timefmt.FormatEvent(ev.StartTime),
		End:   timefmt.FormatEvent(ev.EndTime),
	}
}

func FromEvents(events []models.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, FromEvent(ev))
	}
	return out
}
