package mcp

import (
	"context"

	"evplan/internal/stats"
)

type activeEventView struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	ClientName      string `json:"clientName"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Date            string `json:"date"`
	Location        string `json:"location,omitempty"`
	Attendees       int    `json:"attendees"`
	Progress        int    `json:"progress"`
	SlotUtilization int    `json:"slotUtilization"`
	Revenue         string `json:"revenue"`
}

func (s *Server) handleSearchEvents(_ context.Context, in eventSearchInput) (any, error) {
	filter := stats.ActiveEventFilter(in.Query, in.EventType, in.Status)
	matched := stats.Search(s.store().ActiveEvents(), filter)

	views := make([]activeEventView, len(matched))
	for i, e := range matched {
		views[i] = activeEventView{
			ID:              e.ID,
			Code:            e.Code,
			Name:            e.Name,
			ClientName:      e.ClientName,
			Type:            string(e.Type),
			Status:          string(e.Status),
			Date:            e.Date.Format("2006-01-02"),
			Location:        e.Location,
			Attendees:       e.Attendees,
			Progress:        e.Progress,
			SlotUtilization: stats.SlotUtilization(e.Event),
			Revenue:         e.Revenue.StringFixed(2),
		}
	}

	warnings := unknownFilter("event_type", in.EventType, filter.Type != "")
	warnings = append(warnings, unknownFilter("status", in.Status, filter.Status != "")...)
	return WrapResponse(views, map[string]any{"filter": filter, "matched": len(views)}, warnings, nil), nil
}

func (s *Server) handleSearchArchive(_ context.Context, in eventSearchInput) (any, error) {
	filter := stats.ArchiveFilter(in.Query, in.EventType, in.Status)
	matched := stats.Search(s.store().ArchivedEvents(), filter)

	warnings := unknownFilter("event_type", in.EventType, filter.Type != "")
	warnings = append(warnings, unknownFilter("status", in.Status, filter.Status != "")...)
	return WrapResponse(matched, map[string]any{"filter": filter, "matched": len(matched)}, warnings, nil), nil
}
