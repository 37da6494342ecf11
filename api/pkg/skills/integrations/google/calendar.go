package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	CategoryCalendar = "google_calendar"

	SkillCalendarListCalendars = "google_calendar_list_calendars"
	SkillCalendarListEvents    = "google_calendar_list_events"
	SkillCalendarGetEvent      = "google_calendar_get_event"
	SkillCalendarCreateEvent   = "google_calendar_create_event"
	SkillCalendarUpdateEvent   = "google_calendar_update_event"
	SkillCalendarDeleteEvent   = "google_calendar_delete_event"
	SkillCalendarRSVPEvent     = "google_calendar_rsvp_event"
	SkillCalendarSearchEvents  = "google_calendar_search_events"
)

func (s *Skills) calendarEntries() []registry.Entry {
	handler := func(fn handlerFunc[*calendar.Service]) registry.Handler {
		return wrap(s, productCalendar, calendar.NewService, fn)
	}
	return []registry.Entry{
		{Name: SkillCalendarListCalendars, Handler: handler(calendarListCalendars)},
		{Name: SkillCalendarListEvents, Handler: handler(calendarListEvents(false))},
		{Name: SkillCalendarGetEvent, Handler: handler(calendarGetEvent)},
		{Name: SkillCalendarCreateEvent, Handler: handler(calendarCreateEvent)},
		{Name: SkillCalendarUpdateEvent, Handler: handler(calendarUpdateEvent)},
		{Name: SkillCalendarDeleteEvent, Handler: handler(calendarDeleteEvent)},
		{Name: SkillCalendarRSVPEvent, Handler: handler(calendarRSVPEvent)},
		{Name: SkillCalendarSearchEvents, Handler: handler(calendarListEvents(true))},
	}
}

func calendarDefinition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Category:        CategoryCalendar,
		IntegrationType: types.IntegrationTypeGoogle,
		Parameters:      parameters,
	}
}

func calendarDefinitions() []types.SkillDefinition {
	calendarID := func() *types.ParameterSchema {
		return schema.String("ID of the calendar").WithExample("primary")
	}
	eventID := func() *types.ParameterSchema {
		return schema.String("ID of the event").WithExample("abc123")
	}
	timeRange := func(props map[string]*types.ParameterSchema) map[string]*types.ParameterSchema {
		props["timeMin"] = schema.String("RFC3339 start time (inclusive)").WithFormat(schema.FormatDateTime).WithExample("2024-07-01T00:00:00Z")
		props["timeMax"] = schema.String("RFC3339 end time (exclusive)").WithFormat(schema.FormatDateTime).WithExample("2024-07-31T23:59:59Z")
		props["maxResults"] = schema.Integer("Maximum number of events to return").WithRange(1, 250).WithExample(20)
		return props
	}
	event := func(description string) *types.ParameterSchema {
		obj := schema.Object(map[string]*types.ParameterSchema{
			"summary":     schema.String("Event title"),
			"description": schema.String("Event description"),
			"location":    schema.String("Event location"),
			"start": schema.Object(map[string]*types.ParameterSchema{
				"dateTime": schema.String("RFC3339 start time").WithFormat(schema.FormatDateTime),
				"date":     schema.String("All-day start date").WithFormat(schema.FormatDate),
				"timeZone": schema.String("IANA time zone"),
			}),
			"end": schema.Object(map[string]*types.ParameterSchema{
				"dateTime": schema.String("RFC3339 end time").WithFormat(schema.FormatDateTime),
				"date":     schema.String("All-day end date").WithFormat(schema.FormatDate),
				"timeZone": schema.String("IANA time zone"),
			}),
			"attendees": schema.Array("Attendees", schema.Object(map[string]*types.ParameterSchema{
				"email": schema.String("Attendee email").WithFormat(schema.FormatEmail),
			})),
		})
		obj.Description = description
		return obj.WithExample(map[string]any{
			"summary": "Team Meeting",
			"start":   map[string]any{"dateTime": "2024-07-10T10:00:00Z"},
			"end":     map[string]any{"dateTime": "2024-07-10T11:00:00Z"},
		})
	}

	return []types.SkillDefinition{
		calendarDefinition(SkillCalendarListCalendars, "List Google Calendars",
			"List all calendars accessible by the user.",
			schema.Object(map[string]*types.ParameterSchema{}),
		),
		calendarDefinition(SkillCalendarListEvents, "List Calendar Events",
			"List events in a calendar, optionally filtered by time range.",
			schema.Object(timeRange(map[string]*types.ParameterSchema{
				"calendarId": calendarID(),
				"q":          schema.String("Free text search query").WithExample("meeting"),
			}), "calendarId"),
		),
		calendarDefinition(SkillCalendarGetEvent, "Get Calendar Event",
			"Get details for a specific calendar event.",
			schema.Object(map[string]*types.ParameterSchema{
				"calendarId": calendarID(),
				"eventId":    eventID(),
			}, "calendarId", "eventId"),
		),
		calendarDefinition(SkillCalendarCreateEvent, "Create Calendar Event",
			"Create a new event in a calendar.",
			schema.Object(map[string]*types.ParameterSchema{
				"calendarId": calendarID(),
				"event":      event("Event object (Google Calendar API v3 format)"),
			}, "calendarId", "event"),
		),
		calendarDefinition(SkillCalendarUpdateEvent, "Update Calendar Event",
			"Update an existing calendar event.",
			schema.Object(map[string]*types.ParameterSchema{
				"calendarId": calendarID(),
				"eventId":    eventID(),
				"event":      event("Updated event object (Google Calendar API v3 format)"),
			}, "calendarId", "eventId", "event"),
		),
		calendarDefinition(SkillCalendarDeleteEvent, "Delete Calendar Event",
			"Delete an event from a calendar.",
			schema.Object(map[string]*types.ParameterSchema{
				"calendarId": calendarID(),
				"eventId":    eventID(),
			}, "calendarId", "eventId"),
		),
		calendarDefinition(SkillCalendarRSVPEvent, "RSVP to Calendar Event",
			"RSVP or respond to a calendar event invitation.",
			schema.Object(map[string]*types.ParameterSchema{
				"calendarId":     calendarID(),
				"eventId":        eventID(),
				"attendeeEmail":  schema.String("Email of the attendee responding").WithFormat(schema.FormatEmail).WithExample("user@example.com"),
				"responseStatus": schema.String("RSVP status").WithEnum("accepted", "declined", "tentative").WithExample("accepted"),
			}, "calendarId", "eventId", "attendeeEmail", "responseStatus"),
		),
		calendarDefinition(SkillCalendarSearchEvents, "Search Calendar Events",
			"Search for events in a calendar by keyword, attendee, etc.",
			schema.Object(timeRange(map[string]*types.ParameterSchema{
				"calendarId": calendarID(),
				"q":          schema.String("Free text search query").WithExample("project review"),
			}), "calendarId", "q"),
		),
	}
}

func formatEvent(e *calendar.Event) map[string]any {
	return map[string]any{
		"id":          e.Id,
		"summary":     e.Summary,
		"description": e.Description,
		"start":       e.Start,
		"end":         e.End,
		"status":      e.Status,
		"attendees":   e.Attendees,
		"organizer":   e.Organizer,
		"location":    e.Location,
		"hangoutLink": e.HangoutLink,
		"htmlLink":    e.HtmlLink,
	}
}

// eventParam decodes the free-form event object into the API type
func eventParam(p params.Params) (*calendar.Event, error) {
	raw := p.Map("event")
	if raw == nil {
		return nil, errors.New("event object is required")
	}

	bts, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid event object: %w", err)
	}
	var event calendar.Event
	if err := json.Unmarshal(bts, &event); err != nil {
		return nil, fmt.Errorf("invalid event object: %w", err)
	}
	return &event, nil
}

func calendarListCalendars(ctx context.Context, svc *calendar.Service, _ params.Params) (any, error) {
	res, err := svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	calendars := make([]map[string]any, 0, len(res.Items))
	for _, c := range res.Items {
		calendars = append(calendars, map[string]any{
			"id":          c.Id,
			"summary":     c.Summary,
			"description": c.Description,
			"primary":     c.Primary,
			"accessRole":  c.AccessRole,
			"timeZone":    c.TimeZone,
		})
	}

	return map[string]any{
		"success":   true,
		"calendars": calendars,
	}, nil
}

func calendarListEvents(requireQuery bool) handlerFunc[*calendar.Service] {
	return func(ctx context.Context, svc *calendar.Service, p params.Params) (any, error) {
		calendarID, err := p.RequireString("calendarId")
		if err != nil {
			return nil, err
		}
		query := p.String("q")
		if requireQuery && query == "" {
			return nil, errors.New("Search query (q) is required")
		}

		call := svc.Events.List(calendarID).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(int64(p.Limit("maxResults", 20, 250)))
		if query != "" {
			call = call.Q(query)
		}
		if t := p.String("timeMin"); t != "" {
			call = call.TimeMin(t)
		}
		if t := p.String("timeMax"); t != "" {
			call = call.TimeMax(t)
		}

		res, err := call.Context(ctx).Do()
		if err != nil {
			return nil, err
		}

		events := make([]map[string]any, 0, len(res.Items))
		for _, e := range res.Items {
			events = append(events, formatEvent(e))
		}

		return map[string]any{
			"success":     true,
			"events":      events,
			"total_count": len(events),
		}, nil
	}
}

func calendarGetEvent(ctx context.Context, svc *calendar.Service, p params.Params) (any, error) {
	calendarID, err := p.RequireString("calendarId")
	if err != nil {
		return nil, err
	}
	eventID, err := p.RequireString("eventId")
	if err != nil {
		return nil, err
	}

	e, err := svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := formatEvent(e)
	out["recurrence"] = e.Recurrence
	out["reminders"] = e.Reminders
	out["created"] = e.Created
	out["updated"] = e.Updated
	return out, nil
}

func calendarCreateEvent(ctx context.Context, svc *calendar.Service, p params.Params) (any, error) {
	calendarID, err := p.RequireString("calendarId")
	if err != nil {
		return nil, err
	}
	event, err := eventParam(p)
	if err != nil {
		return nil, err
	}

	created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return eventSummary(created), nil
}

func calendarUpdateEvent(ctx context.Context, svc *calendar.Service, p params.Params) (any, error) {
	calendarID, err := p.RequireString("calendarId")
	if err != nil {
		return nil, err
	}
	eventID, err := p.RequireString("eventId")
	if err != nil {
		return nil, err
	}
	event, err := eventParam(p)
	if err != nil {
		return nil, err
	}

	updated, err := svc.Events.Update(calendarID, eventID, event).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return eventSummary(updated), nil
}

func eventSummary(e *calendar.Event) map[string]any {
	return map[string]any{
		"success":  true,
		"id":       e.Id,
		"summary":  e.Summary,
		"status":   e.Status,
		"htmlLink": e.HtmlLink,
		"start":    e.Start,
		"end":      e.End,
	}
}

func calendarDeleteEvent(ctx context.Context, svc *calendar.Service, p params.Params) (any, error) {
	calendarID, err := p.RequireString("calendarId")
	if err != nil {
		return nil, err
	}
	eventID, err := p.RequireString("eventId")
	if err != nil {
		return nil, err
	}

	if err := svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "eventId": eventID}, nil
}

func calendarRSVPEvent(ctx context.Context, svc *calendar.Service, p params.Params) (any, error) {
	calendarID, err := p.RequireString("calendarId")
	if err != nil {
		return nil, err
	}
	eventID, err := p.RequireString("eventId")
	if err != nil {
		return nil, err
	}
	status := p.String("responseStatus")
	if status == "" {
		return nil, errors.New("responseStatus is required (accepted, declined, tentative)")
	}
	attendee, err := p.RequireString("attendeeEmail")
	if err != nil {
		return nil, err
	}

	event, err := svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(event.Attendees) == 0 {
		return nil, errors.New("No attendees found for this event")
	}

	found := false
	for _, a := range event.Attendees {
		if a.Email == attendee {
			a.ResponseStatus = status
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%s is not an attendee of this event", attendee)
	}

	patched, err := svc.Events.Patch(calendarID, eventID, &calendar.Event{Attendees: event.Attendees}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":   true,
		"id":        patched.Id,
		"summary":   patched.Summary,
		"status":    patched.Status,
		"attendees": patched.Attendees,
	}, nil
}
