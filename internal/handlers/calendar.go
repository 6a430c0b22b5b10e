package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GhaliAmli/student-focus/internal/store"
)

// CalendarHandler serves the study calendar as an iCalendar feed: tasks as
// VTODO entries, exams and logged sessions as VEVENTs.
type CalendarHandler struct {
	store *store.Store
}

func NewCalendarHandler(s *store.Store) *CalendarHandler {
	return &CalendarHandler{store: s}
}

func (handler *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	snapshot := handler.store.Snapshot()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=student-focus.ics")

	var builder strings.Builder
	builder.WriteString("BEGIN:VCALENDAR\r\n")
	builder.WriteString("VERSION:2.0\r\n")
	builder.WriteString("PRODID:-//Student Focus//Student Focus//EN\r\n")
	builder.WriteString("CALSCALE:GREGORIAN\r\n")
	builder.WriteString("METHOD:PUBLISH\r\n")
	builder.WriteString("X-WR-CALNAME:Student Focus\r\n")

	for _, exam := range snapshot.Exams {
		builder.WriteString("BEGIN:VEVENT\r\n")
		builder.WriteString(fmt.Sprintf("UID:exam-%s@student-focus\r\n", exam.ID))
		builder.WriteString(fmt.Sprintf("SUMMARY:[Exam] %s\r\n", escapeICalText(exam.Subject)))
		if len(exam.Topics) > 0 {
			builder.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICalText(strings.Join(exam.Topics, ", "))))
		}
		builder.WriteString(fmt.Sprintf("DTSTART:%s\r\n", exam.Date.UTC().Format(icalTimeLayout)))
		builder.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format(icalTimeLayout)))
		builder.WriteString("END:VEVENT\r\n")
	}

	for _, session := range snapshot.StudySessions {
		builder.WriteString("BEGIN:VEVENT\r\n")
		builder.WriteString(fmt.Sprintf("UID:session-%s@student-focus\r\n", session.ID))
		builder.WriteString(fmt.Sprintf("SUMMARY:[Study] %s\r\n", escapeICalText(session.Subject)))
		if session.Notes != "" {
			builder.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICalText(session.Notes)))
		}
		start := sessionStart(session.Date, session.StartTime)
		builder.WriteString(fmt.Sprintf("DTSTART:%s\r\n", start.UTC().Format(icalTimeLayout)))
		if session.Duration > 0 {
			end := start.Add(time.Duration(session.Duration) * time.Minute)
			builder.WriteString(fmt.Sprintf("DTEND:%s\r\n", end.UTC().Format(icalTimeLayout)))
		}
		builder.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format(icalTimeLayout)))
		builder.WriteString("END:VEVENT\r\n")
	}

	for _, task := range snapshot.Tasks {
		builder.WriteString("BEGIN:VTODO\r\n")
		builder.WriteString(fmt.Sprintf("UID:task-%s@student-focus\r\n", task.ID))
		builder.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICalText(task.Title)))
		if task.Description != "" {
			builder.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICalText(task.Description)))
		}
		if !task.DueDate.IsZero() {
			builder.WriteString(fmt.Sprintf("DUE:%s\r\n", task.DueDate.UTC().Format(icalTimeLayout)))
		}
		if task.Completed {
			builder.WriteString("STATUS:COMPLETED\r\n")
		} else {
			builder.WriteString("STATUS:NEEDS-ACTION\r\n")
		}
		builder.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format(icalTimeLayout)))
		builder.WriteString("END:VTODO\r\n")
	}

	builder.WriteString("END:VCALENDAR\r\n")
	w.Write([]byte(builder.String()))
}

const icalTimeLayout = "20060102T150405Z"

// sessionStart combines the session date with its optional HH:MM start.
func sessionStart(date time.Time, startTime string) time.Time {
	if startTime == "" {
		return date
	}
	parsed, err := time.Parse("15:04", startTime)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location())
}

func escapeICalText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
