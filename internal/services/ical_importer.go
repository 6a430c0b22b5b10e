package services

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/GhaliAmli/student-focus/internal/models"
	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// ParseExamsFromICS converts the events of an iCalendar stream (a school
// timetable export, typically) into Exam records. Events without a start
// time are skipped with a log line rather than failing the whole import.
func ParseExamsFromICS(r io.Reader) ([]models.Exam, error) {
	calendar, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing ical: %w", err)
	}

	var exams []models.Exam
	for _, event := range calendar.Events() {
		exam, err := convertEvent(event)
		if err != nil {
			slog.Debug("skipping ical event", "error", err)
			continue
		}
		exams = append(exams, exam)
	}
	return exams, nil
}

func convertEvent(event *ical.VEvent) (models.Exam, error) {
	subject := "(No title)"
	if prop := event.GetProperty(ical.ComponentPropertySummary); prop != nil && prop.Value != "" {
		subject = prop.Value
	}

	date, err := event.GetStartAt()
	if err != nil {
		if date, err = event.GetAllDayStartAt(); err != nil {
			return models.Exam{}, fmt.Errorf("event %q has no usable start: %w", subject, err)
		}
	}

	var topics []string
	if prop := event.GetProperty(ical.ComponentPropertyCategories); prop != nil {
		for _, topic := range strings.Split(prop.Value, ",") {
			if trimmed := strings.TrimSpace(topic); trimmed != "" {
				topics = append(topics, trimmed)
			}
		}
	}
	if len(topics) == 0 {
		if prop := event.GetProperty(ical.ComponentPropertyDescription); prop != nil {
			for _, line := range strings.Split(prop.Value, "\\n") {
				if trimmed := strings.TrimSpace(line); trimmed != "" {
					topics = append(topics, trimmed)
				}
			}
		}
	}
	if topics == nil {
		topics = []string{}
	}

	return models.Exam{
		ID:         uuid.New().String(),
		Subject:    subject,
		Date:       date,
		Topics:     topics,
		Importance: models.PriorityMedium,
	}, nil
}
