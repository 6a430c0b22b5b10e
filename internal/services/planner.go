package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNoExams          = errors.New("at least one exam is required")
	ErrNonPositiveHours = errors.New("hours per day must be positive")
	ErrEndBeforeStart   = errors.New("end date precedes start date")
)

// PlanRequest are the generator inputs. A zero StartDate defaults to now
// and a zero EndDate to thirty days after the start.
type PlanRequest struct {
	Exams       []models.Exam `json:"exams"`
	HoursPerDay float64       `json:"hoursPerDay"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Goals       []string      `json:"goals"`
}

// GeneratePlan assembles a StudyPlan with a deterministic schedule text
// derived from the exams and available hours. The exams are snapshot
// copies; later edits to the exam collection do not change the plan.
func GeneratePlan(request PlanRequest, now time.Time) (models.StudyPlan, error) {
	if len(request.Exams) == 0 {
		return models.StudyPlan{}, ErrNoExams
	}
	if request.HoursPerDay <= 0 {
		return models.StudyPlan{}, ErrNonPositiveHours
	}

	start := request.StartDate
	if start.IsZero() {
		start = now
	}
	end := request.EndDate
	if end.IsZero() {
		end = start.AddDate(0, 0, 30)
	}
	if end.Before(start) {
		return models.StudyPlan{}, ErrEndBeforeStart
	}

	exams := make([]models.Exam, len(request.Exams))
	copy(exams, request.Exams)

	goals := make([]string, 0, len(request.Goals))
	for _, goal := range request.Goals {
		if trimmed := strings.TrimSpace(goal); trimmed != "" {
			goals = append(goals, trimmed)
		}
	}

	return models.StudyPlan{
		ID:            uuid.New().String(),
		Title:         "Study Plan - " + now.Format("Jan 2006"),
		Description:   fmt.Sprintf("Plan for %d exam(s)", len(exams)),
		StartDate:     start,
		EndDate:       end,
		Goals:         goals,
		HoursPerDay:   request.HoursPerDay,
		Exams:         exams,
		GeneratedPlan: renderPlan(exams, request.HoursPerDay),
	}, nil
}

func renderPlan(exams []models.Exam, hoursPerDay float64) string {
	var b strings.Builder

	b.WriteString("# Your Personalized Study Plan\n\n")
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "Based on your %d upcoming exam(s) and %g hours available per day, here's your optimized study schedule.\n\n", len(exams), hoursPerDay)

	first := exams[0]
	second := first
	if len(exams) > 1 {
		second = exams[1]
	}

	b.WriteString("## Week 1: Foundation Building\n")
	b.WriteString("**Monday - Wednesday**\n")
	fmt.Fprintf(&b, "- %s: Review fundamental concepts (2 hours/day)\n", first.Subject)
	fmt.Fprintf(&b, "- Practice problems from %s (1 hour/day)\n\n", topicOr(first.Topics, 0, "core topics"))
	b.WriteString("**Thursday - Friday**\n")
	deepDive := topicOr(second.Topics, 0, topicOr(first.Topics, 1, "advanced topics"))
	if len(exams) == 1 {
		deepDive = topicOr(first.Topics, 1, "advanced topics")
	}
	fmt.Fprintf(&b, "- %s: Deep dive into %s (2 hours/day)\n", second.Subject, deepDive)
	b.WriteString("- Create summary notes (1 hour/day)\n\n")
	b.WriteString("**Weekend**\n")
	b.WriteString("- Review all topics covered this week\n")
	b.WriteString("- Complete practice tests\n")
	b.WriteString("- Identify weak areas\n\n")

	b.WriteString("## Week 2: Practice & Reinforcement\n")
	b.WriteString("**Monday - Wednesday**\n")
	perExamHours := int(hoursPerDay) / len(exams)
	for _, exam := range exams {
		focus := exam.Topics
		if len(focus) > 2 {
			focus = focus[:2]
		}
		fmt.Fprintf(&b, "- %s: Focus on %s (%d hours/day)\n", exam.Subject, strings.Join(focus, " and "), perExamHours)
	}
	b.WriteString("\n**Thursday - Friday**\n")
	b.WriteString("- Mixed practice sessions\n")
	b.WriteString("- Timed mock exams\n")
	b.WriteString("- Review mistakes and gaps\n\n")
	b.WriteString("**Weekend**\n")
	b.WriteString("- Final review sessions\n")
	b.WriteString("- Rest and mental preparation\n\n")

	b.WriteString("## Week 3: Exam Week\n")
	b.WriteString("**Leading up to exams:**\n")
	for _, exam := range exams {
		fmt.Fprintf(&b, "- %s: %s exam - Light review only, focus on rest\n", exam.Date.Format("Jan 02"), exam.Subject)
	}
	b.WriteString("\n")

	b.WriteString("## Study Tips\n")
	b.WriteString("- Take 10-minute breaks every hour\n")
	b.WriteString("- Use active recall and spaced repetition\n")
	b.WriteString("- Stay hydrated and get 7-8 hours of sleep\n")
	b.WriteString("- Review notes before bed for better retention\n")
	b.WriteString("- Practice under exam conditions\n\n")

	b.WriteString("## Daily Schedule Template\n")
	b.WriteString("- Morning (2 hours): Focus on most difficult subjects\n")
	b.WriteString("- Afternoon (1 hour): Practice problems and review\n")
	b.WriteString("- Evening: Light review and preparation for next day\n\n")

	b.WriteString("---\n")
	b.WriteString("*This plan is generated based on your inputs. Adjust as needed based on your progress and comfort level.*\n")

	return b.String()
}

func topicOr(topics []string, index int, fallback string) string {
	if index < len(topics) {
		return topics[index]
	}
	return fallback
}
