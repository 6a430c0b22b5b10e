package services

import (
	"sort"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
)

// DayStat aggregates one calendar day of the trailing week.
type DayStat struct {
	Date           string `json:"date"`
	TasksDue       int    `json:"tasksDue"`
	TasksCompleted int    `json:"tasksCompleted"`
	StudyMinutes   int    `json:"studyMinutes"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type Overview struct {
	TotalTasks        int               `json:"totalTasks"`
	CompletedTasks    int               `json:"completedTasks"`
	CompletionRate    int               `json:"completionRate"`
	TotalStudyMinutes int               `json:"totalStudyMinutes"`
	AvgEstimatedTime  int               `json:"avgEstimatedTime"`
	MonthTasks        int               `json:"monthTasks"`
	MonthCompleted    int               `json:"monthCompleted"`
	Daily             []DayStat         `json:"daily"`
	Categories        []CategoryCount   `json:"categories"`
	Priorities        PriorityBreakdown `json:"priorities"`
}

// BuildOverview computes the analytics dashboard figures: overall totals,
// a seven-day daily series ending today, this month's completion, and
// category/priority breakdowns.
func BuildOverview(tasks []models.Task, sessions []models.StudySession, now time.Time) Overview {
	overview := Overview{Daily: make([]DayStat, 0, 7), Categories: []CategoryCount{}}

	overview.TotalTasks = len(tasks)
	estimatedTotal := 0
	for _, task := range tasks {
		if task.Completed {
			overview.CompletedTasks++
			estimatedTotal += task.EstimatedTime
		}

		switch task.Priority {
		case models.PriorityHigh:
			overview.Priorities.High++
		case models.PriorityMedium:
			overview.Priorities.Medium++
		case models.PriorityLow:
			overview.Priorities.Low++
		}

		if sameMonth(task.DueDate, now) {
			overview.MonthTasks++
			if task.Completed {
				overview.MonthCompleted++
			}
		}
	}
	if overview.TotalTasks > 0 {
		overview.CompletionRate = overview.CompletedTasks * 100 / overview.TotalTasks
	}
	if overview.CompletedTasks > 0 {
		overview.AvgEstimatedTime = estimatedTotal / overview.CompletedTasks
	}

	for _, session := range sessions {
		overview.TotalStudyMinutes += session.Duration
	}

	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		stat := DayStat{Date: day.Format(time.DateOnly)}
		for _, task := range tasks {
			if sameDay(task.DueDate, day) {
				stat.TasksDue++
				if task.Completed {
					stat.TasksCompleted++
				}
			}
		}
		for _, session := range sessions {
			if sameDay(session.Date, day) {
				stat.StudyMinutes += session.Duration
			}
		}
		overview.Daily = append(overview.Daily, stat)
	}

	counts := make(map[string]int)
	for _, task := range tasks {
		if task.Category != "" {
			counts[task.Category]++
		}
	}
	for category, count := range counts {
		overview.Categories = append(overview.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(overview.Categories, func(i, j int) bool {
		return overview.Categories[i].Category < overview.Categories[j].Category
	})

	return overview
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
