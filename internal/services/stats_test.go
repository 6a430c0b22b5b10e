package services_test

import (
	"testing"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/services"
)

func TestBuildOverview_Empty(t *testing.T) {
	overview := services.BuildOverview(nil, nil, time.Now())

	if overview.TotalTasks != 0 || overview.CompletionRate != 0 || overview.AvgEstimatedTime != 0 {
		t.Errorf("empty overview not zeroed: %+v", overview)
	}
	if len(overview.Daily) != 7 {
		t.Errorf("expected 7 daily buckets, got %d", len(overview.Daily))
	}
}

func TestBuildOverview_Totals(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "1", Completed: true, EstimatedTime: 120, Priority: models.PriorityHigh, Category: "Math", DueDate: now},
		{ID: "2", Completed: true, EstimatedTime: 60, Priority: models.PriorityMedium, Category: "Math", DueDate: now.AddDate(0, 0, -1)},
		{ID: "3", Completed: false, EstimatedTime: 45, Priority: models.PriorityLow, Category: "Physics", DueDate: now.AddDate(0, -1, 0)},
		{ID: "4", Completed: false, Priority: models.PriorityHigh, Category: "Physics", DueDate: now},
	}
	sessions := []models.StudySession{
		{ID: "s1", Duration: 90, Date: now},
		{ID: "s2", Duration: 30, Date: now.AddDate(0, 0, -3)},
		{ID: "s3", Duration: 60, Date: now.AddDate(0, 0, -10)},
	}

	overview := services.BuildOverview(tasks, sessions, now)

	if overview.TotalTasks != 4 || overview.CompletedTasks != 2 {
		t.Errorf("totals wrong: %+v", overview)
	}
	if overview.CompletionRate != 50 {
		t.Errorf("completionRate = %d, want 50", overview.CompletionRate)
	}
	if overview.AvgEstimatedTime != 90 {
		t.Errorf("avgEstimatedTime = %d, want 90 (completed tasks only)", overview.AvgEstimatedTime)
	}
	if overview.TotalStudyMinutes != 180 {
		t.Errorf("totalStudyMinutes = %d, want 180", overview.TotalStudyMinutes)
	}
	if overview.MonthTasks != 3 || overview.MonthCompleted != 2 {
		t.Errorf("month figures wrong: tasks %d completed %d", overview.MonthTasks, overview.MonthCompleted)
	}
	if overview.Priorities.High != 2 || overview.Priorities.Medium != 1 || overview.Priorities.Low != 1 {
		t.Errorf("priority breakdown wrong: %+v", overview.Priorities)
	}
}

func TestBuildOverview_DailySeries(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "1", Completed: true, DueDate: now},
		{ID: "2", Completed: false, DueDate: now},
		{ID: "3", Completed: true, DueDate: now.AddDate(0, 0, -6)},
		{ID: "4", Completed: true, DueDate: now.AddDate(0, 0, -7)}, // outside window
	}
	sessions := []models.StudySession{
		{ID: "s1", Duration: 45, Date: now},
	}

	overview := services.BuildOverview(tasks, sessions, now)

	last := overview.Daily[6]
	if last.Date != "2025-11-20" {
		t.Fatalf("series must end today, last date %q", last.Date)
	}
	if last.TasksDue != 2 || last.TasksCompleted != 1 || last.StudyMinutes != 45 {
		t.Errorf("today's bucket wrong: %+v", last)
	}

	first := overview.Daily[0]
	if first.Date != "2025-11-14" || first.TasksDue != 1 {
		t.Errorf("oldest bucket wrong: %+v", first)
	}
}

func TestBuildOverview_CategoriesSorted(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		{ID: "1", Category: "Physics", DueDate: now},
		{ID: "2", Category: "Math", DueDate: now},
		{ID: "3", Category: "Math", DueDate: now},
		{ID: "4", Category: "", DueDate: now},
	}

	overview := services.BuildOverview(tasks, nil, now)

	if len(overview.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", overview.Categories)
	}
	if overview.Categories[0].Category != "Math" || overview.Categories[0].Count != 2 {
		t.Errorf("categories not sorted by name: %+v", overview.Categories)
	}
}
