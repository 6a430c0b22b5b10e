package services_test

import (
	"testing"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/services"
)

func TestCompletionPoints_Table(t *testing.T) {
	tests := []struct {
		priority   models.Priority
		difficulty models.Difficulty
		want       int
	}{
		{models.PriorityLow, models.DifficultyEasy, 20},
		{models.PriorityLow, models.DifficultyMedium, 25},
		{models.PriorityMedium, models.DifficultyEasy, 25},
		{models.PriorityMedium, models.DifficultyMedium, 30},
		{models.PriorityHigh, models.DifficultyMedium, 35},
		{models.PriorityMedium, models.DifficultyHard, 35},
		{models.PriorityHigh, models.DifficultyHard, 40},
	}

	for _, test := range tests {
		got := services.CompletionPoints(test.priority, test.difficulty)
		if got != test.want {
			t.Errorf("CompletionPoints(%s, %s) = %d, want %d", test.priority, test.difficulty, got, test.want)
		}
	}
}

func TestCalculateRewards_FirstTaskBadge(t *testing.T) {
	task := models.Task{Priority: models.PriorityHigh, Difficulty: models.DifficultyHard}
	award := services.CalculateRewards(task, models.DefaultGamification())

	if award.Points != 40 {
		t.Errorf("expected 40 points, got %d", award.Points)
	}
	if award.TasksCompleted != 1 {
		t.Errorf("expected tasksCompleted 1, got %d", award.TasksCompleted)
	}
	if len(award.Badges) != 1 || award.Badges[0] != services.BadgeFirstTask {
		t.Errorf("expected [first-task], got %v", award.Badges)
	}
}

func TestCalculateRewards_ThresholdBadges(t *testing.T) {
	task := models.Task{Priority: models.PriorityLow, Difficulty: models.DifficultyEasy}

	gamification := models.Gamification{TasksCompleted: 9, Badges: []string{services.BadgeFirstTask}}
	award := services.CalculateRewards(task, gamification)
	if !contains(award.Badges, services.BadgeTaskMaster) {
		t.Errorf("expected task-master at count 10, got %v", award.Badges)
	}

	gamification = models.Gamification{TasksCompleted: 49, Badges: award.Badges}
	award = services.CalculateRewards(task, gamification)
	if !contains(award.Badges, services.BadgeTaskLegend) {
		t.Errorf("expected task-legend at count 50, got %v", award.Badges)
	}
}

func TestCalculateRewards_WeekWarriorUsesCurrentStreak(t *testing.T) {
	task := models.Task{Priority: models.PriorityLow, Difficulty: models.DifficultyEasy}
	gamification := models.Gamification{TasksCompleted: 6, Streak: 7, Badges: []string{services.BadgeFirstTask}}

	award := services.CalculateRewards(task, gamification)
	if !contains(award.Badges, services.BadgeWeekWarrior) {
		t.Errorf("expected week-warrior at streak 7, got %v", award.Badges)
	}
}

func TestCalculateRewards_BadgesAreMonotonic(t *testing.T) {
	task := models.Task{Priority: models.PriorityMedium, Difficulty: models.DifficultyMedium}
	gamification := models.DefaultGamification()

	var previous []string
	for i := 0; i < 60; i++ {
		award := services.CalculateRewards(task, gamification)
		for _, badge := range previous {
			if !contains(award.Badges, badge) {
				t.Fatalf("badge %q lost after completion %d", badge, i+1)
			}
		}
		previous = award.Badges
		gamification.Badges = award.Badges
		gamification.TasksCompleted = award.TasksCompleted
	}
}

func TestCalculateRewards_GrantsEachBadgeOnce(t *testing.T) {
	task := models.Task{Priority: models.PriorityLow, Difficulty: models.DifficultyEasy}
	gamification := models.Gamification{Streak: 10, Badges: []string{services.BadgeWeekWarrior}, TasksCompleted: 3}

	award := services.CalculateRewards(task, gamification)
	count := 0
	for _, badge := range award.Badges {
		if badge == services.BadgeWeekWarrior {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected week-warrior exactly once, found %d", count)
	}
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2025, 11, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		streak int
		last   string
		want   int
	}{
		{"first ever completion", 0, "", 1},
		{"consecutive day", 3, "2025-11-19", 4},
		{"same day repeat", 3, "2025-11-20", 3},
		{"gap resets", 5, "2025-11-18", 1},
		{"long gap resets", 12, "2025-10-01", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := services.NextStreak(test.streak, test.last, today)
			if got != test.want {
				t.Errorf("NextStreak(%d, %q) = %d, want %d", test.streak, test.last, got, test.want)
			}
		})
	}
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
