package services

import (
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
)

const (
	BadgeFirstTask   = "first-task"
	BadgeTaskMaster  = "task-master"
	BadgeTaskLegend  = "task-legend"
	BadgeWeekWarrior = "week-warrior"
)

const basePoints = 10

// Award is the outcome of a single completion event. Badges is the full
// badge set after the event, never smaller than the set before it.
type Award struct {
	Points         int      `json:"points"`
	Badges         []string `json:"badges"`
	TasksCompleted int      `json:"tasksCompleted"`
}

// CompletionPoints returns the points for completing a task: a base of 10
// plus bonuses for priority and difficulty. The range is 20 (low/easy) to
// 40 (high/hard).
func CompletionPoints(priority models.Priority, difficulty models.Difficulty) int {
	points := basePoints

	switch priority {
	case models.PriorityHigh:
		points += 15
	case models.PriorityMedium:
		points += 10
	default:
		points += 5
	}

	switch difficulty {
	case models.DifficultyHard:
		points += 15
	case models.DifficultyMedium:
		points += 10
	default:
		points += 5
	}

	return points
}

// CalculateRewards evaluates one completion event against the current
// gamification record. The caller updates the streak first (NextStreak),
// so the week-warrior check sees the streak including this completion.
func CalculateRewards(task models.Task, gamification models.Gamification) Award {
	completed := gamification.TasksCompleted + 1

	badges := make([]string, len(gamification.Badges))
	copy(badges, gamification.Badges)

	if completed == 1 {
		badges = grant(badges, BadgeFirstTask)
	}
	if completed == 10 {
		badges = grant(badges, BadgeTaskMaster)
	}
	if completed == 50 {
		badges = grant(badges, BadgeTaskLegend)
	}
	if gamification.Streak >= 7 {
		badges = grant(badges, BadgeWeekWarrior)
	}

	return Award{
		Points:         CompletionPoints(task.Priority, task.Difficulty),
		Badges:         badges,
		TasksCompleted: completed,
	}
}

// NextStreak applies the calendar-day streak policy: a completion the day
// after the previous one extends the streak, a repeat on the same day
// leaves it alone, anything else restarts it at 1.
func NextStreak(streak int, lastCompletionDate string, today time.Time) int {
	yesterday := today.AddDate(0, 0, -1).Format(time.DateOnly)

	switch lastCompletionDate {
	case yesterday:
		return streak + 1
	case today.Format(time.DateOnly):
		return streak
	default:
		return 1
	}
}

func grant(badges []string, badge string) []string {
	for _, existing := range badges {
		if existing == badge {
			return badges
		}
	}
	return append(badges, badge)
}
