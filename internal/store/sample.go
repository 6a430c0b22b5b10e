package store

import (
	"context"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
)

// SeedSampleData populates an empty store with starter data on first run
// so the dashboard is not blank. It is a one-shot: a persisted flag (not
// the current contents) guards re-seeding, so clearing data later does not
// bring the samples back.
func (s *Store) SeedSampleData(ctx context.Context) (bool, error) {
	seeded, err := s.repo.Get(ctx, KeySeeded)
	if err != nil {
		return false, err
	}
	if seeded != "" {
		return false, nil
	}

	s.mu.Lock()
	if len(s.tasks) > 0 || len(s.exams) > 0 || len(s.studySessions) > 0 {
		s.mu.Unlock()
		return false, s.repo.Set(ctx, KeySeeded, "true")
	}

	now := s.now()
	s.tasks = sampleTasks(now)
	s.exams = sampleExams(now)
	s.studySessions = sampleSessions(now)

	s.persist(ctx, KeyTasks, s.tasks)
	s.persist(ctx, KeyExams, s.exams)
	s.persist(ctx, KeyStudySessions, s.studySessions)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.repo.Set(ctx, KeySeeded, "true"); err != nil {
		return false, err
	}
	s.publish(snapshot)
	return true, nil
}

func sampleTasks(now time.Time) []models.Task {
	return []models.Task{
		{
			ID:            "sample-task-1",
			Title:         "Complete Calculus Problem Set",
			Description:   "Chapter 5: Integration techniques",
			DueDate:       now.AddDate(0, 0, 3),
			Priority:      models.PriorityHigh,
			Difficulty:    models.DifficultyHard,
			Category:      "Mathematics",
			EstimatedTime: 120,
			Status:        models.TaskStatusTodo,
		},
		{
			ID:            "sample-task-2",
			Title:         "Read Physics Chapter 8",
			Description:   "Thermodynamics and heat transfer",
			DueDate:       now.AddDate(0, 0, 1),
			Priority:      models.PriorityMedium,
			Difficulty:    models.DifficultyMedium,
			Category:      "Physics",
			EstimatedTime: 60,
			Status:        models.TaskStatusTodo,
		},
		{
			ID:            "sample-task-3",
			Title:         "Chemistry Lab Report",
			Description:   "Acid-base titration experiment",
			DueDate:       now.AddDate(0, 0, 5),
			Priority:      models.PriorityMedium,
			Difficulty:    models.DifficultyEasy,
			Category:      "Chemistry",
			EstimatedTime: 90,
			Status:        models.TaskStatusTodo,
		},
		{
			ID:            "sample-task-4",
			Title:         "Practice Spanish Vocabulary",
			Description:   "Unit 4 words and phrases",
			DueDate:       now.AddDate(0, 0, 2),
			Priority:      models.PriorityLow,
			Difficulty:    models.DifficultyEasy,
			Category:      "Spanish",
			EstimatedTime: 30,
			Status:        models.TaskStatusTodo,
		},
	}
}

func sampleExams(now time.Time) []models.Exam {
	return []models.Exam{
		{
			ID:         "sample-exam-1",
			Subject:    "Mathematics",
			Date:       now.AddDate(0, 0, 10),
			Topics:     []string{"Calculus", "Linear Algebra", "Differential Equations"},
			Importance: models.PriorityHigh,
		},
		{
			ID:         "sample-exam-2",
			Subject:    "Physics",
			Date:       now.AddDate(0, 0, 13),
			Topics:     []string{"Mechanics", "Thermodynamics", "Waves"},
			Importance: models.PriorityHigh,
		},
		{
			ID:         "sample-exam-3",
			Subject:    "Chemistry",
			Date:       now.AddDate(0, 0, 17),
			Topics:     []string{"Organic Chemistry", "Chemical Bonding"},
			Importance: models.PriorityMedium,
		},
	}
}

func sampleSessions(now time.Time) []models.StudySession {
	return []models.StudySession{
		{
			ID:        "sample-session-1",
			Subject:   "Mathematics",
			Duration:  90,
			Date:      now.AddDate(0, 0, -1),
			StartTime: "14:00",
			Notes:     "Worked through integration by parts",
			Category:  "Mathematics",
		},
		{
			ID:        "sample-session-2",
			Subject:   "Physics",
			Duration:  60,
			Date:      now.AddDate(0, 0, -2),
			StartTime: "10:00",
			Category:  "Physics",
		},
	}
}
