package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Task carries two completion fields for compatibility with backup files
// from older clients: the boolean and the kanban status. Store write paths
// keep them reconciled; Sync is the single place that rule lives.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Completed     bool       `json:"completed"`
	DueDate       time.Time  `json:"dueDate"`
	Priority      Priority   `json:"priority"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
	EstimatedTime int        `json:"estimatedTime,omitempty"`
	Status        TaskStatus `json:"status,omitempty"`
	Subject       string     `json:"subject,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// Sync reconciles Completed and Status. A set status is authoritative;
// an unset one is derived from the boolean.
func (t *Task) Sync() {
	if t.Status == "" {
		if t.Completed {
			t.Status = TaskStatusCompleted
		} else {
			t.Status = TaskStatusTodo
		}
		return
	}
	t.Completed = t.Status == TaskStatusCompleted
}

// SetCompleted flips the boolean and moves the status with it.
func (t *Task) SetCompleted(completed bool) {
	t.Completed = completed
	if completed {
		t.Status = TaskStatusCompleted
	} else {
		t.Status = TaskStatusTodo
	}
}

type Exam struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Date       time.Time `json:"date"`
	Topics     []string  `json:"topics"`
	Importance Priority  `json:"importance"`
}

type StudySession struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Duration  int       `json:"duration"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Category  string    `json:"category"`
}

type StudyPlan struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Goals         []string  `json:"goals"`
	HoursPerDay   float64   `json:"hoursPerDay"`
	Exams         []Exam    `json:"exams"`
	GeneratedPlan string    `json:"generatedPlan,omitempty"`
}

type NotificationSettings struct {
	TaskReminders     bool   `json:"taskReminders"`
	ExamReminders     bool   `json:"examReminders"`
	DailyReminderTime string `json:"dailyReminderTime"`
	WeeklyReminderDay string `json:"weeklyReminderDay"`
}

type Settings struct {
	Theme         Theme                `json:"theme"`
	AccentColor   string               `json:"accentColor"`
	Notifications NotificationSettings `json:"notifications"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:       ThemeSystem,
		AccentColor: "#3b82f6",
		Notifications: NotificationSettings{
			DailyReminderTime: "09:00",
			WeeklyReminderDay: "monday",
		},
	}
}

// Gamification is the singleton rewards record. LastCompletionDate is a
// calendar day ("2006-01-02"), empty when no task was ever completed.
// TasksCompleted counts completion events and is never decremented.
type Gamification struct {
	Points             int      `json:"points"`
	Badges             []string `json:"badges"`
	Streak             int      `json:"streak"`
	LastCompletionDate string   `json:"lastCompletionDate,omitempty"`
	TasksCompleted     int      `json:"tasksCompleted"`
	StudyMinutes       int      `json:"studyMinutes"`
}

func DefaultGamification() Gamification {
	return Gamification{Badges: []string{}}
}
