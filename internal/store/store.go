// Package store is the single source of truth for all domain state. Every
// read and write goes through it; each successful mutation persists the
// affected collection before publishing the new state to subscribers.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/repository"
	"github.com/GhaliAmli/student-focus/internal/services"
)

// Storage keys keep the studentfocus_ prefix used by the earlier browser
// client so a migrated database keeps its naming.
const (
	KeyTasks         = "studentfocus_tasks"
	KeyExams         = "studentfocus_exams"
	KeyStudyPlans    = "studentfocus_studyplans"
	KeyStudySessions = "studentfocus_studysessions"
	KeySettings      = "studentfocus_settings"
	KeyGamification  = "studentfocus_gamification"
	KeySeeded        = "studentfocus_seeded"
)

type AddOutcome string

const (
	OutcomeAdded         AddOutcome = "added"
	OutcomeAlreadyExists AddOutcome = "already-exists"
)

type UpdateOutcome string

const (
	OutcomeUpdated  UpdateOutcome = "updated"
	OutcomeDeleted  UpdateOutcome = "deleted"
	OutcomeNotFound UpdateOutcome = "not-found"
)

// ToggleResult reports a toggle. Award is set only when the flip was a
// completion event (incomplete to complete); un-completing revokes nothing.
type ToggleResult struct {
	Outcome   UpdateOutcome   `json:"outcome"`
	Completed bool            `json:"completed"`
	Award     *services.Award `json:"award,omitempty"`
}

// Snapshot is a consistent copy of the whole state, handed to readers and
// subscribers. Mutating a snapshot does not touch the store.
type Snapshot struct {
	Tasks         []models.Task         `json:"tasks"`
	Exams         []models.Exam         `json:"exams"`
	StudyPlans    []models.StudyPlan    `json:"studyPlans"`
	StudySessions []models.StudySession `json:"studySessions"`
	Settings      models.Settings       `json:"settings"`
	Gamification  models.Gamification   `json:"gamification"`
	Initialized   bool                  `json:"initialized"`
}

// ExportPayload is the backup file format: the four main collections with
// dates as RFC 3339 text.
type ExportPayload struct {
	Tasks         []models.Task         `json:"tasks"`
	Exams         []models.Exam         `json:"exams"`
	StudyPlans    []models.StudyPlan    `json:"studyPlans"`
	StudySessions []models.StudySession `json:"studySessions"`
}

// ImportPayload distinguishes an absent collection (left untouched) from a
// present-but-empty one (replaced with nothing).
type ImportPayload struct {
	Tasks         *[]models.Task         `json:"tasks"`
	Exams         *[]models.Exam         `json:"exams"`
	StudyPlans    *[]models.StudyPlan    `json:"studyPlans"`
	StudySessions *[]models.StudySession `json:"studySessions"`
}

// ImportSummary counts the records of each replaced collection; a
// collection absent from the payload counts zero.
type ImportSummary struct {
	Tasks         int `json:"tasks"`
	Exams         int `json:"exams"`
	StudyPlans    int `json:"studyPlans"`
	StudySessions int `json:"studySessions"`
}

type Subscriber func(Snapshot)

type Option func(*Store)

// WithThemeApplier registers the hook invoked with the active settings on
// load and whenever theme or accent color change.
func WithThemeApplier(apply func(models.Settings)) Option {
	return func(s *Store) { s.applyTheme = apply }
}

// WithClock overrides the time source; streak tests depend on it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	repo       repository.StateRepository
	applyTheme func(models.Settings)
	now        func() time.Time

	mu          sync.Mutex
	subscribers map[int]Subscriber
	nextSubID   int

	tasks         []models.Task
	exams         []models.Exam
	studyPlans    []models.StudyPlan
	studySessions []models.StudySession
	settings      models.Settings
	gamification  models.Gamification
	initialized   bool
}

func New(repo repository.StateRepository, opts ...Option) *Store {
	store := &Store{
		repo:         repo,
		applyTheme:   func(models.Settings) {},
		now:          time.Now,
		subscribers:  make(map[int]Subscriber),
		settings:     models.DefaultSettings(),
		gamification: models.DefaultGamification(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Load reads every persisted collection, falling back to defaults for keys
// that were never written or no longer parse. It is idempotent: once the
// store is initialized further calls return immediately.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}

	if err := s.loadDocument(ctx, KeyTasks, &s.tasks); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.loadDocument(ctx, KeyExams, &s.exams); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.loadDocument(ctx, KeyStudyPlans, &s.studyPlans); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.loadDocument(ctx, KeyStudySessions, &s.studySessions); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.loadDocument(ctx, KeySettings, &s.settings); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.loadDocument(ctx, KeyGamification, &s.gamification); err != nil {
		s.mu.Unlock()
		return err
	}

	for i := range s.tasks {
		s.tasks[i].Sync()
	}
	if s.gamification.Badges == nil {
		s.gamification.Badges = []string{}
	}

	s.initialized = true
	settings := s.settings
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.applyTheme(settings)
	s.publish(snapshot)
	return nil
}

// loadDocument leaves the target untouched when the key is absent. A
// document that fails to parse is logged and treated as absent rather than
// blocking startup.
func (s *Store) loadDocument(ctx context.Context, key string, target any) error {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		slog.Error("parsing stored document, using defaults", "key", key, "error", err)
	}
	return nil
}

func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Subscribe registers fn to receive a snapshot after every successful
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.tasks)
}

func (s *Store) Exams() []models.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.exams)
}

func (s *Store) StudyPlans() []models.StudyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.studyPlans)
}

func (s *Store) StudySessions() []models.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.studySessions)
}

func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) Gamification() models.Gamification {
	s.mu.Lock()
	defer s.mu.Unlock()
	gamification := s.gamification
	gamification.Badges = copySlice(s.gamification.Badges)
	return gamification
}

// AddTask appends the task unless one with the same id already exists, in
// which case the state is left untouched.
func (s *Store) AddTask(ctx context.Context, task models.Task) AddOutcome {
	s.mu.Lock()
	for _, existing := range s.tasks {
		if existing.ID == task.ID {
			s.mu.Unlock()
			return OutcomeAlreadyExists
		}
	}
	task.Sync()
	s.tasks = append(s.tasks, task)
	s.persist(ctx, KeyTasks, s.tasks)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeAdded
}

// TaskPatch carries the fields of a partial task update; nil fields are
// left as they are.
type TaskPatch struct {
	Title         *string            `json:"title"`
	Description   *string            `json:"description"`
	Completed     *bool              `json:"completed"`
	DueDate       *time.Time         `json:"dueDate"`
	Priority      *models.Priority   `json:"priority"`
	Difficulty    *models.Difficulty `json:"difficulty"`
	Category      *string            `json:"category"`
	EstimatedTime *int               `json:"estimatedTime"`
	Status        *models.TaskStatus `json:"status"`
	Subject       *string            `json:"subject"`
	Tags          *[]string          `json:"tags"`
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch TaskPatch) UpdateOutcome {
	s.mu.Lock()
	index := s.taskIndex(id)
	if index < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}

	task := &s.tasks[index]
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Difficulty != nil {
		task.Difficulty = *patch.Difficulty
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.EstimatedTime != nil {
		task.EstimatedTime = *patch.EstimatedTime
	}
	if patch.Subject != nil {
		task.Subject = *patch.Subject
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
	}
	// Whichever completion axis the patch wrote wins; the other follows.
	// A status write takes precedence when both are present.
	if patch.Status != nil {
		task.Status = *patch.Status
		task.Completed = task.Status == models.TaskStatusCompleted
	} else if patch.Completed != nil {
		task.SetCompleted(*patch.Completed)
	}

	s.persist(ctx, KeyTasks, s.tasks)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeUpdated
}

// ToggleTask flips the task's completed flag. A flip from incomplete to
// complete is a completion event: the streak is advanced first, then the
// rewards engine runs against the updated record. Flipping back revokes
// nothing.
func (s *Store) ToggleTask(ctx context.Context, id string) ToggleResult {
	s.mu.Lock()
	index := s.taskIndex(id)
	if index < 0 {
		s.mu.Unlock()
		return ToggleResult{Outcome: OutcomeNotFound}
	}

	task := &s.tasks[index]
	task.SetCompleted(!task.Completed)
	s.persist(ctx, KeyTasks, s.tasks)

	result := ToggleResult{Outcome: OutcomeUpdated, Completed: task.Completed}

	if task.Completed {
		today := s.now()
		s.gamification.Streak = services.NextStreak(
			s.gamification.Streak, s.gamification.LastCompletionDate, today)

		award := services.CalculateRewards(*task, s.gamification)
		s.gamification.Points += award.Points
		s.gamification.Badges = award.Badges
		s.gamification.TasksCompleted = award.TasksCompleted
		s.gamification.LastCompletionDate = today.Format(time.DateOnly)
		s.persist(ctx, KeyGamification, s.gamification)

		result.Award = &award
	}

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return result
}

func (s *Store) DeleteTask(ctx context.Context, id string) UpdateOutcome {
	s.mu.Lock()
	index := s.taskIndex(id)
	if index < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}

	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	s.persist(ctx, KeyTasks, s.tasks)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeDeleted
}

// ReorderTasks replaces the task sequence wholesale. The caller is
// responsible for passing a permutation of the existing set; the store
// does not check set equality.
func (s *Store) ReorderTasks(ctx context.Context, tasks []models.Task) {
	s.mu.Lock()
	s.tasks = copySlice(tasks)
	for i := range s.tasks {
		s.tasks[i].Sync()
	}
	s.persist(ctx, KeyTasks, s.tasks)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

func (s *Store) AddExam(ctx context.Context, exam models.Exam) AddOutcome {
	s.mu.Lock()
	for _, existing := range s.exams {
		if existing.ID == exam.ID {
			s.mu.Unlock()
			return OutcomeAlreadyExists
		}
	}
	s.exams = append(s.exams, exam)
	s.persist(ctx, KeyExams, s.exams)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeAdded
}

type ExamPatch struct {
	Subject    *string          `json:"subject"`
	Date       *time.Time       `json:"date"`
	Topics     *[]string        `json:"topics"`
	Importance *models.Priority `json:"importance"`
}

func (s *Store) UpdateExam(ctx context.Context, id string, patch ExamPatch) UpdateOutcome {
	s.mu.Lock()
	index := -1
	for i := range s.exams {
		if s.exams[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}

	exam := &s.exams[index]
	if patch.Subject != nil {
		exam.Subject = *patch.Subject
	}
	if patch.Date != nil {
		exam.Date = *patch.Date
	}
	if patch.Topics != nil {
		exam.Topics = *patch.Topics
	}
	if patch.Importance != nil {
		exam.Importance = *patch.Importance
	}

	s.persist(ctx, KeyExams, s.exams)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeUpdated
}

func (s *Store) DeleteExam(ctx context.Context, id string) UpdateOutcome {
	s.mu.Lock()
	kept := s.exams[:0]
	found := false
	for _, exam := range s.exams {
		if exam.ID == id {
			found = true
			continue
		}
		kept = append(kept, exam)
	}
	if !found {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	s.exams = kept
	s.persist(ctx, KeyExams, s.exams)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeDeleted
}

// AddStudySession appends the session and credits its duration to the
// gamification study-minutes counter. Deleting a session later does not
// debit the counter, matching the no-revocation rule for points.
func (s *Store) AddStudySession(ctx context.Context, session models.StudySession) AddOutcome {
	s.mu.Lock()
	for _, existing := range s.studySessions {
		if existing.ID == session.ID {
			s.mu.Unlock()
			return OutcomeAlreadyExists
		}
	}
	s.studySessions = append(s.studySessions, session)
	s.persist(ctx, KeyStudySessions, s.studySessions)

	if session.Duration > 0 {
		s.gamification.StudyMinutes += session.Duration
		s.persist(ctx, KeyGamification, s.gamification)
	}

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeAdded
}

func (s *Store) DeleteStudySession(ctx context.Context, id string) UpdateOutcome {
	s.mu.Lock()
	kept := s.studySessions[:0]
	found := false
	for _, session := range s.studySessions {
		if session.ID == id {
			found = true
			continue
		}
		kept = append(kept, session)
	}
	if !found {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	s.studySessions = kept
	s.persist(ctx, KeyStudySessions, s.studySessions)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeDeleted
}

func (s *Store) AddStudyPlan(ctx context.Context, plan models.StudyPlan) AddOutcome {
	s.mu.Lock()
	for _, existing := range s.studyPlans {
		if existing.ID == plan.ID {
			s.mu.Unlock()
			return OutcomeAlreadyExists
		}
	}
	s.studyPlans = append(s.studyPlans, plan)
	s.persist(ctx, KeyStudyPlans, s.studyPlans)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeAdded
}

func (s *Store) DeleteStudyPlan(ctx context.Context, id string) UpdateOutcome {
	s.mu.Lock()
	kept := s.studyPlans[:0]
	found := false
	for _, plan := range s.studyPlans {
		if plan.ID == id {
			found = true
			continue
		}
		kept = append(kept, plan)
	}
	if !found {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	s.studyPlans = kept
	s.persist(ctx, KeyStudyPlans, s.studyPlans)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return OutcomeDeleted
}

// SettingsPatch merges into the settings singleton. Notifications, when
// present, replaces the whole substructure, matching the shallow merge of
// the original client.
type SettingsPatch struct {
	Theme         *models.Theme                `json:"theme"`
	AccentColor   *string                      `json:"accentColor"`
	Notifications *models.NotificationSettings `json:"notifications"`
}

func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) models.Settings {
	s.mu.Lock()
	if patch.Theme != nil {
		s.settings.Theme = *patch.Theme
	}
	if patch.AccentColor != nil {
		s.settings.AccentColor = *patch.AccentColor
	}
	if patch.Notifications != nil {
		s.settings.Notifications = *patch.Notifications
	}
	s.persist(ctx, KeySettings, s.settings)

	settings := s.settings
	presentationChanged := patch.Theme != nil || patch.AccentColor != nil
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if presentationChanged {
		s.applyTheme(settings)
	}
	s.publish(snapshot)
	return settings
}

// ImportData wholesale-replaces each collection present in the payload and
// leaves absent ones untouched. This is a replace, not a merge by id.
func (s *Store) ImportData(ctx context.Context, payload ImportPayload) ImportSummary {
	s.mu.Lock()
	var summary ImportSummary

	if payload.Tasks != nil {
		s.tasks = copySlice(*payload.Tasks)
		for i := range s.tasks {
			s.tasks[i].Sync()
		}
		s.persist(ctx, KeyTasks, s.tasks)
		summary.Tasks = len(s.tasks)
	}
	if payload.Exams != nil {
		s.exams = copySlice(*payload.Exams)
		s.persist(ctx, KeyExams, s.exams)
		summary.Exams = len(s.exams)
	}
	if payload.StudyPlans != nil {
		s.studyPlans = copySlice(*payload.StudyPlans)
		s.persist(ctx, KeyStudyPlans, s.studyPlans)
		summary.StudyPlans = len(s.studyPlans)
	}
	if payload.StudySessions != nil {
		s.studySessions = copySlice(*payload.StudySessions)
		s.persist(ctx, KeyStudySessions, s.studySessions)
		summary.StudySessions = len(s.studySessions)
	}

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return summary
}

// ExportData returns a snapshot of the four main collections. No side
// effects.
func (s *Store) ExportData() ExportPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

// ClearAll resets every collection and singleton to defaults and persists
// the reset. It returns the pre-clear export so the caller can offer undo.
func (s *Store) ClearAll(ctx context.Context) ExportPayload {
	s.mu.Lock()
	backup := s.exportLocked()

	s.tasks = nil
	s.exams = nil
	s.studyPlans = nil
	s.studySessions = nil
	s.settings = models.DefaultSettings()
	s.gamification = models.DefaultGamification()

	s.persist(ctx, KeyTasks, s.tasks)
	s.persist(ctx, KeyExams, s.exams)
	s.persist(ctx, KeyStudyPlans, s.studyPlans)
	s.persist(ctx, KeyStudySessions, s.studySessions)
	s.persist(ctx, KeySettings, s.settings)
	s.persist(ctx, KeyGamification, s.gamification)

	settings := s.settings
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.applyTheme(settings)
	s.publish(snapshot)
	return backup
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) exportLocked() ExportPayload {
	return ExportPayload{
		Tasks:         emptyIfNil(copySlice(s.tasks)),
		Exams:         emptyIfNil(copySlice(s.exams)),
		StudyPlans:    emptyIfNil(copySlice(s.studyPlans)),
		StudySessions: emptyIfNil(copySlice(s.studySessions)),
	}
}

func (s *Store) snapshotLocked() Snapshot {
	gamification := s.gamification
	gamification.Badges = copySlice(s.gamification.Badges)
	return Snapshot{
		Tasks:         emptyIfNil(copySlice(s.tasks)),
		Exams:         emptyIfNil(copySlice(s.exams)),
		StudyPlans:    emptyIfNil(copySlice(s.studyPlans)),
		StudySessions: emptyIfNil(copySlice(s.studySessions)),
		Settings:      s.settings,
		Gamification:  gamification,
		Initialized:   s.initialized,
	}
}

// persist writes the collection under its key. Write failures are logged
// and swallowed: the in-memory state stays authoritative so the caller's
// action still succeeds, at the cost of durability for this write.
func (s *Store) persist(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		slog.Error("encoding state document", "key", key, "error", err)
		return
	}
	if err := s.repo.Set(ctx, key, string(encoded)); err != nil {
		slog.Error("persisting state document", "key", key, "error", err)
	}
}

func (s *Store) publish(snapshot Snapshot) {
	s.mu.Lock()
	subscribers := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func copySlice[T any](values []T) []T {
	if values == nil {
		return nil
	}
	copied := make([]T, len(values))
	copy(copied, values)
	return copied
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
