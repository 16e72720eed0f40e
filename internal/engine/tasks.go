package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTitleLen = 200

type AddTaskInput struct {
	Title         string
	Subject       string
	DueDate       string
	Priority      Priority
	EstimatedTime int
}

// TaskPatch lists the fields UpdateTask may change. Nil fields are kept.
type TaskPatch struct {
	Title         *string
	Subject       *string
	DueDate       *string
	Priority      *Priority
	EstimatedTime *int
}

type ToggleResult struct {
	Task  Task
	Grant *GrantResult // nil when the task was reopened
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(value) > maxTitleLen {
		return "", invalid(field, "too long (max %d)", maxTitleLen)
	}
	return value, nil
}

func parseDueDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid("dueDate", "is required")
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", invalid("dueDate", "expected YYYY-MM-DD (got %q)", value)
	}
	return value, nil
}

func (in AddTaskInput) validate() (Task, error) {
	title, err := requireText("title", in.Title)
	if err != nil {
		return Task{}, err
	}
	subject, err := requireText("subject", in.Subject)
	if err != nil {
		return Task{}, err
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return Task{}, err
	}
	prio := in.Priority
	if prio == "" {
		prio = PriorityMedium
	}
	if !prio.IsValid() {
		return Task{}, invalid("priority", "unknown value %q", prio)
	}
	if in.EstimatedTime <= 0 {
		return Task{}, invalid("estimatedTime", "must be a positive number of minutes (got %d)", in.EstimatedTime)
	}
	return Task{
		Title:         title,
		Subject:       subject,
		DueDate:       due,
		Priority:      prio,
		EstimatedTime: in.EstimatedTime,
	}, nil
}

// AddTask appends a task and grants the task-added reward.
func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (Task, *GrantResult, error) {
	task, err := in.validate()
	if err != nil {
		return Task{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.newID()
	s.tasks = append(s.tasks, task)
	s.saveLocked(ctx, SlotTasks, s.tasks)

	grant, err := s.grantLocked(ctx, RewardTaskAdded)
	if err != nil {
		return task, nil, err
	}
	return task, grant, nil
}

// ToggleTask flips the completion flag. Every false to true transition grants
// the completion reward; reopening grants nothing and takes nothing back.
func (s *Service) ToggleTask(ctx context.Context, id string) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.taskIndexLocked(id)
	if err != nil {
		return nil, err
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.saveLocked(ctx, SlotTasks, s.tasks)

	res := &ToggleResult{Task: s.tasks[i]}
	if !res.Task.Completed {
		return res, nil
	}
	grant, err := s.grantLocked(ctx, RewardTaskCompleted)
	if err != nil {
		return res, err
	}
	res.Grant = grant
	return res, nil
}

func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.taskIndexLocked(id)
	if err != nil {
		return Task{}, err
	}

	updated := s.tasks[i]
	if patch.Title != nil {
		if updated.Title, err = requireText("title", *patch.Title); err != nil {
			return Task{}, err
		}
	}
	if patch.Subject != nil {
		if updated.Subject, err = requireText("subject", *patch.Subject); err != nil {
			return Task{}, err
		}
	}
	if patch.DueDate != nil {
		if updated.DueDate, err = parseDueDate(*patch.DueDate); err != nil {
			return Task{}, err
		}
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return Task{}, invalid("priority", "unknown value %q", *patch.Priority)
		}
		updated.Priority = *patch.Priority
	}
	if patch.EstimatedTime != nil {
		if *patch.EstimatedTime <= 0 {
			return Task{}, invalid("estimatedTime", "must be a positive number of minutes (got %d)", *patch.EstimatedTime)
		}
		updated.EstimatedTime = *patch.EstimatedTime
	}

	s.tasks[i] = updated
	s.saveLocked(ctx, SlotTasks, s.tasks)
	return updated, nil
}

// FindTask resolves a full id or a unique id prefix.
func (s *Service) FindTask(ref string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.taskIndexLocked(ref)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

func (s *Service) taskIndexLocked(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, invalid("id", "is required")
	}
	match := -1
	for i, t := range s.tasks {
		if t.ID == ref {
			return i, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match >= 0 {
				return -1, invalid("id", "prefix %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("task %s: %w", ref, ErrNotFound)
	}
	return match, nil
}

// PendingTasks returns incomplete tasks ordered by due date.
func PendingTasks(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out
}
