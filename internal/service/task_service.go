package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/CWN221/Flask-To-Do-List/internal/errors"
	"github.com/CWN221/Flask-To-Do-List/internal/model"
	"github.com/CWN221/Flask-To-Do-List/internal/repository"
)

// DueDateLayout is the wire format for due dates on create and edit forms.
const DueDateLayout = "2006-01-02"

const defaultPriority = "Medium"

// TaskService exposes the task operations.
type TaskService interface {
	CreateTask(ctx context.Context, title, priority, dueDate string) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	ToggleDone(ctx context.Context, id uint) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, title, priority, dueDate string) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService builds a TaskService on top of a task repository.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// CreateTask inserts a new task. The title is mandatory; a missing priority
// falls back to "Medium"; a malformed due date rejects the whole request.
func (s *taskService) CreateTask(ctx context.Context, title, priority, dueDate string) (*model.Task, error) {
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, apperrors.ErrInvalidDueDate
	}

	if priority == "" {
		priority = defaultPriority
	}

	task := &model.Task{
		Title:    title,
		Priority: priority,
		DueDate:  due,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListByCreatedDesc(ctx)
}

func (s *taskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// ToggleDone inverts the done flag. Calling it twice restores the original
// value; it is not an idempotent "mark complete".
func (s *taskService) ToggleDone(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Done = !task.Done
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return task, nil
}

// UpdateTask overwrites title, priority and due date unconditionally. An
// empty title is accepted here, asymmetric with CreateTask.
func (s *taskService) UpdateTask(ctx context.Context, id uint, title, priority, dueDate string) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, apperrors.ErrInvalidDueDate
	}

	task.Title = title
	task.Priority = priority
	task.DueDate = due
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes the row permanently. There is no soft delete or undo.
func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(DueDateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &due, nil
}
