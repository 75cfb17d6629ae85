package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/CWN221/Flask-To-Do-List/internal/errors"
	"github.com/CWN221/Flask-To-Do-List/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByCreatedDesc(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		priority      string
		dueDate       string
		setupMock     func(*MockTaskRepository)
		expectedError error
		check         func(*testing.T, *model.Task)
	}{
		{
			name:     "all fields",
			title:    "Buy milk",
			priority: "High",
			dueDate:  "2024-05-01",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Buy milk", task.Title)
				assert.Equal(t, "High", task.Priority)
				assert.False(t, task.Done)
				if assert.NotNil(t, task.DueDate) {
					assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *task.DueDate)
				}
			},
		},
		{
			name:  "missing priority falls back to Medium",
			title: "Water the plants",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Medium", task.Priority)
				assert.Nil(t, task.DueDate)
			},
		},
		{
			name:          "empty title is rejected",
			title:         "",
			priority:      "High",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrTitleRequired,
		},
		{
			name:          "malformed due date is rejected",
			title:         "Buy milk",
			dueDate:       "05/01/2024",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrInvalidDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			svc := NewTaskService(mockRepo)
			task, err := svc.CreateTask(context.Background(), tt.title, tt.priority, tt.dueDate)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, task) && tt.check != nil {
					tt.check(t, task)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_ToggleDone(t *testing.T) {
	t.Run("toggling twice restores the original value", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, Title: "Buy milk", Done: false}, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil).Twice()

		svc := NewTaskService(mockRepo)

		task, err := svc.ToggleDone(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, task.Done)

		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, Title: "Buy milk", Done: true}, nil).Once()

		task, err = svc.ToggleDone(context.Background(), 1)
		assert.NoError(t, err)
		assert.False(t, task.Done)

		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(mockRepo)

		task, err := svc.ToggleDone(context.Background(), 99)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		assert.Nil(t, task)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Run("empty title is allowed on edit", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, Title: "Buy milk", Priority: "High"}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		svc := NewTaskService(mockRepo)

		task, err := svc.UpdateTask(context.Background(), 1, "", "Low", "")
		assert.NoError(t, err)
		assert.Equal(t, "", task.Title)
		assert.Equal(t, "Low", task.Priority)
		assert.Nil(t, task.DueDate)

		mockRepo.AssertExpectations(t)
	})

	t.Run("malformed due date is rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, Title: "Buy milk"}, nil)

		svc := NewTaskService(mockRepo)

		task, err := svc.UpdateTask(context.Background(), 1, "Buy milk", "High", "not-a-date")
		assert.ErrorIs(t, err, apperrors.ErrInvalidDueDate)
		assert.Nil(t, task)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(mockRepo)

		_, err := svc.UpdateTask(context.Background(), 42, "Buy milk", "High", "")
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Run("deletes an existing task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, Title: "Buy milk"}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewTaskService(mockRepo)

		assert.NoError(t, svc.DeleteTask(context.Background(), 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(mockRepo)

		err := svc.DeleteTask(context.Background(), 7)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	newest := model.Task{ID: 2, Title: "Water the plants", CreatedAt: time.Now()}
	oldest := model.Task{ID: 1, Title: "Buy milk", CreatedAt: time.Now().Add(-time.Hour)}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByCreatedDesc", mock.Anything).Return([]model.Task{newest, oldest}, nil)

	svc := NewTaskService(mockRepo)

	tasks, err := svc.ListTasks(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, tasks, 2) {
		assert.Equal(t, newest.ID, tasks[0].ID)
		assert.True(t, !tasks[0].CreatedAt.Before(tasks[1].CreatedAt))
	}
}
