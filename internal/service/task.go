package service

import (
	"strings"

	"devtasks/internal/domain"
	"devtasks/pkg/utils"
)

type TaskService struct {
	tasks domain.TaskRepository
}

func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func ParseFilter(s string) domain.TaskFilter {
	switch s {
	case "active":
		return domain.FilterActive
	case "completed":
		return domain.FilterCompleted
	}
	return domain.FilterAll
}

func (s *TaskService) List(ownerID string, f domain.TaskFilter) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ownerID, f)
}

func (s *TaskService) Create(ownerID, title, description string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.Invalid("title required")
	}
	if len(title) > domain.TitleMaxLen {
		return nil, domain.Invalid("title too long")
	}
	t := &domain.Task{
		ID:          utils.NewID(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
	}
	if err := s.tasks.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Toggle(ownerID, id string) (*domain.Task, error) {
	t, err := s.tasks.FindOwned(ownerID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Completed = !t.Completed
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ownerID, id string) error {
	n, err := s.tasks.DeleteOwned(ownerID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *TaskService) Counts(ownerID string) (domain.TaskCounts, error) {
	return s.tasks.CountsByOwner(ownerID)
}
