package domain

import "time"

const TitleMaxLen = 200

type Task struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;index" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

// TaskFilter 列表筛选：all / active / completed
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
)

type TaskCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
}

// TaskRepository 所有按 id 的操作都折叠 owner 条件，
// 查不到和不属于自己在调用方看来一律是 NotFound。
type TaskRepository interface {
	Create(t *Task) error
	FindOwned(ownerID, id string) (*Task, error)
	ListByOwner(ownerID string, f TaskFilter) ([]Task, error)
	RecentByOwner(ownerID string, limit int) ([]Task, error)
	Update(t *Task) error
	DeleteOwned(ownerID, id string) (int64, error)
	CountsByOwner(ownerID string) (TaskCounts, error)
	CountsAll() (TaskCounts, error)
}
