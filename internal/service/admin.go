package service

import (
	"context"
	"time"

	"devtasks/internal/core/cache"
	"devtasks/internal/domain"
	"devtasks/pkg/utils"
)

const (
	recentTaskLimit = 5
	statsCacheKey   = "admin:task_counts"
	statsCacheTTL   = 30 * time.Second
)

type AdminService struct {
	users domain.UserRepository
	tasks domain.TaskRepository
	stats *cache.Cache // 可为 nil，全站统计直接回源
}

func NewAdminService(users domain.UserRepository, tasks domain.TaskRepository, stats *cache.Cache) *AdminService {
	return &AdminService{users: users, tasks: tasks, stats: stats}
}

type UserRow struct {
	User   domain.User
	Recent []domain.Task // 最近 5 条预览
}

type Dashboard struct {
	Users  []UserRow
	Counts domain.TaskCounts // 全站
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		recent, err := s.tasks.RecentByOwner(u.ID, recentTaskLimit)
		if err != nil {
			return nil, err
		}
		rows = append(rows, UserRow{User: u, Recent: recent})
	}
	counts, err := s.globalCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Users: rows, Counts: counts}, nil
}

func (s *AdminService) globalCounts(ctx context.Context) (domain.TaskCounts, error) {
	if s.stats == nil {
		return s.tasks.CountsAll()
	}
	c, err := cache.GetOrLoadJSON[domain.TaskCounts](s.stats, ctx, statsCacheKey, statsCacheTTL,
		func(context.Context) (*domain.TaskCounts, error) {
			v, e := s.tasks.CountsAll()
			if e != nil {
				return nil, e
			}
			return &v, nil
		})
	if err != nil || c == nil {
		return s.tasks.CountsAll()
	}
	return *c, nil
}

func (s *AdminService) CreateUser(email, password string, isAdmin bool) (*domain.User, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, domain.Invalid("valid email required")
	}
	if existing, err := s.users.FindByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}
	u := &domain.User{
		ID:      utils.NewID(),
		Email:   email,
		IsAdmin: isAdmin,
	}
	// 密码可为空：纯联合登录账号
	if password != "" {
		u.PasswordHash = utils.HashPassword(password)
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

type UserEdit struct {
	Email       string
	Name        string
	IsAdmin     bool
	NewPassword string
}

func (s *AdminService) EditUser(id string, in UserEdit) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	email := NormalizeEmail(in.Email)
	if !ValidEmail(email) {
		return nil, domain.Invalid("valid email required")
	}
	// 撞上别人的邮箱才算冲突
	if other, err := s.users.FindByEmail(email); err != nil {
		return nil, err
	} else if other != nil && other.ID != u.ID {
		return nil, domain.ErrDuplicateEmail
	}
	u.Email = email
	u.Name = in.Name
	u.IsAdmin = in.IsAdmin
	if in.NewPassword != "" {
		u.PasswordHash = utils.HashPassword(in.NewPassword)
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrSelfDeletion
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if err := s.users.DeleteCascade(id); err != nil {
		return err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, statsCacheKey)
	}
	return nil
}

func (s *AdminService) GetUser(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
