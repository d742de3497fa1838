package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtasks/internal/domain"
	"devtasks/internal/service"
)

func TestAdminCreateUser(t *testing.T) {
	f := newFixture(t)

	u, err := f.admin.CreateUser("New@Example.com", "secret1", false)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	assert.True(t, u.HasPassword())

	// 密码可空：纯联合登录账号
	u2, err := f.admin.CreateUser("sso@example.com", "", true)
	require.NoError(t, err)
	assert.False(t, u2.HasPassword())
	assert.True(t, u2.IsAdmin)

	_, err = f.admin.CreateUser("new@example.com", "", false)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = f.admin.CreateUser("garbage", "", false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdminEditUser(t *testing.T) {
	f := newFixture(t)
	a, err := f.admin.CreateUser("a@example.com", "secret1", false)
	require.NoError(t, err)
	_, err = f.admin.CreateUser("b@example.com", "secret1", false)
	require.NoError(t, err)

	// 撞自己的邮箱不算冲突
	got, err := f.admin.EditUser(a.ID, service.UserEdit{Email: "A@example.com", Name: "Alice", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "Alice", got.Name)
	assert.True(t, got.IsAdmin)

	_, err = f.admin.EditUser(a.ID, service.UserEdit{Email: "b@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = f.admin.EditUser("no-such-id", service.UserEdit{Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminEditUserPasswordOnlyWhenSupplied(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("carol@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.admin.EditUser(u.ID, service.UserEdit{Email: u.Email, Name: "Carol"})
	require.NoError(t, err)
	_, err = f.auth.Login("carol@example.com", "secret1")
	assert.NoError(t, err, "password unchanged when no new one supplied")

	_, err = f.admin.EditUser(u.ID, service.UserEdit{Email: u.Email, NewPassword: "reset99"})
	require.NoError(t, err)
	_, err = f.auth.Login("carol@example.com", "reset99")
	assert.NoError(t, err)
}

func TestAdminDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	admin, err := f.auth.Register("admin@admin.com", "secret1")
	require.NoError(t, err)
	victim, err := f.auth.Register("victim@example.com", "secret1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.task.Create(victim.ID, fmt.Sprintf("task %d", i), "")
		require.NoError(t, err)
	}

	require.NoError(t, f.admin.DeleteUser(context.Background(), admin.ID, victim.ID))

	gone, err := f.users.FindByID(victim.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 没有孤儿任务
	orphans, err := f.tasks.ListByOwner(victim.ID, domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	counts, err := f.tasks.CountsAll()
	require.NoError(t, err)
	assert.Zero(t, counts.Total)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	f := newFixture(t)
	admin, err := f.auth.Register("admin@admin.com", "secret1")
	require.NoError(t, err)

	err = f.admin.DeleteUser(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrSelfDeletion)

	still, err := f.users.FindByID(admin.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestAdminDashboard(t *testing.T) {
	f := newFixture(t)
	older, err := f.auth.Register("older@example.com", "secret1")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	newer, err := f.auth.Register("newer@example.com", "secret1")
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err = f.task.Create(older.ID, fmt.Sprintf("task %d", i), "")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err = f.task.Create(newer.ID, "only one", "")
	require.NoError(t, err)

	d, err := f.admin.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Users, 2)
	// 用户新的在前
	assert.Equal(t, newer.ID, d.Users[0].User.ID)
	// 预览最多 5 条，且是最近的
	assert.Len(t, d.Users[1].Recent, 5)
	assert.Equal(t, "task 6", d.Users[1].Recent[0].Title)
	assert.Equal(t, domain.TaskCounts{Total: 8, Completed: 0, Active: 8}, d.Counts)
}
