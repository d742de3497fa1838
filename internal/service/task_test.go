package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtasks/internal/domain"
)

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("bob@example.com", "secret1")
	require.NoError(t, err)

	task, err := f.task.Create(u.ID, "Buy milk", "2 liters")
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Equal(t, "Buy milk", task.Title)

	_, err = f.task.Create(u.ID, "   ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	long := make([]byte, domain.TitleMaxLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = f.task.Create(u.ID, string(long), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListFiltersAndOrder(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("bob@example.com", "secret1")
	require.NoError(t, err)

	first, err := f.task.Create(u.ID, "first", "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := f.task.Create(u.ID, "second", "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	third, err := f.task.Create(u.ID, "third", "")
	require.NoError(t, err)

	_, err = f.task.Toggle(u.ID, second.ID)
	require.NoError(t, err)

	all, err := f.task.List(u.ID, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// 新的在前
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	active, err := f.task.List(u.ID, domain.FilterActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, task := range active {
		assert.False(t, task.Completed)
	}

	done, err := f.task.List(u.ID, domain.FilterCompleted)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, second.ID, done[0].ID)

	counts, err := f.task.Counts(u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCounts{Total: 3, Completed: 1, Active: 2}, counts)
}

func TestToggleFlipsBothWays(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("bob@example.com", "secret1")
	require.NoError(t, err)
	task, err := f.task.Create(u.ID, "Buy milk", "")
	require.NoError(t, err)

	got, err := f.task.Toggle(u.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = f.task.Toggle(u.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	f := newFixture(t)
	owner, err := f.auth.Register("owner@example.com", "secret1")
	require.NoError(t, err)
	other, err := f.auth.Register("other@example.com", "secret1")
	require.NoError(t, err)

	task, err := f.task.Create(owner.ID, "mine", "")
	require.NoError(t, err)

	// 别人的任务：和不存在不可区分
	_, err = f.task.Toggle(other.ID, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.task.Delete(other.ID, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.task.Toggle(other.ID, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// 没被动到
	mine, err := f.task.List(owner.ID, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].Completed)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("bob@example.com", "secret1")
	require.NoError(t, err)
	task, err := f.task.Create(u.ID, "Buy milk", "")
	require.NoError(t, err)

	require.NoError(t, f.task.Delete(u.ID, task.ID))
	err = f.task.Delete(u.ID, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
