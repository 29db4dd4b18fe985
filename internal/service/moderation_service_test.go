package service

import (
	"testing"
	"time"

	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModeration(store *memStore) *ModerationService {
	return &ModerationService{
		bans:    memBans{store},
		posts:   memPosts{store},
		threads: store,
		now:     func() time.Time { return testNow },
	}
}

func TestIsBlockedPermanentBan(t *testing.T) {
	store := newMemStore()
	svc := newTestModeration(store)

	require.NoError(t, store.CreateBan(&model.BannedIP{IPAddress: "1.2.3.4", CreatedAt: testNow}))

	blocked, err := svc.IsBlocked("1.2.3.4", testNow)
	require.NoError(t, err)
	assert.True(t, blocked, "expires_at 为 nil 是永久封禁")
}

func TestIsBlockedExpiryBoundary(t *testing.T) {
	store := newMemStore()
	svc := newTestModeration(store)

	past := testNow.Add(-time.Second)
	future := testNow.Add(time.Second)
	require.NoError(t, store.CreateBan(&model.BannedIP{IPAddress: "1.1.1.1", ExpiresAt: &past, CreatedAt: testNow.Add(-time.Hour)}))
	require.NoError(t, store.CreateBan(&model.BannedIP{IPAddress: "2.2.2.2", ExpiresAt: &future, CreatedAt: testNow.Add(-time.Hour)}))

	blocked, err := svc.IsBlocked("1.1.1.1", testNow)
	require.NoError(t, err)
	assert.False(t, blocked, "过期 1 秒的封禁已失效")

	blocked, err = svc.IsBlocked("2.2.2.2", testNow)
	require.NoError(t, err)
	assert.True(t, blocked, "还剩 1 秒的封禁仍生效")
}

func TestIsBlockedUnknownAddress(t *testing.T) {
	svc := newTestModeration(newMemStore())

	blocked, err := svc.IsBlocked("9.9.9.9", testNow)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestAddBan(t *testing.T) {
	store := newMemStore()
	svc := newTestModeration(store)

	ban, err := svc.AddBan(1, "1.2.3.4", "荒らし", 0)
	require.NoError(t, err)
	assert.Nil(t, ban.ExpiresAt, "duration 0 为永久")

	ban2, err := svc.AddBan(1, "5.6.7.8", "宣伝", 7)
	require.NoError(t, err)
	require.NotNil(t, ban2.ExpiresAt)
	assert.Equal(t, testNow.Add(7*24*time.Hour), *ban2.ExpiresAt)
}

func TestAddBanDuplicate(t *testing.T) {
	store := newMemStore()
	svc := newTestModeration(store)

	_, err := svc.AddBan(1, "1.2.3.4", "", 0)
	require.NoError(t, err)

	_, err = svc.AddBan(1, "1.2.3.4", "二重", 0)
	assert.ErrorIs(t, err, pkg.ErrDuplicateBan)
}

func TestAddBanRequiresAddress(t *testing.T) {
	svc := newTestModeration(newMemStore())

	_, err := svc.AddBan(1, "   ", "", 0)
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestRemoveBanIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestModeration(store)

	ban, err := svc.AddBan(1, "1.2.3.4", "", 0)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveBan(1, ban.ID))
	// 解除后可以再发
	blocked, err := svc.IsBlocked("1.2.3.4", testNow)
	require.NoError(t, err)
	assert.False(t, blocked)

	// 再删一次也不报错
	assert.NoError(t, svc.RemoveBan(1, ban.ID))
	assert.NoError(t, svc.RemoveBan(1, 9999))
}

func TestDeletePostTombstone(t *testing.T) {
	store := newMemStore()
	board := newTestBoard(store)
	svc := newTestModeration(store)
	thread := seedThread(t, store, 0, false)

	_, err := board.SubmitPost(thread.ID, "1.2.3.4", false, "", "", "消される", nil)
	require.NoError(t, err)
	_, err = board.SubmitPost(thread.ID, "1.2.3.4", false, "", "", "残る", nil)
	require.NoError(t, err)

	posts, _ := store.ListByThread(thread.ID)
	require.NoError(t, svc.DeletePost(1, posts[0].ID))

	// 行还在、标记翻了、楼层号没动
	after, _ := store.ListByThread(thread.ID)
	require.Len(t, after, 2)
	assert.True(t, after[0].IsDeleted)
	assert.Equal(t, 1, after[0].PostNumber)
	assert.False(t, after[1].IsDeleted)
	assert.Equal(t, 2, after[1].PostNumber)

	// post_count 不回退，下一楼接着编号
	number, err := board.SubmitPost(thread.ID, "1.2.3.4", false, "", "", "三楼", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, number)
}

func TestDeletePostIdempotent(t *testing.T) {
	store := newMemStore()
	board := newTestBoard(store)
	svc := newTestModeration(store)
	thread := seedThread(t, store, 0, false)

	_, err := board.SubmitPost(thread.ID, "1.2.3.4", false, "", "", "一回だけ", nil)
	require.NoError(t, err)

	posts, _ := store.ListByThread(thread.ID)
	require.NoError(t, svc.DeletePost(1, posts[0].ID))
	assert.NoError(t, svc.DeletePost(1, posts[0].ID), "重复删除幂等放行")
}

func TestDeletePostNotFound(t *testing.T) {
	svc := newTestModeration(newMemStore())

	err := svc.DeletePost(1, 404)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestDeleteThreadCascades(t *testing.T) {
	store := newMemStore()
	board := newTestBoard(store)
	svc := newTestModeration(store)
	thread := seedThread(t, store, 0, false)

	_, err := board.SubmitPost(thread.ID, "1.2.3.4", false, "", "", "道連れ", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteThread(1, thread.ID))

	_, err = store.FindByID(thread.ID)
	assert.Error(t, err)
	posts, _ := store.ListByThread(thread.ID)
	assert.Empty(t, posts, "删串物理级联删回复")
}

func TestDeleteThreadNotFound(t *testing.T) {
	svc := newTestModeration(newMemStore())

	err := svc.DeleteThread(1, 404)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestListBans(t *testing.T) {
	store := newMemStore()
	svc := newTestModeration(store)

	_, err := svc.AddBan(1, "1.2.3.4", "a", 0)
	require.NoError(t, err)
	_, err = svc.AddBan(1, "5.6.7.8", "b", 3)
	require.NoError(t, err)

	list, err := svc.ListBans()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
