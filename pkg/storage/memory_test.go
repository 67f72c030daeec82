package storage

import (
	"context"
	"testing"

	"VidTube.com/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCrud(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, constants.VideoCollection, Doc{"id": 1, "title": "first", "views": 10}))
	require.NoError(t, store.Create(ctx, constants.VideoCollection, Doc{"id": 2, "title": "second", "views": 20}))

	t.Run("FindByID", func(t *testing.T) {
		doc, err := store.FindByID(ctx, constants.VideoCollection, 1)
		require.NoError(t, err)
		assert.Equal(t, "first", doc["title"])
		// 存入时归一化 读出即int64
		assert.Equal(t, int64(10), doc["views"])
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		_, err := store.FindByID(ctx, constants.VideoCollection, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateByID", func(t *testing.T) {
		require.NoError(t, store.UpdateByID(ctx, constants.VideoCollection, 1, Doc{"title": "renamed"}))
		doc, err := store.FindByID(ctx, constants.VideoCollection, 1)
		require.NoError(t, err)
		assert.Equal(t, "renamed", doc["title"])
		assert.Equal(t, int64(10), doc["views"])
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		assert.ErrorIs(t, store.UpdateByID(ctx, constants.VideoCollection, 99, Doc{"title": "x"}), ErrNotFound)
	})

	t.Run("CountAndDelete", func(t *testing.T) {
		count, err := store.Count(ctx, constants.VideoCollection, Predicate{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		require.NoError(t, store.DeleteByID(ctx, constants.VideoCollection, 2))
		assert.ErrorIs(t, store.DeleteByID(ctx, constants.VideoCollection, 2), ErrNotFound)
	})
}

func TestMemoryStoreFindManyOptions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Create(ctx, constants.CommentCollection, Doc{"id": i, "videoId": 7}))
	}

	docs, err := store.FindMany(ctx, constants.CommentCollection, Predicate{"videoId": 7},
		&FindOptions{Sort: []Sort{{Field: "id", Desc: true}}, Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(4), docs[0]["id"])
	assert.Equal(t, int64(3), docs[1]["id"])

	// 读出的是副本 改写不影响存储
	docs[0]["videoId"] = 999
	again, err := store.FindByID(ctx, constants.CommentCollection, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(7), again["videoId"])
}

// TestMemoryStoreUniqueEdges 点赞与订阅的稀疏唯一约束
func TestMemoryStoreUniqueEdges(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("DuplicateLike", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, constants.LikeCollection,
			Doc{"id": 1, "likedById": 10, "videoId": 20}))
		err := store.Create(ctx, constants.LikeCollection,
			Doc{"id": 2, "likedById": 10, "videoId": 20})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("SparseZeroTarget", func(t *testing.T) {
		// 同一用户对不同类型目标的点赞互不冲突 零值字段不参与判重
		require.NoError(t, store.Create(ctx, constants.LikeCollection,
			Doc{"id": 3, "likedById": 10, "tweetId": 30}))
		require.NoError(t, store.Create(ctx, constants.LikeCollection,
			Doc{"id": 4, "likedById": 10, "commentId": 40}))
	})

	t.Run("DuplicateSubscription", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, constants.SubscriptionCollection,
			Doc{"id": 5, "subscriberId": 10, "channelId": 11}))
		err := store.Create(ctx, constants.SubscriptionCollection,
			Doc{"id": 6, "subscriberId": 10, "channelId": 11})
		assert.ErrorIs(t, err, ErrDuplicate)
		// 反向订阅是另一条边
		require.NoError(t, store.Create(ctx, constants.SubscriptionCollection,
			Doc{"id": 7, "subscriberId": 11, "channelId": 10}))
	})
}

func TestMemoryStoreDeleteMany(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, constants.LikeCollection, Doc{"id": 1, "likedById": 1, "videoId": 9}))
	require.NoError(t, store.Create(ctx, constants.LikeCollection, Doc{"id": 2, "likedById": 2, "videoId": 9}))
	require.NoError(t, store.Create(ctx, constants.LikeCollection, Doc{"id": 3, "likedById": 2, "videoId": 8}))

	removed, err := store.DeleteMany(ctx, constants.LikeCollection, Predicate{"videoId": 9})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := store.Count(ctx, constants.LikeCollection, Predicate{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSortDocsMultiKey(t *testing.T) {
	docs := []Doc{
		{"id": int64(1), "createdAt": "2025-01-01 10:00:00"},
		{"id": int64(3), "createdAt": "2025-01-02 10:00:00"},
		{"id": int64(2), "createdAt": "2025-01-01 10:00:00"},
	}
	SortDocs(docs, []Sort{{Field: "createdAt", Desc: true}, {Field: "id", Desc: true}})
	assert.Equal(t, int64(3), docs[0]["id"])
	// 同刻按id降序打破平局
	assert.Equal(t, int64(2), docs[1]["id"])
	assert.Equal(t, int64(1), docs[2]["id"])
}

// TestMemoryStoreUserUniqueness 用户名与邮箱唯一
func TestMemoryStoreUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, constants.UserCollection,
		Doc{"id": 1, "username": "alice", "email": "a@x.com"}))

	err := store.Create(ctx, constants.UserCollection,
		Doc{"id": 2, "username": "alice", "email": "other@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = store.Create(ctx, constants.UserCollection,
		Doc{"id": 3, "username": "bob", "email": "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, store.Create(ctx, constants.UserCollection,
		Doc{"id": 4, "username": "bob", "email": "b@x.com"}))
}
