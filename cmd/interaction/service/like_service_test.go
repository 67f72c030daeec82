package service

import (
	"context"
	"testing"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleVideoLike(t *testing.T) {
	ctx := context.Background()
	store := seedInteraction(t)
	service := NewLikeService(store)

	active, err := service.ToggleVideoLike(ctx, 10, 2)
	require.NoError(t, err)
	assert.True(t, active)

	count, err := store.Count(ctx, constants.LikeCollection, storage.Predicate{"likedById": 2, "videoId": 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	active, err = service.ToggleVideoLike(ctx, 10, 2)
	require.NoError(t, err)
	assert.False(t, active)

	count, err = store.Count(ctx, constants.LikeCollection, storage.Predicate{"likedById": 2, "videoId": 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeGuards(t *testing.T) {
	ctx := context.Background()
	service := NewLikeService(seedInteraction(t))

	t.Run("Anonymous", func(t *testing.T) {
		_, err := service.ToggleVideoLike(ctx, 10, constants.AnonymousUserId)
		assert.Equal(t, errno.AuthorizationCode, errCode(t, err))
	})

	t.Run("InvalidId", func(t *testing.T) {
		_, err := service.ToggleTweetLike(ctx, 0, 1)
		assert.Equal(t, errno.ParamErrCode, errCode(t, err))
	})

	t.Run("MissingTarget", func(t *testing.T) {
		_, err := service.ToggleVideoLike(ctx, 999, 1)
		assert.Equal(t, errno.NotFoundErrCode, errCode(t, err))
		_, err = service.ToggleCommentLike(ctx, 999, 1)
		assert.Equal(t, errno.NotFoundErrCode, errCode(t, err))
	})
}

// TestToggleLikePerTargetType 同一用户对不同类型目标的点赞互不干扰
func TestToggleLikePerTargetType(t *testing.T) {
	ctx := context.Background()
	store := seedInteraction(t)
	service := NewLikeService(store)
	comments := NewCommentService(store)

	comment, err := comments.AddComment(ctx, 10, 0, "c", 1)
	require.NoError(t, err)

	active, err := service.ToggleVideoLike(ctx, 10, 1)
	require.NoError(t, err)
	assert.True(t, active)
	active, err = service.ToggleTweetLike(ctx, 20, 1)
	require.NoError(t, err)
	assert.True(t, active)
	active, err = service.ToggleCommentLike(ctx, comment.Id, 1)
	require.NoError(t, err)
	assert.True(t, active)

	count, err := store.Count(ctx, constants.LikeCollection, storage.Predicate{"likedById": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// 取消视频点赞不影响其余两条边
	active, err = service.ToggleVideoLike(ctx, 10, 1)
	require.NoError(t, err)
	assert.False(t, active)
	count, err = store.Count(ctx, constants.LikeCollection, storage.Predicate{"likedById": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
