package handlers

import (
	"context"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerFixture(t *testing.T) *InteractionHandler {
	t.Helper()
	store := storage.NewMemoryStore()
	ctx := context.Background()
	for _, entity := range []any{
		&model.User{Id: 1, Username: "alice", Email: "a@x.com", Avatar: model.MediaRef{URL: "http://cdn/a.png"}},
		&model.User{Id: 2, Username: "bob", Email: "b@x.com"},
	} {
		doc, err := storage.Encode(entity)
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, constants.UserCollection, doc))
	}
	video, err := storage.Encode(&model.Video{Id: 10, OwnerId: 1, Title: "clip", IsPublished: true})
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, constants.VideoCollection, video))
	return NewInteractionHandler(store)
}

// TestCommentFlowEnvelope 新增→列表→删除走一遍信封层
func TestCommentFlowEnvelope(t *testing.T) {
	ctx := context.Background()
	handler := newHandlerFixture(t)

	resp := handler.AddComment(ctx, 2, CreateCommentParam{VideoId: 10, Content: "hi"})
	require.True(t, resp.Success)
	assert.Equal(t, int64(201), resp.StatusCode)

	comment := resp.Data.(*model.Comment)
	assert.Equal(t, "hi", comment.Content)

	resp = handler.ListComments(ctx, 2, ListCommentsParam{VideoId: 10})
	require.True(t, resp.Success)
	assert.Equal(t, int64(200), resp.StatusCode)
	assert.Equal(t, "Comments fetched successfully", resp.Message)

	// 非属主删除 403
	resp = handler.DeleteComment(ctx, 1, comment.Id)
	assert.False(t, resp.Success)
	assert.Equal(t, int64(403), resp.StatusCode)

	resp = handler.DeleteComment(ctx, 2, comment.Id)
	assert.True(t, resp.Success)
}

func TestToggleLikeParamGuards(t *testing.T) {
	ctx := context.Background()
	handler := newHandlerFixture(t)

	t.Run("NoTarget", func(t *testing.T) {
		resp := handler.ToggleLike(ctx, 2, LikeParam{})
		assert.False(t, resp.Success)
		assert.Equal(t, int64(400), resp.StatusCode)
	})

	t.Run("TwoTargets", func(t *testing.T) {
		resp := handler.ToggleLike(ctx, 2, LikeParam{VideoId: 10, CommentId: 3})
		assert.False(t, resp.Success)
		assert.Equal(t, int64(400), resp.StatusCode)
	})

	t.Run("VideoLike", func(t *testing.T) {
		resp := handler.ToggleLike(ctx, 2, LikeParam{VideoId: 10})
		require.True(t, resp.Success)
		assert.Equal(t, "liked successfully", resp.Message)
		assert.Equal(t, map[string]any{"liked": true}, resp.Data)

		resp = handler.ToggleLike(ctx, 2, LikeParam{VideoId: 10})
		require.True(t, resp.Success)
		assert.Equal(t, "unliked successfully", resp.Message)
	})

	t.Run("MissingVideo", func(t *testing.T) {
		resp := handler.ToggleLike(ctx, 2, LikeParam{VideoId: 999})
		assert.False(t, resp.Success)
		assert.Equal(t, int64(404), resp.StatusCode)
	})
}

func TestListRepliesValidation(t *testing.T) {
	handler := newHandlerFixture(t)
	resp := handler.ListReplies(context.Background(), 1, ListRepliesParam{})
	assert.False(t, resp.Success)
	assert.Equal(t, int64(400), resp.StatusCode)
}

// TestListCommentsTargetGuards 列表目标二选一 不回落到404
func TestListCommentsTargetGuards(t *testing.T) {
	ctx := context.Background()
	handler := newHandlerFixture(t)

	t.Run("NoTarget", func(t *testing.T) {
		resp := handler.ListComments(ctx, 1, ListCommentsParam{})
		assert.False(t, resp.Success)
		assert.Equal(t, int64(400), resp.StatusCode)
	})

	t.Run("BothTargets", func(t *testing.T) {
		resp := handler.ListComments(ctx, 1, ListCommentsParam{VideoId: 10, TweetId: 20})
		assert.False(t, resp.Success)
		assert.Equal(t, int64(400), resp.StatusCode)
	})

	t.Run("VideoOnly", func(t *testing.T) {
		resp := handler.ListComments(ctx, 1, ListCommentsParam{VideoId: 10})
		assert.True(t, resp.Success)
		assert.Equal(t, int64(200), resp.StatusCode)
	})
}
