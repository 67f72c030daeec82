package service

import (
	"context"
	"strings"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, store storage.Store, collection string, entity any) {
	t.Helper()
	doc, err := storage.Encode(entity)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), collection, doc))
}

func errCode(t *testing.T, err error) int64 {
	t.Helper()
	var e errno.ErrNo
	require.ErrorAs(t, err, &e)
	return e.ErrCode
}

func seedTweets(t *testing.T) storage.Store {
	t.Helper()
	store := storage.NewMemoryStore()
	mustCreate(t, store, constants.UserCollection, &model.User{
		Id: 1, Username: "alice", FullName: "Alice A", Email: "a@x.com", PasswordHash: "secret",
		Avatar: model.MediaRef{URL: "http://cdn/a.png"},
	})
	mustCreate(t, store, constants.UserCollection, &model.User{
		Id: 2, Username: "bob", FullName: "Bob B", Email: "b@x.com", PasswordHash: "secret",
	})
	return store
}

func TestCreateTweet(t *testing.T) {
	ctx := context.Background()
	store := seedTweets(t)
	service := NewTweetService(store)

	tweet, err := service.CreateTweet(ctx, "hello world", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tweet.OwnerId)
	assert.NotZero(t, tweet.Id)

	_, err = store.FindByID(ctx, constants.TweetCollection, tweet.Id)
	assert.NoError(t, err)

	t.Run("Anonymous", func(t *testing.T) {
		_, err := service.CreateTweet(ctx, "x", constants.AnonymousUserId)
		assert.Equal(t, errno.AuthorizationCode, errCode(t, err))
	})

	t.Run("EmptyContent", func(t *testing.T) {
		_, err := service.CreateTweet(ctx, "   ", 1)
		assert.Equal(t, errno.ParamErrCode, errCode(t, err))
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := service.CreateTweet(ctx, strings.Repeat("字", constants.MaxTweetLength+1), 1)
		assert.Equal(t, errno.ParamErrCode, errCode(t, err))
	})
}

func TestUpdateTweet(t *testing.T) {
	ctx := context.Background()
	store := seedTweets(t)
	service := NewTweetService(store)

	tweet, err := service.CreateTweet(ctx, "before", 1)
	require.NoError(t, err)

	updated, err := service.UpdateTweet(ctx, tweet.Id, "after", 1)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)

	doc, err := store.FindByID(ctx, constants.TweetCollection, tweet.Id)
	require.NoError(t, err)
	assert.Equal(t, "after", doc["content"])

	t.Run("NotOwner", func(t *testing.T) {
		_, err := service.UpdateTweet(ctx, tweet.Id, "hijack", 2)
		assert.Equal(t, errno.AuthorizationCode, errCode(t, err))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := service.UpdateTweet(ctx, 424242, "x", 1)
		assert.Equal(t, errno.NotFoundErrCode, errCode(t, err))
	})
}

// TestDeleteTweet 删除同时清掉指向它的点赞边
func TestDeleteTweet(t *testing.T) {
	ctx := context.Background()
	store := seedTweets(t)
	service := NewTweetService(store)

	tweet, err := service.CreateTweet(ctx, "bye", 1)
	require.NoError(t, err)
	mustCreate(t, store, constants.LikeCollection, &model.Like{Id: 100, LikedById: 2, TweetId: tweet.Id})

	t.Run("NotOwner", func(t *testing.T) {
		err := service.DeleteTweet(ctx, tweet.Id, 2)
		assert.Equal(t, errno.AuthorizationCode, errCode(t, err))
	})

	require.NoError(t, service.DeleteTweet(ctx, tweet.Id, 1))

	_, err = store.FindByID(ctx, constants.TweetCollection, tweet.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	likes, err := store.Count(ctx, constants.LikeCollection, storage.Predicate{"tweetId": tweet.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)
}

// TestGetUserTweets 推文流带属主投影与相对调用者的点赞状态
func TestGetUserTweets(t *testing.T) {
	ctx := context.Background()
	store := seedTweets(t)
	service := NewTweetService(store)

	first, err := service.CreateTweet(ctx, "first", 1)
	require.NoError(t, err)
	_, err = service.CreateTweet(ctx, "second", 1)
	require.NoError(t, err)
	mustCreate(t, store, constants.LikeCollection, &model.Like{Id: 100, LikedById: 2, TweetId: first.Id})

	page, err := service.GetUserTweets(ctx, 1, 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
	require.Len(t, page.Items, 2)

	var firstDoc storage.Doc
	for _, item := range page.Items {
		if storage.AsInt64(item["id"]) == first.Id {
			firstDoc = item
		}
	}
	require.NotNil(t, firstDoc)
	assert.Equal(t, int64(1), firstDoc["likesCount"])
	assert.Equal(t, true, firstDoc["isLiked"])

	owner := firstDoc["ownerDetails"].(map[string]any)
	assert.Equal(t, "alice", owner["username"])
	assert.Equal(t, "http://cdn/a.png", owner["avatar"].(map[string]any)["url"])
	// 联结级投影已裁掉敏感字段
	assert.NotContains(t, owner, "passwordHash")
	assert.NotContains(t, owner, "email")

	// 无点赞者视角
	page, err = service.GetUserTweets(ctx, 1, 1, 10, 1)
	require.NoError(t, err)
	for _, item := range page.Items {
		if storage.AsInt64(item["id"]) == first.Id {
			assert.Equal(t, false, item["isLiked"])
		}
	}

	t.Run("InvalidUser", func(t *testing.T) {
		_, err := service.GetUserTweets(ctx, -1, 1, 10, 1)
		assert.Equal(t, errno.ParamErrCode, errCode(t, err))
	})
}
