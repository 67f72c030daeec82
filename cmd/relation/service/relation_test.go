package service

import (
	"context"
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

// seedRelation 三个用户 频道1有两个视频
func seedRelation(t *testing.T) storage.Store {
	t.Helper()
	store := storage.NewMemoryStore()
	for i, name := range []string{"alice", "bob", "carol"} {
		mustCreate(t, store, constants.UserCollection, &model.User{
			Id: int64(i + 1), Username: name, FullName: name, Email: name + "@x.com",
			PasswordHash: "secret", Avatar: model.MediaRef{URL: "http://cdn/" + name + ".png"},
		})
	}
	mustCreate(t, store, constants.VideoCollection, &model.Video{
		Id: 10, OwnerId: 1, Title: "old", Views: 3, IsPublished: true,
		VideoFile: model.MediaRef{URL: "http://cdn/old.mp4"}, CreatedAt: "2025-01-01 10:00:00",
	})
	mustCreate(t, store, constants.VideoCollection, &model.Video{
		Id: 11, OwnerId: 1, Title: "new", Views: 9, IsPublished: true,
		VideoFile: model.MediaRef{URL: "http://cdn/new.mp4"}, CreatedAt: "2025-01-02 10:00:00",
	})
	return store
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	store := seedRelation(t)
	service := NewSubscriptionService(store)

	subscribed, err := service.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)

	status, err := service.CheckSubscriptionStatus(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, status)

	subscribed, err = service.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, subscribed)

	status, err = service.CheckSubscriptionStatus(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, status)
}

func TestToggleSubscriptionGuards(t *testing.T) {
	ctx := context.Background()
	service := NewSubscriptionService(seedRelation(t))

	t.Run("SelfSubscribe", func(t *testing.T) {
		_, err := service.ToggleSubscription(ctx, 1, 1)
		assert.Equal(t, errno.ParamErrCode, errCode(t, err))
	})

	t.Run("Anonymous", func(t *testing.T) {
		_, err := service.ToggleSubscription(ctx, 1, constants.AnonymousUserId)
		assert.Equal(t, errno.AuthorizationCode, errCode(t, err))
	})

	t.Run("MissingChannel", func(t *testing.T) {
		_, err := service.ToggleSubscription(ctx, 999, 1)
		assert.Equal(t, errno.NotFoundErrCode, errCode(t, err))
	})

	t.Run("AnonymousStatus", func(t *testing.T) {
		status, err := service.CheckSubscriptionStatus(ctx, 1, constants.AnonymousUserId)
		require.NoError(t, err)
		assert.False(t, status)
	})
}

// TestGetChannelSubscribers 互关标记相对频道身份计算 与调用者无关
func TestGetChannelSubscribers(t *testing.T) {
	ctx := context.Background()
	store := seedRelation(t)
	service := NewSubscriptionService(store)

	// bob与carol订阅频道1 频道1回订了bob
	_, err := service.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)
	_, err = service.ToggleSubscription(ctx, 1, 3)
	require.NoError(t, err)
	_, err = service.ToggleSubscription(ctx, 2, 1)
	require.NoError(t, err)

	page, err := service.GetChannelSubscribers(ctx, 1, 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
	require.Len(t, page.Items, 2)

	byName := map[string]map[string]any{}
	for _, item := range page.Items {
		subscriber := item["subscriber"].(map[string]any)
		byName[subscriber["username"].(string)] = subscriber
		// 顶级只投影subscriber
		assert.NotContains(t, item, "subscriberId")
		assert.NotContains(t, item, "channelId")
		assert.NotContains(t, subscriber, "passwordHash")
		assert.NotContains(t, subscriber, "email")
	}

	bob := byName["bob"]
	require.NotNil(t, bob)
	assert.Equal(t, true, bob["subscribedToSubscriber"])
	// bob的粉丝只有频道1
	assert.Equal(t, int64(1), bob["subscribersCount"])

	carol := byName["carol"]
	require.NotNil(t, carol)
	assert.Equal(t, false, carol["subscribedToSubscriber"])
	assert.Equal(t, int64(0), carol["subscribersCount"])

	t.Run("MissingChannel", func(t *testing.T) {
		_, err := service.GetChannelSubscribers(ctx, 999, 1, 10, 1)
		assert.Equal(t, errno.NotFoundErrCode, errCode(t, err))
	})
}

// TestGetSubscribedChannels 订阅列表带频道最新视频
func TestGetSubscribedChannels(t *testing.T) {
	ctx := context.Background()
	store := seedRelation(t)
	service := NewSubscriptionService(store)

	_, err := service.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)

	page, err := service.GetSubscribedChannels(ctx, 2, 1, 10, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	channel := page.Items[0]["channel"].(map[string]any)
	assert.Equal(t, "alice", channel["username"])
	assert.NotContains(t, channel, "passwordHash")

	latest := channel["latestVideo"].(map[string]any)
	assert.Equal(t, int64(11), latest["id"])
	assert.Equal(t, "new", latest["title"])
	assert.Equal(t, "http://cdn/new.mp4", latest["videoFile"].(map[string]any)["url"])

	t.Run("InvalidSubscriber", func(t *testing.T) {
		_, err := service.GetSubscribedChannels(ctx, 0, 1, 10, 1)
		assert.Equal(t, errno.ParamErrCode, errCode(t, err))
	})

	t.Run("NoSubscriptions", func(t *testing.T) {
		page, err := service.GetSubscribedChannels(ctx, 3, 1, 10, 3)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.TotalItems)
	})
}
