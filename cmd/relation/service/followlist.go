package service

import (
	"context"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/view"
	"github.com/pkg/errors"
)

// GetChannelSubscribers 频道订阅者列表
// 嵌套联结订阅者自己的订阅边 派生互关标记与其粉丝数 相对频道身份计算
func (service *SubscriptionService) GetChannelSubscribers(ctx context.Context, channelId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if _, err := service.store.FindByID(ctx, constants.UserCollection, channelId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Channel not found")
		}
		return nil, errors.WithMessage(err, "Failed to load channel")
	}
	spec := view.Spec{
		Source: constants.SubscriptionCollection,
		Match:  storage.Predicate{"channelId": channelId},
		Joins: []view.Join{
			{
				Name:         "subscriber",
				From:         constants.UserCollection,
				LocalField:   "subscriberId",
				ForeignField: "id",
				Joins: []view.Join{
					{
						Name:         "subscribedToSubscriber",
						From:         constants.SubscriptionCollection,
						LocalField:   "id",
						ForeignField: "channelId",
					},
				},
				Derives: []view.Derive{
					// 计数先取 随后互关标记覆盖原始子列表
					view.Count("subscribersCount", "subscribedToSubscriber"),
					view.ContainsID("subscribedToSubscriber", "subscribedToSubscriber", "subscriberId", channelId),
				},
			},
		},
		Derives: []view.Derive{
			view.First("subscriber", "subscriber"),
		},
		Sort: &view.SortKey{Field: "createdAt", Desc: true},
		Project: []string{
			"subscriber.id", "subscriber.username", "subscriber.fullName", "subscriber.avatar.url",
			"subscriber.subscribedToSubscriber", "subscriber.subscribersCount",
		},
	}
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}

// GetSubscribedChannels 用户订阅的频道列表 带频道最新视频
func (service *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if subscriberId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid subscriber id")
	}
	spec := view.Spec{
		Source: constants.SubscriptionCollection,
		Match:  storage.Predicate{"subscriberId": subscriberId},
		Joins: []view.Join{
			{
				Name:         "channel",
				From:         constants.UserCollection,
				LocalField:   "channelId",
				ForeignField: "id",
				Joins: []view.Join{
					{
						Name:         "videos",
						From:         constants.VideoCollection,
						LocalField:   "id",
						ForeignField: "ownerId",
					},
				},
				Derives: []view.Derive{
					view.Last("latestVideo", "videos"),
				},
			},
		},
		Derives: []view.Derive{
			view.First("channel", "channel"),
		},
		Sort: &view.SortKey{Field: "createdAt", Desc: true},
		Project: []string{
			"channel.id", "channel.username", "channel.fullName", "channel.avatar.url",
			"channel.latestVideo.id", "channel.latestVideo.videoFile.url",
			"channel.latestVideo.thumbnail.url", "channel.latestVideo.ownerId",
			"channel.latestVideo.title", "channel.latestVideo.description",
			"channel.latestVideo.duration", "channel.latestVideo.createdAt",
			"channel.latestVideo.views",
		},
	}
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}
