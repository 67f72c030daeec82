package service

import (
	"context"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/view"
	"github.com/pkg/errors"
)

// ChannelStats 频道维度的聚合指标 每次请求重算
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// GetChannelStats 频道统计 视频数/播放量/订阅数/获赞数
func (service *PlaylistService) GetChannelStats(ctx context.Context, channelId int64) (*ChannelStats, error) {
	if channelId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid channel id")
	}
	if _, err := service.store.FindByID(ctx, constants.UserCollection, channelId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Channel not found")
		}
		return nil, errors.WithMessage(err, "failed to load channel")
	}

	// 播放量与获赞数走一条视频联结流水线 视频总数与窗口无关 只看Match
	spec := view.Spec{
		Source: constants.VideoCollection,
		Match:  storage.Predicate{"ownerId": channelId},
		Joins: []view.Join{
			{Name: "likes", From: constants.LikeCollection, LocalField: "id", ForeignField: "videoId"},
		},
		Derives: []view.Derive{
			view.Count("likesCount", "likes"),
		},
		Project: []string{"id", "views", "likesCount"},
	}

	stats := &ChannelStats{}
	var err error
	if stats.TotalVideos, err = service.executor.CountAll(ctx, spec); err != nil {
		return nil, errors.WithMessage(err, "failed to count videos")
	}
	if stats.TotalSubscribers, err = service.store.Count(ctx, constants.SubscriptionCollection, storage.Predicate{"channelId": channelId}); err != nil {
		return nil, errors.WithMessage(err, "failed to count subscribers")
	}

	docs, err := service.executor.Execute(ctx, spec, constants.AnonymousUserId)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		stats.TotalViews += storage.AsInt64(doc["views"])
		stats.TotalLikes += storage.AsInt64(doc["likesCount"])
	}
	return stats, nil
}
