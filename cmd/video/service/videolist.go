package service

import (
	"context"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/view"
)

// GetUserPlaylists 用户的播放列表 聚合计数每次请求重算 不缓存不落盘
func (service *PlaylistService) GetUserPlaylists(ctx context.Context, userId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if userId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid user id")
	}
	spec := view.Spec{
		Source: constants.PlaylistCollection,
		Match:  storage.Predicate{"ownerId": userId},
		Joins: []view.Join{
			{Name: "videos", From: constants.VideoCollection, LocalField: "videoIds", ForeignField: "id"},
		},
		Derives: []view.Derive{
			view.Count("totalVideos", "videos"),
			view.Sum("totalViews", "videos", "views"),
		},
		Sort: &view.SortKey{Field: "updatedAt", Desc: true},
		Project: []string{
			"id", "name", "description", "totalVideos", "totalViews", "updatedAt",
		},
	}
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}

// GetPlaylistById 播放列表详情 只按播放列表id查 视频列表保持加入顺序
// 未发布视频滤除后再计数
func (service *PlaylistService) GetPlaylistById(ctx context.Context, playlistId, callerId int64) (storage.Doc, error) {
	if _, err := service.loadPlaylist(ctx, playlistId); err != nil {
		return nil, err
	}
	spec := view.Spec{
		Source: constants.PlaylistCollection,
		Match:  storage.Predicate{"id": playlistId},
		Joins: []view.Join{
			{Name: "videos", From: constants.VideoCollection, LocalField: "videoIds", ForeignField: "id"},
			{Name: "owner", From: constants.UserCollection, LocalField: "ownerId", ForeignField: "id"},
		},
		Derives: []view.Derive{
			view.FilterEq("videos", "isPublished", true),
			view.Count("totalVideos", "videos"),
			view.Sum("totalViews", "videos", "views"),
			view.First("owner", "owner"),
		},
		Project: []string{
			"id", "name", "description", "createdAt", "updatedAt", "totalVideos", "totalViews",
			"videos.id", "videos.videoFile.url", "videos.thumbnail.url", "videos.title",
			"videos.description", "videos.duration", "videos.createdAt", "videos.views",
			"owner.username", "owner.fullName", "owner.avatar.url",
		},
	}
	docs, err := service.executor.Execute(ctx, spec, callerId)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		// 详情查询与前置存在性检查之间被并发删除
		return nil, errno.NotFoundErr.WithMessage("Playlist not found")
	}
	return docs[0], nil
}
