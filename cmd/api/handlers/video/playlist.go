package handlers

import (
	"context"

	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/response"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
)

// PlaylistHandler 播放列表与频道统计的信封层
type PlaylistHandler struct {
	playlists *service.PlaylistService
}

func NewPlaylistHandler(store storage.Store) *PlaylistHandler {
	return &PlaylistHandler{
		playlists: service.NewPlaylistService(store),
	}
}

type CreatePlaylistParam struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdatePlaylistParam struct {
	PlaylistId  int64  `json:"playlistId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type PlaylistVideoParam struct {
	PlaylistId int64 `json:"playlistId" validate:"required,gt=0"`
	VideoId    int64 `json:"videoId" validate:"required,gt=0"`
}

type UserPlaylistsParam struct {
	UserId   int64 `json:"userId" validate:"required,gt=0"`
	PageNum  int64 `json:"page" validate:"omitempty,gt=0"`
	PageSize int64 `json:"limit" validate:"omitempty,gt=0"`
}

func (h *PlaylistHandler) CreatePlaylist(ctx context.Context, callerId int64, param CreatePlaylistParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	playlist, err := h.playlists.CreatePlaylist(ctx, param.Name, param.Description, callerId)
	if err != nil {
		return response.Pack(err, nil, "")
	}
	return response.Created(playlist, "playlist created successfully")
}

func (h *PlaylistHandler) UpdatePlaylist(ctx context.Context, callerId int64, param UpdatePlaylistParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	playlist, err := h.playlists.UpdatePlaylist(ctx, param.PlaylistId, param.Name, param.Description, callerId)
	return response.Pack(err, playlist, "playlist updated successfully")
}

func (h *PlaylistHandler) DeletePlaylist(ctx context.Context, callerId, playlistId int64) *response.Response {
	err := h.playlists.DeletePlaylist(ctx, playlistId, callerId)
	return response.Pack(err, map[string]any{}, "playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideoToPlaylist(ctx context.Context, callerId int64, param PlaylistVideoParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	playlist, err := h.playlists.AddVideo(ctx, param.PlaylistId, param.VideoId, callerId)
	return response.Pack(err, playlist, "Added video to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideoFromPlaylist(ctx context.Context, callerId int64, param PlaylistVideoParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	playlist, err := h.playlists.RemoveVideo(ctx, param.PlaylistId, param.VideoId, callerId)
	return response.Pack(err, playlist, "Removed video from playlist successfully")
}

func (h *PlaylistHandler) GetUserPlaylists(ctx context.Context, callerId int64, param UserPlaylistsParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	page, err := h.playlists.GetUserPlaylists(ctx, param.UserId, param.PageNum, param.PageSize, callerId)
	return response.Pack(err, page, "playlists fetched successfully")
}

func (h *PlaylistHandler) GetPlaylistById(ctx context.Context, callerId, playlistId int64) *response.Response {
	playlist, err := h.playlists.GetPlaylistById(ctx, playlistId, callerId)
	return response.Pack(err, playlist, "playlist fetched successfully")
}

func (h *PlaylistHandler) GetChannelStats(ctx context.Context, channelId int64) *response.Response {
	stats, err := h.playlists.GetChannelStats(ctx, channelId)
	return response.Pack(err, stats, "channel stats fetched successfully")
}
