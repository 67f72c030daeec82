package service

import (
	"context"
	"strings"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/security"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
	"VidTube.com/pkg/view"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PlaylistService 播放列表的属主受限变更与聚合视图
type PlaylistService struct {
	store    storage.Store
	executor *view.Executor
}

func NewPlaylistService(store storage.Store) *PlaylistService {
	return &PlaylistService{
		store:    store,
		executor: view.NewExecutor(store),
	}
}

// CreatePlaylist 名称与描述均为必填
func (service *PlaylistService) CreatePlaylist(ctx context.Context, name, description string, callerId int64) (*model.Playlist, error) {
	if callerId == constants.AnonymousUserId {
		return nil, errno.AuthorizationErr.WithMessage("authentication required")
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, errno.ParamErr.WithMessage("name and description both are required")
	}
	playlist := &model.Playlist{
		Id:          utils.NewID(),
		OwnerId:     callerId,
		Name:        name,
		Description: description,
		VideoIds:    []int64{},
		CreatedAt:   time.Now().Format(constants.DataFormate),
		UpdatedAt:   time.Now().Format(constants.DataFormate),
	}
	doc, err := storage.Encode(playlist)
	if err != nil {
		return nil, err
	}
	if err := service.store.Create(ctx, constants.PlaylistCollection, doc); err != nil {
		logrus.Errorf("create playlist failed: %v", err)
		return nil, errors.WithMessage(err, "failed to create playlist")
	}
	return playlist, nil
}

// UpdatePlaylist 仅属主可编辑
func (service *PlaylistService) UpdatePlaylist(ctx context.Context, playlistId int64, name, description string, callerId int64) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, errno.ParamErr.WithMessage("name and description both are required")
	}
	playlist, err := service.loadPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if err := security.AuthorizeMutation(playlist.OwnerId, callerId); err != nil {
		return nil, err
	}
	playlist.Name = name
	playlist.Description = description
	playlist.UpdatedAt = time.Now().Format(constants.DataFormate)
	patch := storage.Doc{"name": name, "description": description, "updatedAt": playlist.UpdatedAt}
	if err := service.store.UpdateByID(ctx, constants.PlaylistCollection, playlistId, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Playlist not found")
		}
		return nil, errors.WithMessage(err, "failed to update playlist")
	}
	return playlist, nil
}

// DeletePlaylist 仅属主可删除
func (service *PlaylistService) DeletePlaylist(ctx context.Context, playlistId, callerId int64) error {
	playlist, err := service.loadPlaylist(ctx, playlistId)
	if err != nil {
		return err
	}
	if err := security.AuthorizeMutation(playlist.OwnerId, callerId); err != nil {
		return err
	}
	if err := service.store.DeleteByID(ctx, constants.PlaylistCollection, playlistId); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return errors.WithMessage(err, "failed to delete playlist")
	}
	return nil
}

// AddVideo 有序集合语义 重复加入为空操作 闸门查的是播放列表属主而非视频属主
func (service *PlaylistService) AddVideo(ctx context.Context, playlistId, videoId, callerId int64) (*model.Playlist, error) {
	playlist, err := service.loadPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if _, err := service.store.FindByID(ctx, constants.VideoCollection, videoId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, errors.WithMessage(err, "failed to load video")
	}
	if err := security.AuthorizeMutation(playlist.OwnerId, callerId); err != nil {
		return nil, err
	}
	for _, id := range playlist.VideoIds {
		if id == videoId {
			return playlist, nil
		}
	}
	playlist.VideoIds = append(playlist.VideoIds, videoId)
	return service.saveVideoIds(ctx, playlist)
}

// RemoveVideo 从播放列表摘除视频
func (service *PlaylistService) RemoveVideo(ctx context.Context, playlistId, videoId, callerId int64) (*model.Playlist, error) {
	playlist, err := service.loadPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if _, err := service.store.FindByID(ctx, constants.VideoCollection, videoId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, errors.WithMessage(err, "failed to load video")
	}
	if err := security.AuthorizeMutation(playlist.OwnerId, callerId); err != nil {
		return nil, err
	}
	kept := playlist.VideoIds[:0]
	for _, id := range playlist.VideoIds {
		if id != videoId {
			kept = append(kept, id)
		}
	}
	playlist.VideoIds = kept
	return service.saveVideoIds(ctx, playlist)
}

func (service *PlaylistService) saveVideoIds(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error) {
	playlist.UpdatedAt = time.Now().Format(constants.DataFormate)
	patch := storage.Doc{
		"videoIds":  storage.Normalize(playlist.VideoIds),
		"updatedAt": playlist.UpdatedAt,
	}
	if err := service.store.UpdateByID(ctx, constants.PlaylistCollection, playlist.Id, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Playlist not found")
		}
		return nil, errors.WithMessage(err, "failed to update playlist videos")
	}
	return playlist, nil
}

func (service *PlaylistService) loadPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	if playlistId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid playlist id")
	}
	doc, err := service.store.FindByID(ctx, constants.PlaylistCollection, playlistId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Playlist not found")
		}
		return nil, errors.WithMessage(err, "failed to load playlist")
	}
	var playlist model.Playlist
	if err := storage.Decode(doc, &playlist); err != nil {
		return nil, errors.WithMessage(err, "failed to decode playlist")
	}
	return &playlist, nil
}
