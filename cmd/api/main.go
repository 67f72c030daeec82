package main

import (
	"context"

	interaction "VidTube.com/cmd/api/handlers/interaction"
	relation "VidTube.com/cmd/api/handlers/relation"
	tweet "VidTube.com/cmd/api/handlers/tweet"
	video "VidTube.com/cmd/api/handlers/video"
	"VidTube.com/config"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers 对外暴露的全部端点分组 路由层按需挂接
type Handlers struct {
	Interaction *interaction.InteractionHandler
	Relation    *relation.RelationHandler
	Tweet       *tweet.TweetHandler
	Playlist    *video.PlaylistHandler
}

// Init 配置与存储就绪后组装各端点分组
func Init(ctx context.Context) (*Handlers, error) {
	config.Init()
	if err := utils.InitSnowflake(config.ConfigInfo.Snowflake.WorkerId, config.ConfigInfo.Snowflake.DatacenterId); err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, storage.BackendConfig{
		Backend:  config.ConfigInfo.Storage.Backend,
		MysqlDsn: utils.GetMysqlDsn(),
		MongoUri: config.ConfigInfo.Mongo.Uri,
		MongoDb:  config.ConfigInfo.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	return &Handlers{
		Interaction: interaction.NewInteractionHandler(store),
		Relation:    relation.NewRelationHandler(store),
		Tweet:       tweet.NewTweetHandler(store),
		Playlist:    video.NewPlaylistHandler(store),
	}, nil
}

func main() {
	ctx := context.Background()
	if _, err := Init(ctx); err != nil {
		logrus.Fatalf("service init failed: %v", err)
	}
	logrus.Info("handlers ready")
}
