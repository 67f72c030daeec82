package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// 使用Viper的好处在于支持配置文件的热更新 同时viper对于大小写并不敏感 都是统一进行处理
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")

	// 添加多个可能的配置文件路径
	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Infof("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Errorf("config file not found: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
		return
	}

	logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())

	viper.SetDefault("storage.backend", "memory")
	viper.SetDefault("snowflake.worker_id", 1)
	viper.SetDefault("snowflake.datacenter_id", 1)

	ConfigInfo.Storage.Backend = viper.GetString("storage.backend")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")

	ConfigInfo.Mongo.Uri = viper.GetString("mongo.uri")
	ConfigInfo.Mongo.Database = viper.GetString("mongo.database")

	ConfigInfo.Snowflake.WorkerId = viper.GetInt64("snowflake.worker_id")
	ConfigInfo.Snowflake.DatacenterId = viper.GetInt64("snowflake.datacenter_id")

	logrus.Infof("Config loaded - storage backend: %s", ConfigInfo.Storage.Backend)
	if ConfigInfo.Storage.Backend == "mysql" {
		logrus.Infof("MySQL: %s:%s@%s/%s",
			ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	}
}
