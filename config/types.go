package config

type config struct {
	Storage   storage   `yaml:"storage" mapstructure:"storage"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Mongo     mongo     `yaml:"mongo" mapstructure:"mongo"`
	Snowflake snowflake `yaml:"snowflake" mapstructure:"snowflake"`
}

type storage struct {
	// Backend 取值 mysql | mongo | memory
	Backend string `yaml:"backend"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type mongo struct {
	Uri      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type snowflake struct {
	WorkerId     int64 `yaml:"worker_id" mapstructure:"worker_id"`
	DatacenterId int64 `yaml:"datacenter_id" mapstructure:"datacenter_id"`
}
