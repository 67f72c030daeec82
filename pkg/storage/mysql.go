package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"VidTube.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MySQLStore 基于gorm的MySQL适配 集合对应表 字段名camelCase与列名snake_case互转
type MySQLStore struct {
	db *gorm.DB
}

// jsonColumns 按JSON列存储的嵌套文档/数组字段
var jsonColumns = map[string]map[string]bool{
	constants.UserCollection:     {"avatar": true, "coverImage": true},
	constants.VideoCollection:    {"videoFile": true, "thumbnail": true},
	constants.PlaylistCollection: {"videoIds": true},
}

// nullableZero 稀疏唯一索引下 零值写为NULL 避免MySQL把零值当作冲突
var nullableZero = map[string]map[string]bool{
	constants.LikeCollection: {"videoId": true, "tweetId": true, "commentId": true},
}

// boolColumns MySQL把BOOLEAN读成整数 读出时还原为bool
var boolColumns = map[string]map[string]bool{
	constants.VideoCollection: {"isPublished": true},
}

func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WithMessage(err, "open mysql failed")
	}
	return &MySQLStore{db: db}, nil
}

// Migrate 建表与唯一约束 幂等
func (s *MySQLStore) Migrate(ctx context.Context) error {
	for _, ddl := range tableDDL {
		if err := s.db.WithContext(ctx).Exec(ddl).Error; err != nil {
			return errors.WithMessage(err, "migrate failed")
		}
	}
	return nil
}

var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		email VARCHAR(128) NOT NULL,
		full_name VARCHAR(128) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		avatar JSON NULL,
		cover_image JSON NULL,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		updated_at VARCHAR(32) NOT NULL DEFAULT '',
		UNIQUE KEY uniq_username (username),
		UNIQUE KEY uniq_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		id BIGINT PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT,
		video_file JSON NULL,
		thumbnail JSON NULL,
		duration BIGINT NOT NULL DEFAULT 0,
		views BIGINT NOT NULL DEFAULT 0,
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		updated_at VARCHAR(32) NOT NULL DEFAULT '',
		KEY idx_owner (owner_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tweets (
		id BIGINT PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		content TEXT NOT NULL,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		updated_at VARCHAR(32) NOT NULL DEFAULT '',
		KEY idx_owner (owner_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGINT PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		video_id BIGINT NOT NULL DEFAULT 0,
		tweet_id BIGINT NOT NULL DEFAULT 0,
		parent_id BIGINT NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		updated_at VARCHAR(32) NOT NULL DEFAULT '',
		KEY idx_video_parent (video_id, parent_id),
		KEY idx_tweet_parent (tweet_id, parent_id),
		KEY idx_parent (parent_id)
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id BIGINT PRIMARY KEY,
		liked_by_id BIGINT NOT NULL,
		video_id BIGINT NULL,
		tweet_id BIGINT NULL,
		comment_id BIGINT NULL,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		UNIQUE KEY uniq_video_like (liked_by_id, video_id),
		UNIQUE KEY uniq_tweet_like (liked_by_id, tweet_id),
		UNIQUE KEY uniq_comment_like (liked_by_id, comment_id)
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id BIGINT PRIMARY KEY,
		subscriber_id BIGINT NOT NULL,
		channel_id BIGINT NOT NULL,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		UNIQUE KEY uniq_subscription (subscriber_id, channel_id),
		KEY idx_channel (channel_id)
	)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		id BIGINT PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		name VARCHAR(128) NOT NULL,
		description TEXT,
		video_ids JSON NULL,
		created_at VARCHAR(32) NOT NULL DEFAULT '',
		updated_at VARCHAR(32) NOT NULL DEFAULT '',
		KEY idx_owner (owner_id)
	)`,
}

func (s *MySQLStore) FindByID(ctx context.Context, collection string, id int64) (Doc, error) {
	var row map[string]any
	err := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "find %s by id failed", collection)
	}
	return s.fromRow(collection, row), nil
}

func (s *MySQLStore) FindMany(ctx context.Context, collection string, pred Predicate, opts *FindOptions) ([]Doc, error) {
	tx := s.db.WithContext(ctx).Table(collection).Where(s.toRowPredicate(pred))
	if opts != nil {
		for _, key := range opts.Sort {
			tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: toColumn(key.Field)}, Desc: key.Desc})
		}
		if opts.Skip > 0 {
			tx = tx.Offset(int(opts.Skip))
		}
		if opts.Limit > 0 {
			tx = tx.Limit(int(opts.Limit))
		}
	}
	var rows []map[string]any
	if err := tx.Find(&rows).Error; err != nil {
		return nil, errors.WithMessagef(err, "find %s failed", collection)
	}
	out := make([]Doc, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.fromRow(collection, row))
	}
	return out, nil
}

func (s *MySQLStore) Count(ctx context.Context, collection string, pred Predicate) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Table(collection).Where(s.toRowPredicate(pred)).Count(&count).Error; err != nil {
		return 0, errors.WithMessagef(err, "count %s failed", collection)
	}
	return count, nil
}

func (s *MySQLStore) Create(ctx context.Context, collection string, doc Doc) error {
	row := s.toRow(collection, doc)
	err := s.db.WithContext(ctx).Table(collection).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.WithMessagef(err, "create %s failed", collection)
	}
	return nil
}

func (s *MySQLStore) UpdateByID(ctx context.Context, collection string, id int64, patch Doc) error {
	var count int64
	if err := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.WithMessagef(err, "update %s failed", collection)
	}
	if count == 0 {
		return ErrNotFound
	}
	err := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).Updates(s.toRow(collection, patch)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.WithMessagef(err, "update %s failed", collection)
	}
	return nil
}

func (s *MySQLStore) DeleteByID(ctx context.Context, collection string, id int64) error {
	tx := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).Delete(nil)
	if tx.Error != nil {
		return errors.WithMessagef(tx.Error, "delete %s failed", collection)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteMany(ctx context.Context, collection string, pred Predicate) (int64, error) {
	tx := s.db.WithContext(ctx).Table(collection).Where(s.toRowPredicate(pred)).Delete(nil)
	if tx.Error != nil {
		return 0, errors.WithMessagef(tx.Error, "delete many %s failed", collection)
	}
	return tx.RowsAffected, nil
}

// toRow 文档转行 嵌套值落JSON列 稀疏索引字段零值写NULL
func (s *MySQLStore) toRow(collection string, doc Doc) map[string]any {
	row := make(map[string]any, len(doc))
	for field, value := range doc {
		col := toColumn(field)
		if jsonColumns[collection][field] {
			raw, _ := json.Marshal(value)
			row[col] = string(raw)
			continue
		}
		if nullableZero[collection][field] && AsInt64(value) == 0 {
			row[col] = nil
			continue
		}
		row[col] = value
	}
	return row
}

func (s *MySQLStore) toRowPredicate(pred Predicate) map[string]any {
	row := make(map[string]any, len(pred))
	for field, value := range pred {
		row[toColumn(field)] = value
	}
	return row
}

// fromRow 行转文档 []byte还原为string JSON列还原为嵌套值
func (s *MySQLStore) fromRow(collection string, row map[string]any) Doc {
	doc := make(Doc, len(row))
	jsonCols := make(map[string]bool, 4)
	for field := range jsonColumns[collection] {
		jsonCols[toColumn(field)] = true
	}
	for col, value := range row {
		field := toField(col)
		if raw, ok := value.([]byte); ok {
			value = string(raw)
		}
		if value == nil {
			continue
		}
		if jsonCols[col] {
			if str, ok := value.(string); ok && str != "" {
				dec := json.NewDecoder(bytes.NewReader([]byte(str)))
				dec.UseNumber()
				var nested any
				if err := dec.Decode(&nested); err == nil {
					doc[field] = Normalize(nested)
					continue
				}
			}
		}
		if boolColumns[collection][field] {
			if b, ok := value.(bool); ok {
				doc[field] = b
			} else {
				doc[field] = AsInt64(value) != 0
			}
			continue
		}
		doc[field] = Normalize(value)
	}
	return doc
}

// toColumn camelCase字段名转snake_case列名
func toColumn(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// toField snake_case列名还原camelCase
func toField(col string) string {
	parts := strings.Split(col, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
