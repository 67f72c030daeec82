package storage

import (
	"context"

	"VidTube.com/pkg/constants"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore 基于官方驱动的MongoDB适配 文档模型与Doc天然同构
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.WithMessage(err, "connect mongo failed")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.WithMessage(err, "ping mongo failed")
	}
	return &MongoStore{db: client.Database(database)}, nil
}

// EnsureIndexes 建立边集合的稀疏唯一索引与常用查询索引 幂等
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, idx := range EdgeIndexes {
		keys := bson.D{}
		filter := bson.M{}
		for _, field := range idx.Fields {
			keys = append(keys, bson.E{Key: field, Value: 1})
			filter[field] = bson.M{"$gt": 0}
		}
		_, err := s.db.Collection(idx.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: keys,
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(filter),
		})
		if err != nil {
			return errors.WithMessagef(err, "create index on %s failed", idx.Collection)
		}
	}
	for _, idx := range UserIndexes {
		keys := bson.D{}
		for _, field := range idx.Fields {
			keys = append(keys, bson.E{Key: field, Value: 1})
		}
		_, err := s.db.Collection(idx.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return errors.WithMessagef(err, "create index on %s failed", idx.Collection)
		}
	}
	// 评论树的懒解析按(根目标, parentId)走索引
	commentIndexes := []bson.D{
		{{Key: "videoId", Value: 1}, {Key: "parentId", Value: 1}},
		{{Key: "tweetId", Value: 1}, {Key: "parentId", Value: 1}},
	}
	for _, keys := range commentIndexes {
		_, err := s.db.Collection(constants.CommentCollection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
		if err != nil {
			return errors.WithMessage(err, "create comment index failed")
		}
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, collection string, id int64) (Doc, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "find %s by id failed", collection)
	}
	return fromBson(raw), nil
}

func (s *MongoStore) FindMany(ctx context.Context, collection string, pred Predicate, opts *FindOptions) ([]Doc, error) {
	findOpts := options.Find()
	if opts != nil {
		if len(opts.Sort) > 0 {
			sortDoc := bson.D{}
			for _, key := range opts.Sort {
				order := 1
				if key.Desc {
					order = -1
				}
				sortDoc = append(sortDoc, bson.E{Key: key.Field, Value: order})
			}
			findOpts.SetSort(sortDoc)
		}
		if opts.Skip > 0 {
			findOpts.SetSkip(opts.Skip)
		}
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
	}
	cursor, err := s.db.Collection(collection).Find(ctx, toFilter(pred), findOpts)
	if err != nil {
		return nil, errors.WithMessagef(err, "find %s failed", collection)
	}
	defer cursor.Close(ctx)
	out := make([]Doc, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, errors.WithMessagef(err, "decode %s failed", collection)
		}
		out = append(out, fromBson(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.WithMessagef(err, "iterate %s failed", collection)
	}
	return out, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string, pred Predicate) (int64, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, toFilter(pred))
	if err != nil {
		return 0, errors.WithMessagef(err, "count %s failed", collection)
	}
	return count, nil
}

func (s *MongoStore) Create(ctx context.Context, collection string, doc Doc) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, toBson(doc))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.WithMessagef(err, "create %s failed", collection)
	}
	return nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, collection string, id int64, patch Doc) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": toBson(patch)})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.WithMessagef(err, "update %s failed", collection)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, collection string, id int64) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.WithMessagef(err, "delete %s failed", collection)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteMany(ctx context.Context, collection string, pred Predicate) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, toFilter(pred))
	if err != nil {
		return 0, errors.WithMessagef(err, "delete many %s failed", collection)
	}
	return res.DeletedCount, nil
}

// toFilter 等值谓词转查询过滤 切片展开为$in
func toFilter(pred Predicate) bson.M {
	filter := bson.M{}
	for field, value := range pred {
		switch normalized := Normalize(value).(type) {
		case []any:
			filter[field] = bson.M{"$in": normalized}
		default:
			filter[field] = normalized
		}
	}
	return filter
}

func toBson(doc Doc) bson.M {
	out := bson.M{}
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// fromBson 驱动返回的文档归一化 剥离内部_id
func fromBson(raw bson.M) Doc {
	doc := make(Doc, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = normalizeBson(v)
	}
	return doc
}

func normalizeBson(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeBson(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeBson(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBson(item)
		}
		return out
	default:
		return Normalize(v)
	}
}
