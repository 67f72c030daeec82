package view

import (
	"context"

	"VidTube.com/pkg/storage"
	"github.com/pkg/errors"
)

// Executor 把视图描述编译为对Store的一串操作 产出有序的组合记录
// 各阶段之间没有跨集合的一致性快照 读视图按尽力而为的一致性执行
type Executor struct {
	store storage.Store
}

func NewExecutor(store storage.Store) *Executor {
	return &Executor{store: store}
}

func (e *Executor) Store() storage.Store {
	return e.store
}

// Execute 按Match→Join→Derive→Sort→Project固定顺序执行
// 空匹配不是错误 返回空序列
func (e *Executor) Execute(ctx context.Context, spec Spec, callerId int64) ([]storage.Doc, error) {
	docs, err := e.store.FindMany(ctx, spec.Source, spec.Match, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "view: match on %s failed", spec.Source)
	}
	if err := e.applyJoins(ctx, docs, spec.Joins, callerId); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		applyDerives(doc, spec.Derives, callerId)
	}
	if spec.Sort != nil {
		storage.SortDocs(docs, []storage.Sort{
			{Field: spec.Sort.Field, Desc: spec.Sort.Desc},
			{Field: "id", Desc: spec.Sort.Desc},
		})
	}
	if len(spec.Project) > 0 {
		for i, doc := range docs {
			docs[i] = Project(doc, spec.Project)
		}
	}
	return docs, nil
}

// CountAll 与窗口无关的总数 Join/Derive不改变记录数 计数只看Match
func (e *Executor) CountAll(ctx context.Context, spec Spec) (int64, error) {
	count, err := e.store.Count(ctx, spec.Source, spec.Match)
	if err != nil {
		return 0, errors.WithMessagef(err, "view: count on %s failed", spec.Source)
	}
	return count, nil
}

// applyJoins 对一批记录执行一组Join 外键取值合并为一次IN查询
func (e *Executor) applyJoins(ctx context.Context, docs []storage.Doc, joins []Join, callerId int64) error {
	for _, join := range joins {
		if err := e.applyJoin(ctx, docs, join, callerId); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) applyJoin(ctx context.Context, docs []storage.Doc, join Join, callerId int64) error {
	keys := make([]int64, 0, len(docs))
	seen := make(map[int64]bool, len(docs))
	for _, doc := range docs {
		for _, key := range localKeys(doc, join.LocalField) {
			if key == 0 || seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}

	grouped := make(map[int64][]storage.Doc, len(keys))
	if len(keys) > 0 {
		fetched, err := e.store.FindMany(ctx, join.From, storage.Predicate{join.ForeignField: keys}, nil)
		if err != nil {
			return errors.WithMessagef(err, "view: join %s from %s failed", join.Name, join.From)
		}
		for _, doc := range fetched {
			key := storage.AsInt64(doc[join.ForeignField])
			grouped[key] = append(grouped[key], doc)
		}
	}

	// 每条源记录持有独立副本 嵌套阶段互不串扰
	attached := make([]storage.Doc, 0)
	for _, doc := range docs {
		list := make([]any, 0)
		copies := make([]storage.Doc, 0)
		for _, key := range localKeys(doc, join.LocalField) {
			for _, match := range grouped[key] {
				c := storage.CopyDoc(match)
				copies = append(copies, c)
				list = append(list, c)
			}
		}
		doc[join.Name] = list
		attached = append(attached, copies...)
	}

	if err := e.applyJoins(ctx, attached, join.Joins, callerId); err != nil {
		return err
	}
	for _, doc := range attached {
		applyDerives(doc, join.Derives, callerId)
	}
	if len(join.Project) > 0 {
		for _, doc := range docs {
			list, _ := doc[join.Name].([]any)
			for i, item := range list {
				if m, ok := item.(map[string]any); ok {
					list[i] = Project(m, join.Project)
				}
			}
		}
	}
	return nil
}

// localKeys 本地字段为标量或id数组（如playlist.videoIds 保持数组内顺序）
func localKeys(doc storage.Doc, field string) []int64 {
	switch val := doc[field].(type) {
	case []any:
		return storage.Int64Slice(val)
	case []int64:
		return storage.Int64Slice(val)
	default:
		id := storage.AsInt64(val)
		if id == 0 {
			return nil
		}
		return []int64{id}
	}
}

func applyDerives(doc storage.Doc, derives []Derive, callerId int64) {
	for _, derive := range derives {
		doc[derive.Name] = derive.Fn(doc, callerId)
	}
}
