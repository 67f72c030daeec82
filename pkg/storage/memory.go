package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore 内存实现 测试与嵌入场景使用 语义与真实后端一致
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string][]Doc
	indexes []UniqueIndex
}

func NewMemoryStore() *MemoryStore {
	indexes := make([]UniqueIndex, 0, len(EdgeIndexes)+len(UserIndexes))
	indexes = append(indexes, EdgeIndexes...)
	indexes = append(indexes, UserIndexes...)
	return &MemoryStore{
		data:    make(map[string][]Doc),
		indexes: indexes,
	}
}

func (s *MemoryStore) FindByID(ctx context.Context, collection string, id int64) (Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.data[collection] {
		if AsInt64(doc["id"]) == id {
			return CopyDoc(doc), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindMany(ctx context.Context, collection string, pred Predicate, opts *FindOptions) ([]Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Doc, 0)
	for _, doc := range s.data[collection] {
		if MatchPredicate(doc, pred) {
			out = append(out, CopyDoc(doc))
		}
	}
	if opts != nil {
		if len(opts.Sort) > 0 {
			SortDocs(out, opts.Sort)
		}
		if opts.Skip > 0 {
			if opts.Skip >= int64(len(out)) {
				out = out[:0]
			} else {
				out = out[opts.Skip:]
			}
		}
		if opts.Limit > 0 && opts.Limit < int64(len(out)) {
			out = out[:opts.Limit]
		}
	}
	return out, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string, pred Predicate) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, doc := range s.data[collection] {
		if MatchPredicate(doc, pred) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, doc Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := Normalize(CopyDoc(doc)).(map[string]any)
	if err := s.checkUnique(collection, normalized, AsInt64(normalized["id"])); err != nil {
		return err
	}
	s.data[collection] = append(s.data[collection], normalized)
	return nil
}

func (s *MemoryStore) UpdateByID(ctx context.Context, collection string, id int64, patch Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.data[collection] {
		if AsInt64(doc["id"]) == id {
			merged := CopyDoc(doc)
			for k, v := range patch {
				merged[k] = Normalize(copyValue(v))
			}
			if err := s.checkUnique(collection, merged, id); err != nil {
				return err
			}
			for k, v := range merged {
				doc[k] = v
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteByID(ctx context.Context, collection string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.data[collection]
	for i, doc := range docs {
		if AsInt64(doc["id"]) == id {
			s.data[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteMany(ctx context.Context, collection string, pred Predicate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.data[collection]
	kept := docs[:0]
	var removed int64
	for _, doc := range docs {
		if MatchPredicate(doc, pred) {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	s.data[collection] = kept
	return removed, nil
}

// checkUnique 稀疏唯一约束 索引字段全部非零时参与判重
func (s *MemoryStore) checkUnique(collection string, doc Doc, selfID int64) error {
	for _, idx := range s.indexes {
		if idx.Collection != collection {
			continue
		}
		active := true
		for _, field := range idx.Fields {
			if isZeroValue(doc[field]) {
				active = false
				break
			}
		}
		if !active {
			continue
		}
		for _, existing := range s.data[collection] {
			if AsInt64(existing["id"]) == selfID {
				continue
			}
			match := true
			for _, field := range idx.Fields {
				if !ValueEqual(existing[field], doc[field]) {
					match = false
					break
				}
			}
			if match {
				return ErrDuplicate
			}
		}
	}
	return nil
}

// isZeroValue 缺失/零id/空串视为未填 不参与稀疏唯一约束
func isZeroValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return AsInt64(v) == 0
}

// SortDocs 多键排序 稳定
func SortDocs(docs []Doc, keys []Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range keys {
			cmp := CompareValues(docs[i][key.Field], docs[j][key.Field])
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}
