package view

import (
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/storage"
)

// Count 子列表长度 如likesCount
func Count(name, list string) Derive {
	return Derive{Name: name, Fn: func(doc storage.Doc, _ int64) any {
		return int64(len(docList(doc[list])))
	}}
}

// First 折叠一对一Join 取子列表首条 空则nil
func First(name, list string) Derive {
	return Derive{Name: name, Fn: func(doc storage.Doc, _ int64) any {
		items := docList(doc[list])
		if len(items) == 0 {
			return nil
		}
		return items[0]
	}}
}

// Last 取子列表末条 如频道最新视频
func Last(name, list string) Derive {
	return Derive{Name: name, Fn: func(doc storage.Doc, _ int64) any {
		items := docList(doc[list])
		if len(items) == 0 {
			return nil
		}
		return items[len(items)-1]
	}}
}

// Sum 子列表数值字段求和 如totalViews
func Sum(name, list, field string) Derive {
	return Derive{Name: name, Fn: func(doc storage.Doc, _ int64) any {
		var total int64
		for _, item := range docList(doc[list]) {
			if m, ok := item.(map[string]any); ok {
				total += storage.AsInt64(m[field])
			}
		}
		return total
	}}
}

// ContainsCaller 调用者是否出现在子列表某字段 匿名调用者恒为false
func ContainsCaller(name, list, field string) Derive {
	return Derive{Name: name, Fn: func(doc storage.Doc, callerId int64) any {
		if callerId == constants.AnonymousUserId {
			return false
		}
		return containsID(doc[list], field, callerId)
	}}
}

// ContainsID 固定身份版本 如互关标记按频道id判定
func ContainsID(name, list, field string, id int64) Derive {
	return Derive{Name: name, Fn: func(doc storage.Doc, _ int64) any {
		return containsID(doc[list], field, id)
	}}
}

// FilterEq 过滤子列表 保留field等于want的记录 覆盖原列表
func FilterEq(list, field string, want any) Derive {
	return Derive{Name: list, Fn: func(doc storage.Doc, _ int64) any {
		items := docList(doc[list])
		out := make([]any, 0, len(items))
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if storage.ValueEqual(m[field], storage.Normalize(want)) {
				out = append(out, item)
			}
		}
		return out
	}}
}

func containsID(list any, field string, id int64) bool {
	for _, item := range docList(list) {
		if m, ok := item.(map[string]any); ok {
			if storage.AsInt64(m[field]) == id {
				return true
			}
		}
	}
	return false
}

func docList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []storage.Doc:
		out := make([]any, len(val))
		for i, d := range val {
			out[i] = d
		}
		return out
	default:
		return nil
	}
}
