package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Encode 将实体结构体转换为Doc 字段名取json标签
// 数值经过Normalize 保证int64不丢精度（雪花ID超过2^53 不能走float64）
func Encode(v any) (Doc, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithMessage(err, "encode document failed")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WithMessage(err, "decode document failed")
	}
	return Normalize(doc).(map[string]any), nil
}

// Decode 将Doc还原为实体结构体
func Decode(doc Doc, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.WithMessage(err, "marshal document failed")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.WithMessage(err, "unmarshal document failed")
	}
	return nil
}

// Normalize 递归归一化文档值 json.Number等数值统一为int64/float64
func Normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint, uint32, uint64:
		return AsInt64(val)
	case float32:
		return float64(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case []int64:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return v
	}
}

// AsInt64 宽松取整 非数值返回0
func AsInt64(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float64:
		return int64(val)
	case float32:
		return int64(val)
	case json.Number:
		i, _ := val.Int64()
		return i
	default:
		return 0
	}
}

// Int64Slice 从文档字段提取int64列表（如playlist的videoIds）
func Int64Slice(v any) []int64 {
	switch val := v.(type) {
	case []int64:
		out := make([]int64, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]int64, 0, len(val))
		for _, item := range val {
			out = append(out, AsInt64(item))
		}
		return out
	default:
		return nil
	}
}

// ValueEqual 归一化后的等值比较 IN语义由调用方展开
func ValueEqual(a, b any) bool {
	return CompareValues(a, b) == 0
}

// CompareValues 文档字段值的全序比较 用于排序与等值判断
func CompareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	an, aIsNum := toFloat(a)
	bn, bIsNum := toFloat(b)
	if aIsNum && bIsNum {
		ai, aOk := a.(int64)
		bi, bOk := b.(int64)
		if aOk && bOk {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			default:
				return 0
			}
		}
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	as, aOk := a.(string)
	bs, bOk := b.(string)
	if aOk && bOk {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	ab, aOk := a.(bool)
	bb, bOk := b.(bool)
	if aOk && bOk {
		switch {
		case ab == bb:
			return 0
		case bb:
			return -1
		default:
			return 1
		}
	}
	fa, fb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case float32:
		return float64(val), true
	default:
		return 0, false
	}
}

// CopyDoc 深拷贝 内存存储读写隔离用
func CopyDoc(doc Doc) Doc {
	if doc == nil {
		return nil
	}
	out := make(Doc, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

// MatchPredicate 判断文档是否满足等值谓词 切片值为IN语义
func MatchPredicate(doc Doc, pred Predicate) bool {
	for field, want := range pred {
		got := doc[field]
		switch wantVal := Normalize(want).(type) {
		case []any:
			found := false
			for _, item := range wantVal {
				if ValueEqual(got, item) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if !ValueEqual(got, wantVal) {
				return false
			}
		}
	}
	return true
}
