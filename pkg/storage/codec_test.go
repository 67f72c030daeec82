package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEntity struct {
	Id      int64   `json:"id"`
	Name    string  `json:"name"`
	Views   int64   `json:"views"`
	Ids     []int64 `json:"ids"`
	Visible bool    `json:"visible"`
}

// TestEncodeKeepsInt64Precision 雪花ID超过2^53 编码后必须保持int64精度
func TestEncodeKeepsInt64Precision(t *testing.T) {
	entity := &sampleEntity{
		Id:    1844674407370955161,
		Name:  "clip",
		Views: 42,
		Ids:   []int64{1844674407370955162, 3},
	}
	doc, err := Encode(entity)
	require.NoError(t, err)

	assert.Equal(t, int64(1844674407370955161), doc["id"])
	assert.Equal(t, int64(42), doc["views"])
	assert.Equal(t, []int64{1844674407370955162, 3}, Int64Slice(doc["ids"]))
}

func TestDecodeRoundTrip(t *testing.T) {
	entity := &sampleEntity{Id: 7, Name: "clip", Views: 9, Visible: true}
	doc, err := Encode(entity)
	require.NoError(t, err)

	var out sampleEntity
	require.NoError(t, Decode(doc, &out))
	assert.Equal(t, *entity, out)
}

func TestNormalize(t *testing.T) {
	t.Run("JsonNumber", func(t *testing.T) {
		assert.Equal(t, int64(5), Normalize(json.Number("5")))
		assert.Equal(t, 1.5, Normalize(json.Number("1.5")))
	})
	t.Run("NestedDoc", func(t *testing.T) {
		got := Normalize(map[string]any{
			"a": 1,
			"b": []any{json.Number("2")},
		}).(map[string]any)
		assert.Equal(t, int64(1), got["a"])
		assert.Equal(t, int64(2), got["b"].([]any)[0])
	})
}

func TestCompareValues(t *testing.T) {
	t.Run("NilFirst", func(t *testing.T) {
		assert.Equal(t, -1, CompareValues(nil, int64(0)))
		assert.Equal(t, 1, CompareValues(int64(0), nil))
	})
	t.Run("Int64Exact", func(t *testing.T) {
		// 相邻大整数在float64下不可分辨 必须走int64比较
		a := int64(1844674407370955161)
		b := int64(1844674407370955162)
		assert.Equal(t, -1, CompareValues(a, b))
		assert.Equal(t, 0, CompareValues(a, a))
	})
	t.Run("Strings", func(t *testing.T) {
		assert.Equal(t, -1, CompareValues("2025-01-01 10:00:00", "2025-01-02 10:00:00"))
	})
}

func TestMatchPredicate(t *testing.T) {
	doc := Doc{"ownerId": int64(3), "parentId": int64(0)}
	assert.True(t, MatchPredicate(doc, Predicate{"ownerId": 3}))
	assert.False(t, MatchPredicate(doc, Predicate{"ownerId": 4}))
	// 切片为IN语义
	assert.True(t, MatchPredicate(doc, Predicate{"ownerId": []int64{1, 3}}))
	assert.False(t, MatchPredicate(doc, Predicate{"ownerId": []int64{1, 2}}))
	// 空谓词匹配一切
	assert.True(t, MatchPredicate(doc, Predicate{}))
}

func TestCopyDocIsolation(t *testing.T) {
	src := Doc{"id": int64(1), "avatar": map[string]any{"url": "a"}, "tags": []any{"x"}}
	dup := CopyDoc(src)
	dup["avatar"].(map[string]any)["url"] = "b"
	dup["tags"].([]any)[0] = "y"
	assert.Equal(t, "a", src["avatar"].(map[string]any)["url"])
	assert.Equal(t, "x", src["tags"].([]any)[0])
}
