package view

import (
	"strings"

	"VidTube.com/pkg/storage"
)

// Project 输出字段白名单 支持点号嵌套（如owner.username、avatar.url）
// 联结进来的敏感字段（passwordHash、email）不在白名单即不出现
func Project(doc storage.Doc, paths []string) storage.Doc {
	return applyTree(doc, buildTree(paths))
}

func buildTree(paths []string) map[string]any {
	tree := make(map[string]any)
	for _, path := range paths {
		node := tree
		parts := strings.Split(path, ".")
		for i, part := range parts {
			if i == len(parts)-1 {
				if _, ok := node[part]; !ok {
					node[part] = make(map[string]any)
				}
				break
			}
			next, ok := node[part].(map[string]any)
			if !ok || next == nil {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
	}
	return tree
}

func applyTree(doc storage.Doc, tree map[string]any) storage.Doc {
	out := make(storage.Doc, len(tree))
	for field, sub := range tree {
		value, ok := doc[field]
		if !ok {
			continue
		}
		subtree, _ := sub.(map[string]any)
		if len(subtree) == 0 {
			out[field] = value
			continue
		}
		switch val := value.(type) {
		case map[string]any:
			out[field] = applyTree(val, subtree)
		case []any:
			list := make([]any, 0, len(val))
			for _, item := range val {
				if m, ok := item.(map[string]any); ok {
					list = append(list, applyTree(m, subtree))
					continue
				}
				list = append(list, item)
			}
			out[field] = list
		default:
			// 外部介质引用可能是不解释的不透明串 原样通过
			out[field] = value
		}
	}
	return out
}
