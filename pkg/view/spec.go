package view

import (
	"VidTube.com/pkg/storage"
)

// Spec 声明式视图描述 一条Match→Join→Derive→Sort→Project流水线
// 各阶段按固定顺序执行 不做可能改变可观测语义的重排
type Spec struct {
	Source  string
	Match   storage.Predicate
	Joins   []Join
	Derives []Derive
	Sort    *SortKey
	Project []string
}

// Join 按外键从命名集合取零到多条关联记录 挂为子列表
// 可嵌套 子Join/子Derive/子Project作用于每条关联记录
type Join struct {
	Name         string
	From         string
	LocalField   string
	ForeignField string
	Joins        []Join
	Derives      []Derive
	Project      []string
}

// SortKey 单字段全序 同值按id补序保证分页稳定
type SortKey struct {
	Field string
	Desc  bool
}

// DeriveFunc 纯函数 (记录+子列表, 调用者身份) -> 派生值
type DeriveFunc func(doc storage.Doc, callerId int64) any

// Derive 派生字段 Name为输出字段名 允许覆盖已有子列表（如过滤）
type Derive struct {
	Name string
	Fn   DeriveFunc
}
