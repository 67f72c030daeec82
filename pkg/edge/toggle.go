package edge

import (
	"context"
	"time"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Toggler 关系边的幂等翻转 订阅/取消与点赞/取消走同一条路径
// check-then-act存在竞态 重复插入由存储层唯一约束拦下 折叠为"已生效"
type Toggler struct {
	store storage.Store
}

func NewToggler(store storage.Store) *Toggler {
	return &Toggler{store: store}
}

// Toggle 查找(主体,目标)边 存在则删除返回false 不存在则创建返回true
// extra为边上的附加字段（无则nil）目标类型由调用端点固定 不做推断
func (t *Toggler) Toggle(ctx context.Context, collection, subjectField string, subjectId int64, targetField string, targetId int64, extra storage.Doc) (bool, error) {
	pred := storage.Predicate{
		subjectField: subjectId,
		targetField:  targetId,
	}
	existing, err := t.store.FindMany(ctx, collection, pred, &storage.FindOptions{Limit: 1})
	if err != nil {
		return false, errors.WithMessagef(err, "toggle: lookup %s edge failed", collection)
	}

	if len(existing) > 0 {
		edgeId := storage.AsInt64(existing[0]["id"])
		if err := t.store.DeleteByID(ctx, collection, edgeId); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// 并发双删 边已不在 结果等价
				return false, nil
			}
			return false, errors.WithMessagef(err, "toggle: remove %s edge failed", collection)
		}
		return false, nil
	}

	doc := storage.Doc{
		"id":         utils.NewID(),
		subjectField: subjectId,
		targetField:  targetId,
		"createdAt":  time.Now().Format(constants.DataFormate),
	}
	for k, v := range extra {
		doc[k] = v
	}
	if err := t.store.Create(ctx, collection, doc); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// 并发双插 另一次toggle已建边 视为已生效
			logrus.Infof("toggle: duplicate %s edge collapsed, subject=%d target=%d", collection, subjectId, targetId)
			return true, nil
		}
		return false, errors.WithMessagef(err, "toggle: create %s edge failed", collection)
	}
	return true, nil
}

// IsActive 边是否存在 派生字段之外的单点查询（如订阅状态检查）
func (t *Toggler) IsActive(ctx context.Context, collection, subjectField string, subjectId int64, targetField string, targetId int64) (bool, error) {
	if subjectId == constants.AnonymousUserId {
		return false, nil
	}
	count, err := t.store.Count(ctx, collection, storage.Predicate{
		subjectField: subjectId,
		targetField:  targetId,
	})
	if err != nil {
		return false, errors.WithMessagef(err, "toggle: count %s edge failed", collection)
	}
	return count > 0, nil
}
