package view

import (
	"context"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/storage"
)

// Page 分页结果信封
type Page struct {
	Items      []storage.Doc `json:"items"`
	Page       int64         `json:"page"`
	Limit      int64         `json:"limit"`
	TotalItems int64         `json:"totalItems"`
	TotalPages int64         `json:"totalPages"`
	HasNext    bool          `json:"hasNext"`
	HasPrev    bool          `json:"hasPrev"`
}

// Paginate 执行整条流水线一次后在内存开窗
// totalItems因此与请求的页码无关 越界页返回空列表而非错误
func (e *Executor) Paginate(ctx context.Context, spec Spec, callerId, pageNum, pageSize int64) (*Page, error) {
	if pageNum < 1 {
		pageNum = constants.DefaultPageNum
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	docs, err := e.Execute(ctx, spec, callerId)
	if err != nil {
		return nil, err
	}

	total := int64(len(docs))
	totalPages := (total + pageSize - 1) / pageSize

	start := (pageNum - 1) * pageSize
	end := start + pageSize
	items := []storage.Doc{}
	if start < total {
		if end > total {
			end = total
		}
		items = docs[start:end]
	}

	return &Page{
		Items:      items,
		Page:       pageNum,
		Limit:      pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    pageNum < totalPages,
		HasPrev:    pageNum > 1 && total > 0,
	}, nil
}
