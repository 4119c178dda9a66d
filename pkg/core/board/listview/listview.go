package listview

import (
	"context"
	"sort"
	"strings"
	"sync"

	"board-front/pkg/core/board/model"
	"board-front/pkg/core/category"
)

// PageSize 每页条目数，全站固定
const PageSize = 10

// Query 展示查询：派生状态，随用随算，不持久化
type Query struct {
	SearchTerm string
	PageIndex  int
}

// Page 一页渲染结果
type Page struct {
	Rows          []model.Board
	PageIndex     int
	TotalPages    int
	FilteredCount int
	HasPrev       bool
	HasNext       bool
	// NoPosts 分类范围内本来就没有任何帖子：渲染固定的"无帖子"指示，
	// 直接绕过流水线（与搜索命中为零是两种不同的空）
	NoPosts bool
}

// BuildPage 列表流水线：分拣 -> 排序 -> 拼接 -> 过滤 -> 分页。
//  1. 公告与其余帖子分拣，公告保持到达顺序；
//  2. 其余帖子按更新时间降序稳定排序，时间相同保持输入相对顺序；
//  3. 公告永远置顶拼在前面，不受搜索词和时效影响；
//  4. 搜索词为空全保留，否则标题或正文包含字面搜索词（区分大小写，不做归一化）。
func BuildPage(boards []model.Board, q Query) Page {
	if q.PageIndex < 0 {
		q.PageIndex = 0 // 页码下界，负值按第一页处理
	}
	if len(boards) == 0 {
		return Page{PageIndex: q.PageIndex, TotalPages: 1, NoPosts: true}
	}

	var notices, others []model.Board
	for _, b := range boards {
		if b.IsNotice() {
			notices = append(notices, b)
		} else {
			others = append(others, b)
		}
	}

	sort.SliceStable(others, func(i, j int) bool {
		return others[i].UpdatedDate.After(others[j].UpdatedDate.Time)
	})

	combined := make([]model.Board, 0, len(notices)+len(others))
	combined = append(combined, notices...)
	combined = append(combined, others...)

	filtered := combined
	if q.SearchTerm != "" {
		filtered = filtered[:0:0]
		for _, b := range combined {
			if strings.Contains(b.BoardTitle, q.SearchTerm) ||
				strings.Contains(b.BoardWrite, q.SearchTerm) {
				filtered = append(filtered, b)
			}
		}
	}

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1 // 搜索零命中也是一页空表，不是错误
	}

	start := q.PageIndex * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Rows:          filtered[start:end],
		PageIndex:     q.PageIndex,
		TotalPages:    totalPages,
		FilteredCount: len(filtered),
		HasPrev:       q.PageIndex > 0,
		HasNext:       q.PageIndex < totalPages-1,
	}
}

// Source 列表视图的数据来源（board/client.Fetcher 满足该接口）
type Source interface {
	ListByCategory(ctx context.Context, c category.Code) ([]model.Board, error)
}

// View 一个列表视图实例：持有当前分类范围的原始集合与查询状态。
// 改分类触发重新抓取并把页码归零；只改搜索词或页码不重新抓取，
// 仅对已加载数据重算流水线。
type View struct {
	src Source

	mu     sync.Mutex
	scope  category.Code
	raw    []model.Board
	query  Query
	gen    uint64 // 抓取代号：范围变化引发的新抓取会作废同一视图上仍在途的旧抓取
	closed bool
	err    error
}

func NewView(src Source) *View {
	return &View{src: src, scope: category.All}
}

// SetCategory 重设分类范围：发起新抓取，页码归零。
// 迟到的旧响应（代号已过期或视图已卸载）直接丢弃，不提交到视图。
func (v *View) SetCategory(ctx context.Context, c category.Code) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.gen++
	myGen := v.gen
	v.scope = c
	v.mu.Unlock()

	boards, err := v.src.ListByCategory(ctx, c)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.gen != myGen {
		return nil // 已有更新的抓取，或视图已卸载：本次结果作废
	}
	if err != nil {
		v.err = err
		return err
	}
	v.raw = boards
	v.err = nil
	v.query.PageIndex = 0
	return nil
}

// SetSearch 只重算，不抓取
func (v *View) SetSearch(term string) {
	v.mu.Lock()
	v.query.SearchTerm = term
	v.mu.Unlock()
}

// SetPage 只重算，不抓取。边界由前端禁用上一页/下一页控件保证，
// 这里不做越界纠正
func (v *View) SetPage(index int) {
	v.mu.Lock()
	v.query.PageIndex = index
	v.mu.Unlock()
}

// Scope 当前分类范围
func (v *View) Scope() category.Code {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scope
}

// Err 最近一次抓取的错误
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Page 对当前数据执行流水线，产出一页渲染结果
func (v *View) Page() Page {
	v.mu.Lock()
	boards := v.raw
	q := v.query
	v.mu.Unlock()
	return BuildPage(boards, q)
}

// Close 视图卸载：此后一切在途响应都不再提交
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.raw = nil
	v.mu.Unlock()
}
