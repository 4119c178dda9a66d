package detail

import (
	"context"
	"errors"
	"sync"

	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/board/client"
	"board-front/pkg/core/board/model"
)

// State 详情视图状态机：Viewing -> Editing -> Saving -> {Viewing, Errored}
type State int

const (
	Viewing State = iota // 只读展示
	Editing              // 本地草稿编辑中，删除入口隐藏
	Saving               // 保存请求在途
	Errored              // 保存失败，草稿保留，可直接重试
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

var (
	ErrBadTransition = errors.New("action not allowed in current state")
	ErrNotAuthorized = errors.New("not allowed to modify this post")
	ErrNotConfirmed  = errors.New("delete requires explicit confirmation")
)

// Session 控制器需要的会话能力切面（session.Store 满足）
type Session interface {
	CanModify(b *model.Board) bool
	UpstreamCookie() string
}

// Source 控制器需要的上游操作切面（board/client.Fetcher 满足）
type Source interface {
	GetByNumber(ctx context.Context, number int64) (*model.Board, error)
	Update(ctx context.Context, cookie string, number int64, patch client.Patch) (*model.Board, error)
	Delete(ctx context.Context, cookie string, number int64) error
}

// Draft 编辑中的本地草稿
type Draft struct {
	Title string
	Body  string
}

// Controller 单帖详情控制器。授权不缓存在帖子上，每次渲染都从
// 活跃会话重新求值，并发登出要立刻收回编辑/删除入口。
type Controller struct {
	src  Source
	sess Session

	mu     sync.Mutex
	number int64
	board  *model.Board
	state  State
	draft  Draft
	gen    uint64
	closed bool
}

func NewController(src Source, sess Session, number int64) *Controller {
	return &Controller{src: src, sess: sess, number: number, state: Viewing}
}

// Load 抓取帖子并进入 Viewing。可重入；迟到的旧响应不提交
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	myGen := c.gen
	number := c.number
	c.mu.Unlock()

	board, err := c.src.GetByNumber(ctx, number)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.gen != myGen {
		return nil
	}
	if err != nil {
		return err
	}
	c.board = board
	c.state = Viewing
	return nil
}

// Board 当前帖子快照
func (c *Controller) Board() *model.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board
}

// State 当前状态
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft 当前草稿
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// CanModify 每次渲染重新对活跃会话求值，从不缓存
func (c *Controller) CanModify() bool {
	c.mu.Lock()
	board := c.board
	c.mu.Unlock()
	return c.sess.CanModify(board)
}

// Edit Viewing -> Editing。草稿字段从当前帖子初始化
func (c *Controller) Edit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Viewing {
		return ErrBadTransition
	}
	if !c.sess.CanModify(c.board) {
		return ErrNotAuthorized
	}
	c.draft = Draft{Title: c.board.BoardTitle, Body: c.board.BoardWrite}
	c.state = Editing
	return nil
}

// SetDraft 编辑（含失败重试）期间更新本地草稿
func (c *Controller) SetDraft(d Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing && c.state != Errored {
		return ErrBadTransition
	}
	c.draft = d
	return nil
}

// Save Editing/Errored -> Saving -> Viewing 或 Errored。
// 成功时以服务端返回的表示替换本地帖子（服务端权威，草稿丢弃）；
// 失败退回 Errored，草稿原样保留，用户重试不用重新输入。
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Editing && c.state != Errored {
		c.mu.Unlock()
		return ErrBadTransition
	}
	if !c.sess.CanModify(c.board) {
		c.mu.Unlock()
		return ErrNotAuthorized
	}
	patch := client.Patch{BoardTitle: c.draft.Title, BoardWrite: c.draft.Body}
	number := c.number
	myGen := c.gen
	c.state = Saving
	c.mu.Unlock()

	updated, err := c.src.Update(ctx, c.sess.UpstreamCookie(), number, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.gen != myGen {
		return nil // 视图已卸载或已被新加载取代，本次保存结果作废
	}
	if err != nil {
		c.state = Errored
		return err
	}
	c.board = updated
	c.draft = Draft{}
	c.state = Viewing
	return nil
}

// Delete 仅 Viewing 状态可用，且必须带显式确认。
// 成功后由调用方离开详情视图；失败保持 Viewing 并报告
func (c *Controller) Delete(ctx context.Context, confirmed bool) error {
	c.mu.Lock()
	if c.state != Viewing {
		c.mu.Unlock()
		return ErrBadTransition
	}
	if !c.sess.CanModify(c.board) {
		c.mu.Unlock()
		return ErrNotAuthorized
	}
	number := c.number
	c.mu.Unlock()

	if !confirmed {
		return ErrNotConfirmed
	}
	return c.src.Delete(ctx, c.sess.UpstreamCookie(), number)
}

// Close 视图卸载，在途响应不再提交
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// IsValidationErr 区分前置校验类失败（不会发出任何请求）
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrNotConfirmed) || errors.Is(err, apperrors.ErrValidation)
}
