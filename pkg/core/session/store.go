package session

import (
	"context"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	apperrors "board-front/pkg/common/errors"
	boardmodel "board-front/pkg/core/board/model"
	"board-front/pkg/core/user/model"
)

// IdentityClient 会话身份的上游依赖（由 user/client 实现）
type IdentityClient interface {
	// CurrentUser 携带上游会话凭证请求当前身份，未认证时返回 ErrUnauthenticated
	CurrentUser(ctx context.Context, upstreamCookie string) (*model.User, error)
	// Logout 终止上游会话
	Logout(ctx context.Context, upstreamCookie string) error
}

// Store 会话存储：整个标签页生命周期内全站唯一的授权事实来源。
// 只有 Load/Login/Logout 三个入口会写入，读取方拿到的是派生能力布尔值，
// 不直接暴露等级数字，避免各视图散落 level 比较。
type Store struct {
	identity IdentityClient

	mu       sync.RWMutex
	current  *model.User
	upstream string // 上游会话 cookie，随身份一起存取
	lastErr  error  // Load 的可追溯错误，用于诊断展示

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

func NewStore(identity IdentityClient) *Store {
	return &Store{
		identity: identity,
		subs:     make(map[int]func()),
	}
}

// Load 从上游会话 cookie 重新派生当前身份。幂等，每次顶层挂载都可以调用。
// 明确的"未认证"不算错误；其他失败同样清空身份，但保留错误供诊断。
func (s *Store) Load(ctx context.Context, upstreamCookie string) {
	user, err := s.identity.CurrentUser(ctx, upstreamCookie)

	s.mu.Lock()
	switch {
	case err == nil:
		s.current = user
		s.upstream = upstreamCookie
		s.lastErr = nil
	case apperrors.IsUnauthenticated(err):
		s.current = nil
		s.upstream = ""
		s.lastErr = nil
	default:
		hlog.Warnf("session load failed: %v", err)
		s.current = nil
		s.upstream = ""
		s.lastErr = err
	}
	s.mu.Unlock()

	s.notify()
}

// Login 外部登录交换成功之后设置当前用户，本身不做任何凭证校验
func (s *Store) Login(user *model.User, upstreamCookie string) {
	s.mu.Lock()
	s.current = user
	s.upstream = upstreamCookie
	s.lastErr = nil
	s.mu.Unlock()

	s.notify()
}

// Logout 调用上游会话终止接口，然后无条件清空本地状态。
// 即使上游调用网络失败也必须清空，否则界面会卡在"已登录"而会话早已失效。
func (s *Store) Logout(ctx context.Context) error {
	s.mu.RLock()
	cookie := s.upstream
	s.mu.RUnlock()

	var err error
	if cookie != "" {
		if err = s.identity.Logout(ctx, cookie); err != nil {
			hlog.Warnf("upstream logout failed, clearing local session anyway: %v", err)
		}
	}

	s.mu.Lock()
	s.current = nil
	s.upstream = ""
	s.lastErr = nil
	s.mu.Unlock()

	s.notify()
	return err
}

// Current 当前用户快照，未登录返回 nil
func (s *Store) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// UpstreamCookie 供后续需要认证的上游调用携带
func (s *Store) UpstreamCookie() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.upstream
}

// Err 最近一次 Load 的可追溯错误
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAdmin()
}

// CanModify 帖子改动权：已登录 且（作者本人 或 管理员）。
// 每次渲染都要重新求值，并发登出要能立刻吊销编辑/删除入口。
func (s *Store) CanModify(b *boardmodel.Board) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || b == nil {
		return false
	}
	if s.current.IsAdmin() {
		return true
	}
	author := b.AuthorID()
	return author != "" && author == s.current.UserID
}

// Subscribe 订阅会话变更，返回取消函数
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
