package authz

import (
	"board-front/pkg/core/board/model"
)

// 授权闸门：路由级和动作级的权限谓词集中在这里，
// 各视图不得自行比较等级数字。

// Requirement 路由准入要求
type Requirement int

const (
	Public        Requirement = iota // 无要求
	Authenticated                    // 需登录
	Admin                            // 需管理员
)

// RouteClass 前端路由类
type RouteClass string

const (
	RouteListing     RouteClass = "listing"      // 公开列表
	RouteDetail      RouteClass = "detail"       // 公开详情
	RouteCompose     RouteClass = "compose"      // 写帖
	RouteMyPosts     RouteClass = "my-posts"     // 我的帖子
	RouteProfileEdit RouteClass = "profile-edit" // 资料编辑
	RouteUserConsole RouteClass = "user-console" // 用户管理台
)

// routeTable 路由类 -> 准入要求 的静态表
var routeTable = map[RouteClass]Requirement{
	RouteListing:     Public,
	RouteDetail:      Public,
	RouteCompose:     Authenticated,
	RouteMyPosts:     Authenticated,
	RouteProfileEdit: Authenticated,
	RouteUserConsole: Admin,
}

// Session 闸门消费的会话能力切面（session.Store 满足）
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
	CanModify(b *model.Board) bool
}

// Allows 路由级检查。未登记的路由类一律拒绝
func Allows(s Session, r RouteClass) bool {
	req, ok := routeTable[r]
	if !ok {
		return false
	}
	switch req {
	case Public:
		return true
	case Authenticated:
		return s.IsAuthenticated()
	case Admin:
		return s.IsAdmin()
	default:
		return false
	}
}

// NavigableRoutes 当前会话能看见的路由集合。
// 检查失败的路由不出现在集合里，而不是渲染后再拦
func NavigableRoutes(s Session) []RouteClass {
	all := []RouteClass{
		RouteListing, RouteDetail, RouteCompose,
		RouteMyPosts, RouteProfileEdit, RouteUserConsole,
	}
	var out []RouteClass
	for _, r := range all {
		if Allows(s, r) {
			out = append(out, r)
		}
	}
	return out
}

// CanModify 动作级检查：某帖的编辑/删除入口是否出现。
// 检查失败只隐藏对应控件，视图本身照常渲染
func CanModify(s Session, b *model.Board) bool {
	return s.CanModify(b)
}
