package model

// User 上游用户记录（字段名与上游 REST 接口的 JSON 保持一致）
type User struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserNickname string `json:"userNickname"`
	UserPassword string `json:"userPassword,omitempty"` // 不透明凭证，除管理台编辑面外不得展示
	UserImage    string `json:"userImage,omitempty"`    // 可选头像，base64 编码传输
	UserLevel    int    `json:"userLevel"`
}

// AdminLevel 管理员权限等级。等级 1~4 单调递增，4 即管理员。
const AdminLevel = 4

const (
	MinLevel = 1
	MaxLevel = 4
)

func (u *User) IsAdmin() bool {
	return u != nil && u.UserLevel == AdminLevel
}

// ValidLevel 管理台提交前的等级前置校验
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}
