package category

// 板块分类模型：全站唯一的分类映射。
// 历史上前端各页面自带一份数字映射，且互相矛盾（公告在不同页面分别映射为 4 和 2），
// 统一后所有生产者/消费者必须经过本包换算，未知输入一律映射为 Unknown，不允许崩溃。

// Code 分类的存储编码（与上游数据库列一致）
type Code int

const (
	All       Code = 1 // 伪分类，仅用于列表范围
	Free      Code = 2
	Questions Code = 3
	Notice    Code = 4
)

const unknownName = "Unknown"

// codeToToken 编码 -> URL 路径 token
var codeToToken = map[Code]string{
	All:       "all",
	Free:      "free",
	Questions: "questions",
	Notice:    "notice",
}

// tokenToCode URL token -> 编码
var tokenToCode = map[string]Code{
	"all":       All,
	"free":      Free,
	"questions": Questions,
	"notice":    Notice,
}

var codeToName = map[Code]string{
	All:       "All",
	Free:      "Free",
	Questions: "Questions",
	Notice:    "Notice",
}

// DisplayName 编码 -> 展示名称，未知编码返回 Unknown
func DisplayName(c Code) string {
	if name, ok := codeToName[c]; ok {
		return name
	}
	return unknownName
}

// FromToken URL token -> 编码。未知 token 回落到 All（与上游控制器的默认分支一致）
func FromToken(token string) Code {
	if c, ok := tokenToCode[token]; ok {
		return c
	}
	return All
}

// Token 编码 -> URL token，未知编码回落到 all
func Token(c Code) string {
	if t, ok := codeToToken[c]; ok {
		return t
	}
	return codeToToken[All]
}

// Valid 判断编码是否在闭集内
func Valid(c Code) bool {
	_, ok := codeToName[c]
	return ok
}
