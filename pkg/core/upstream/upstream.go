package upstream

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"

	apperrors "board-front/pkg/common/errors"
)

// Client 上游 REST 边界的薄封装。所有数据都是读穿式的单次往返：
// 不缓存、不重试、不做写前缓冲，写失败不改动任何已有状态，直接报告调用方。
type Client struct {
	base string
	hc   *client.Client
}

// New 创建上游客户端
// 参数说明：
//   - baseURL: 上游 API 根地址，例如 http://localhost:8080
func New(baseURL string, dialTimeout, readTimeout time.Duration) (*Client, error) {
	hc, err := client.NewClient(
		client.WithDialTimeout(dialTimeout),
		client.WithClientReadTimeout(readTimeout),
	)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   hc,
	}, nil
}

// Call 一次上游调用的全部输入。JSONBody/FormBody/Multipart 最多填一个。
type Call struct {
	Method   string
	Path     string
	Cookie   string         // 上游会话 cookie（"NAME=VALUE" 形式），空串表示匿名请求
	JSONBody interface{}    // JSON 请求体
	FormBody url.Values     // x-www-form-urlencoded 请求体
	Files    *MultipartForm // multipart/form-data 请求体
}

// MultipartForm 显式枚举传输字段的 multipart 载荷，
// 取代原系统里动态拼 FormData 的做法
type MultipartForm struct {
	Fields map[string]string
	// 单个可选文件字段
	FileField string
	FileName  string
	FileData  []byte
}

// Result 上游响应
type Result struct {
	Status    int
	Body      []byte
	SetCookie string // 上游下发的会话 cookie（"NAME=VALUE"），没有则为空
}

// Do 发起一次上游往返。只有传输层失败才返回 error（ErrNetwork），
// 非 2xx 状态交给调用方用 errors.FromStatus 解释。
func (c *Client) Do(ctx context.Context, call Call) (*Result, error) {
	req := &protocol.Request{}
	res := &protocol.Response{}

	req.SetMethod(call.Method)
	req.SetRequestURI(c.base + call.Path)
	if call.Cookie != "" {
		req.SetHeader("Cookie", call.Cookie)
	}

	switch {
	case call.JSONBody != nil:
		data, err := sonic.Marshal(call.JSONBody)
		if err != nil {
			return nil, err
		}
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(data)
	case call.FormBody != nil:
		req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
		req.SetBody([]byte(call.FormBody.Encode()))
	case call.Files != nil:
		contentType, body, err := encodeMultipart(call.Files)
		if err != nil {
			return nil, err
		}
		req.SetHeader("Content-Type", contentType)
		req.SetBody(body)
	}

	if err := c.hc.Do(ctx, req, res); err != nil {
		return nil, apperrors.WrapNetwork(err)
	}

	out := &Result{
		Status: res.StatusCode(),
		Body:   append([]byte(nil), res.Body()...),
	}
	if sc := res.Header.Get("Set-Cookie"); sc != "" {
		out.SetCookie = cookiePair(sc)
	}
	return out, nil
}

// DecodeJSON 解码上游 JSON 响应体
func DecodeJSON(body []byte, v interface{}) error {
	return sonic.Unmarshal(body, v)
}

func encodeMultipart(form *MultipartForm) (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range form.Fields {
		if err := w.WriteField(k, v); err != nil {
			return "", nil, err
		}
	}
	if form.FileField != "" && len(form.FileData) > 0 {
		fw, err := w.CreateFormFile(form.FileField, form.FileName)
		if err != nil {
			return "", nil, err
		}
		if _, err := fw.Write(form.FileData); err != nil {
			return "", nil, err
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// cookiePair 从 Set-Cookie 头取出 NAME=VALUE 部分
func cookiePair(setCookie string) string {
	if i := strings.IndexByte(setCookie, ';'); i >= 0 {
		return setCookie[:i]
	}
	return setCookie
}
