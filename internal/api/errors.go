package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse 2xx 响应体不可用（无法解析或缺少 token）
// ErrMalformedResponse marks a 2xx body that could not be used
var ErrMalformedResponse = errors.New("malformed response")

// StatusError 非 2xx 响应；Detail 取自响应体的 detail 字段
// StatusError is a non-2xx response; Detail comes from the body's detail field when present
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed: status=%d detail=%s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request failed: status=%d", e.StatusCode)
}

// DetailOf 取出 StatusError 的 detail
// DetailOf returns the server detail of a StatusError anywhere in err's chain
func DetailOf(err error) (string, bool) {
	var se *StatusError
	if !errors.As(err, &se) {
		return "", false
	}
	return se.Detail, se.Detail != ""
}

// parseDetail 兼容 {"detail": "..."} 与校验错误 {"detail": [{"msg": "..."}]}
// parseDetail accepts both a string detail and a list of validation errors
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
