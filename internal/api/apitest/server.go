// Package apitest runs a scripted ListingCrew backend for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
)

const (
	PathLogin    = "/api/login"
	PathRegister = "/api/register"
	PathLogout   = "/api/logout"
	PathGenerate = "/api/v1/generate_text"
)

// Reply 一个端点的脚本化响应
// Reply scripts one endpoint's response
type Reply struct {
	Status int
	Body   any
	// Drop 关闭连接，模拟传输层失败
	// Drop closes the connection without a response
	Drop bool
	// Wait 非 nil 时，处理器阻塞到它关闭或请求被取消
	// Wait blocks the handler until closed or the request is cancelled
	Wait <-chan struct{}
}

// OK returns a 200 reply with a JSON body.
func OK(body any) Reply { return Reply{Status: http.StatusOK, Body: body} }

// Fail returns a non-2xx reply; a non-empty detail is sent as {"detail": ...}.
func Fail(status int, detail string) Reply {
	r := Reply{Status: status}
	if detail != "" {
		r.Body = map[string]string{"detail": detail}
	}
	return r
}

// Dropped returns a reply that fails at the transport level.
func Dropped() Reply { return Reply{Drop: true} }

// Call 记录的一次请求
// Call is one recorded request
type Call struct {
	Path          string
	Authorization string
	Body          map[string]any
}

// Server 带路由的假后端
// Server is a fake backend routed with gorilla/mux
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	replies map[string]Reply
	calls   []Call
}

// New 启动服务器；未设置的端点返回 500
// New starts the server; unscripted endpoints answer 500
func New() *Server {
	s := &Server{replies: make(map[string]Reply)}

	r := mux.NewRouter()
	for _, path := range []string{PathLogin, PathRegister, PathLogout, PathGenerate} {
		r.HandleFunc(path, s.handle(path)).Methods(http.MethodPost)
	}
	s.Server = httptest.NewServer(r)
	return s
}

// Script 设置端点响应
// Script sets the reply for path
func (s *Server) Script(path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = reply
}

// Calls 返回某端点的请求记录
// Calls returns the recorded requests for path
func (s *Server) Calls(path string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many requests hit path.
func (s *Server) Count(path string) int {
	return len(s.Calls(path))
}

// Total returns the number of requests across all endpoints.
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *Server) handle(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		call := Call{Path: path, Authorization: r.Header.Get("Authorization")}
		if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &call.Body)
		}

		s.mu.Lock()
		s.calls = append(s.calls, call)
		reply, ok := s.replies[path]
		s.mu.Unlock()

		if !ok {
			reply = Fail(http.StatusInternalServerError, "")
		}
		if reply.Wait != nil {
			select {
			case <-reply.Wait:
			case <-r.Context().Done():
				return
			}
		}
		if reply.Drop {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
					return
				}
			}
			panic(http.ErrAbortHandler)
		}

		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		if reply.Body == nil {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply.Body)
	}
}
