package api

import "listingcrew/internal/content"

// User 服务端返回的用户
// User is the account object returned by the auth endpoints
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthResponse 登录/注册响应
// AuthResponse is the body of a successful login or register call
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type generateRequest struct {
	URL string `json:"url"`
}

// GenerateResponse 生成接口的响应体
// GenerateResponse is the body of a successful generate_text call
type GenerateResponse = content.Generated
