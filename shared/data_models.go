package shared

import "time"

type User struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author is the summary attached to posts and comments.
type Author struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Post struct {
	Id        string    `json:"id"`
	UserId    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	LikeCount int       `json:"like_count"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	Id        string     `json:"id"`
	PostId    string     `json:"post_id"`
	UserId    string     `json:"user_id"`
	ParentId  *string    `json:"parent_id"`
	Body      string     `json:"body"`
	Author    *Author    `json:"author,omitempty"`
	Replies   []*Comment `json:"replies,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type PostPage struct {
	Items []*Post `json:"items"`
	PageMeta
}

type CommentPage struct {
	Items []*Comment `json:"items"`
	PageMeta
}
