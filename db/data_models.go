package db

import (
	"time"

	"blog-server/shared"
)

// The models below are server-side only. API-facing models live in shared and
// are produced via ToApi() so that server-only data (password hashes) never
// leaks to the client.

type User struct {
	Id           string    `db:"id"`
	Username     string    `db:"username"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:        user.Id,
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (user *User) ToAuthor() *shared.Author {
	return &shared.Author{
		Id:       user.Id,
		Username: user.Username,
		Name:     user.Name,
	}
}

type Post struct {
	Id        string    `db:"id"`
	UserId    string    `db:"user_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (post *Post) ToApi() *shared.Post {
	return &shared.Post{
		Id:        post.Id,
		UserId:    post.UserId,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

type Comment struct {
	Id        string    `db:"id"`
	PostId    string    `db:"post_id"`
	UserId    string    `db:"user_id"`
	ParentId  *string   `db:"parent_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (comment *Comment) ToApi() *shared.Comment {
	return &shared.Comment{
		Id:        comment.Id,
		PostId:    comment.PostId,
		UserId:    comment.UserId,
		ParentId:  comment.ParentId,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

type Like struct {
	Id        string    `db:"id"`
	PostId    string    `db:"post_id"`
	UserId    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type TokenRevocation struct {
	TokenHash string    `db:"token_hash"`
	UserId    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
