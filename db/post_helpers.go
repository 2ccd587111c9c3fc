package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

type ListPostsParams struct {
	Title   string
	From    *time.Time
	To      *time.Time
	Page    int
	PerPage int
}

// ListPosts returns one page of posts ordered by creation time descending,
// plus the total row count for the filter. Title is a case-insensitive
// substring match; From/To are inclusive bounds on the creation date.
func ListPosts(params ListPostsParams) ([]*Post, int, error) {
	where := "TRUE"
	var args []any

	if params.Title != "" {
		args = append(args, params.Title)
		where += " AND title ILIKE '%' || $" + strconv.Itoa(len(args)) + " || '%'"
	}
	if params.From != nil {
		args = append(args, *params.From)
		where += " AND created_at::date >= $" + strconv.Itoa(len(args)) + "::date"
	}
	if params.To != nil {
		args = append(args, *params.To)
		where += " AND created_at::date <= $" + strconv.Itoa(len(args)) + "::date"
	}

	var total int
	err := Conn.Get(&total, "SELECT COUNT(*) FROM posts WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %v", err)
	}

	args = append(args, params.PerPage)
	limitArg := strconv.Itoa(len(args))
	args = append(args, (params.Page-1)*params.PerPage)
	offsetArg := strconv.Itoa(len(args))

	var posts []*Post
	err = Conn.Select(&posts,
		"SELECT * FROM posts WHERE "+where+" ORDER BY created_at DESC LIMIT $"+limitArg+" OFFSET $"+offsetArg,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %v", err)
	}

	return posts, total, nil
}

func GetPost(postId string) (*Post, error) {
	var post Post
	err := Conn.Get(&post, "SELECT * FROM posts WHERE id = $1", postId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

func CreatePost(post *Post) error {
	err := Conn.QueryRow(
		"INSERT INTO posts (user_id, title, body) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at",
		post.UserId, post.Title, post.Body,
	).Scan(&post.Id, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating post: %v", err)
	}

	return nil
}

func UpdatePost(post *Post) error {
	err := Conn.QueryRow(
		"UPDATE posts SET title = $2, body = $3, updated_at = now() WHERE id = $1 RETURNING updated_at",
		post.Id, post.Title, post.Body,
	).Scan(&post.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error updating post: %v", err)
	}

	return nil
}

// DeletePost removes the post. Its comments (with their reply subtrees) and
// likes go with it via storage-level cascade.
func DeletePost(postId string) error {
	_, err := Conn.Exec("DELETE FROM posts WHERE id = $1", postId)

	if err != nil {
		return fmt.Errorf("error deleting post: %v", err)
	}

	return nil
}
