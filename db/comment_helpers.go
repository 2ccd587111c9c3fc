package db

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// ListTopLevelComments returns one page of a post's top-level comments
// (parent_id IS NULL) ordered by creation time ascending, plus the total
// top-level count. Replies are fetched separately and are not paginated.
func ListTopLevelComments(postId string, page, perPage int) ([]*Comment, int, error) {
	var total int
	err := Conn.Get(&total, "SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_id IS NULL", postId)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting comments: %v", err)
	}

	var comments []*Comment
	err = Conn.Select(&comments,
		"SELECT * FROM comments WHERE post_id = $1 AND parent_id IS NULL ORDER BY created_at ASC LIMIT $2 OFFSET $3",
		postId, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing comments: %v", err)
	}

	return comments, total, nil
}

func GetRepliesForComments(commentIds []string) ([]*Comment, error) {
	if len(commentIds) == 0 {
		return nil, nil
	}

	var replies []*Comment
	err := Conn.Select(&replies,
		"SELECT * FROM comments WHERE parent_id = ANY($1) ORDER BY created_at ASC",
		pq.Array(commentIds))
	if err != nil {
		return nil, fmt.Errorf("error listing replies: %v", err)
	}

	return replies, nil
}

func GetComment(commentId string) (*Comment, error) {
	var comment Comment
	err := Conn.Get(&comment, "SELECT * FROM comments WHERE id = $1", commentId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting comment: %v", err)
	}

	return &comment, nil
}

func CreateComment(comment *Comment) error {
	err := Conn.QueryRow(
		"INSERT INTO comments (post_id, user_id, parent_id, body) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at",
		comment.PostId, comment.UserId, comment.ParentId, comment.Body,
	).Scan(&comment.Id, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating comment: %v", err)
	}

	return nil
}

// UpdateCommentBody replaces the body in full.
func UpdateCommentBody(comment *Comment) error {
	err := Conn.QueryRow(
		"UPDATE comments SET body = $2, updated_at = now() WHERE id = $1 RETURNING updated_at",
		comment.Id, comment.Body,
	).Scan(&comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error updating comment: %v", err)
	}

	return nil
}

// DeleteComment removes the comment. Descendant replies go with it
// transitively via the self-referencing cascade.
func DeleteComment(commentId string) error {
	_, err := Conn.Exec("DELETE FROM comments WHERE id = $1", commentId)

	if err != nil {
		return fmt.Errorf("error deleting comment: %v", err)
	}

	return nil
}
