package db

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var ErrDuplicateLike = errors.New("already liked")

// CreateLike inserts a like row. The (post_id, user_id) uniqueness constraint
// serializes concurrent likes for the same pair: the first writer wins and
// later writers get ErrDuplicateLike.
func CreateLike(postId, userId string) error {
	_, err := Conn.Exec("INSERT INTO likes (post_id, user_id) VALUES ($1, $2)", postId, userId)

	if err != nil {
		if IsNonUniqueErr(err) {
			return ErrDuplicateLike
		}
		return fmt.Errorf("error creating like: %v", err)
	}

	return nil
}

// DeleteLike is idempotent: deleting an absent like is not an error.
func DeleteLike(postId, userId string) error {
	_, err := Conn.Exec("DELETE FROM likes WHERE post_id = $1 AND user_id = $2", postId, userId)

	if err != nil {
		return fmt.Errorf("error deleting like: %v", err)
	}

	return nil
}

func CountLikes(postId string) (int, error) {
	var count int
	err := Conn.Get(&count, "SELECT COUNT(*) FROM likes WHERE post_id = $1", postId)

	if err != nil {
		return 0, fmt.Errorf("error counting likes: %v", err)
	}

	return count, nil
}

func CountLikesForPosts(postIds []string) (map[string]int, error) {
	if len(postIds) == 0 {
		return map[string]int{}, nil
	}

	rows, err := Conn.Query("SELECT post_id, COUNT(*) FROM likes WHERE post_id = ANY($1) GROUP BY post_id", pq.Array(postIds))
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(postIds))
	for rows.Next() {
		var postId string
		var count int
		if err := rows.Scan(&postId, &count); err != nil {
			return nil, fmt.Errorf("error scanning like counts: %v", err)
		}
		counts[postId] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error counting likes: %v", err)
	}

	return counts, nil
}
