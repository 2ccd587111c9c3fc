package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var ErrUsernameTaken = errors.New("username already exists")
var ErrEmailTaken = errors.New("email already exists")

func GetUser(userId string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE id = $1", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func GetUserByUsername(username string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE username = $1", username)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user by username: %v", err)
	}

	return &user, nil
}

func GetUsersByIds(userIds []string) (map[string]*User, error) {
	var users []*User
	err := Conn.Select(&users, "SELECT * FROM users WHERE id = ANY($1)", pq.Array(userIds))

	if err != nil {
		return nil, fmt.Errorf("error getting users: %v", err)
	}

	byId := make(map[string]*User, len(users))
	for _, user := range users {
		byId[user.Id] = user
	}

	return byId, nil
}

func CreateUser(user *User, tx *sqlx.Tx) error {
	err := tx.QueryRow(
		"INSERT INTO users (username, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at",
		user.Username, user.Name, user.Email, user.PasswordHash,
	).Scan(&user.Id, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		switch UniqueConstraint(err) {
		case "users_username_key":
			return ErrUsernameTaken
		case "users_email_key":
			return ErrEmailTaken
		}
		return fmt.Errorf("error creating user: %v", err)
	}

	return nil
}

func UpdateUser(user *User) error {
	err := Conn.QueryRow(
		"UPDATE users SET name = $2, email = $3, password_hash = $4, updated_at = now() WHERE id = $1 RETURNING updated_at",
		user.Id, user.Name, user.Email, user.PasswordHash,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if UniqueConstraint(err) == "users_email_key" {
			return ErrEmailTaken
		}
		return fmt.Errorf("error updating user: %v", err)
	}

	return nil
}

// DeleteUser removes the account. Owned posts, comments, likes and token
// revocations go with it via storage-level cascade.
func DeleteUser(userId string) error {
	_, err := Conn.Exec("DELETE FROM users WHERE id = $1", userId)

	if err != nil {
		return fmt.Errorf("error deleting user: %v", err)
	}

	return nil
}
