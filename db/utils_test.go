package db

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsNonUniqueErr(t *testing.T) {
	assert.True(t, IsNonUniqueErr(&pq.Error{Code: "23505"}))
	assert.False(t, IsNonUniqueErr(&pq.Error{Code: "23503"}))
	assert.False(t, IsNonUniqueErr(fmt.Errorf("some other error")))
	assert.False(t, IsNonUniqueErr(nil))
}

func TestUniqueConstraint(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	assert.Equal(t, "users_email_key", UniqueConstraint(err))

	assert.Equal(t, "", UniqueConstraint(&pq.Error{Code: "23503", Constraint: "posts_user_id_fkey"}))
	assert.Equal(t, "", UniqueConstraint(fmt.Errorf("some other error")))
	assert.Equal(t, "", UniqueConstraint(nil))
}
