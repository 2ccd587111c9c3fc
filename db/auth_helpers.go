package db

import (
	"fmt"
	"time"
)

// RevokeToken adds a token hash to the durable revocation set. The set lives
// in postgres so every worker and instance sees it (per-process memory would
// let a revoked token keep authenticating elsewhere). Revoking an already
// revoked token is a no-op.
func RevokeToken(tokenHash, userId string, expiresAt time.Time) error {
	_, err := Conn.Exec(
		"INSERT INTO token_revocations (token_hash, user_id, expires_at) VALUES ($1, $2, $3) ON CONFLICT (token_hash) DO NOTHING",
		tokenHash, userId, expiresAt)

	if err != nil {
		return fmt.Errorf("error revoking token: %v", err)
	}

	return nil
}

// TokenRevoked is consulted on every authenticated request.
func TokenRevoked(tokenHash string) (bool, error) {
	var revoked bool
	err := Conn.Get(&revoked, "SELECT EXISTS (SELECT 1 FROM token_revocations WHERE token_hash = $1)", tokenHash)

	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %v", err)
	}

	return revoked, nil
}

// DeleteExpiredRevocations prunes rows whose tokens have passed natural
// expiry and can no longer authenticate anyway.
func DeleteExpiredRevocations() (int64, error) {
	res, err := Conn.Exec("DELETE FROM token_revocations WHERE expires_at < now()")
	if err != nil {
		return 0, fmt.Errorf("error pruning token revocations: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error pruning token revocations: %v", err)
	}

	return n, nil
}
