package types

import (
	"time"

	"blog-server/db"
)

// ServerAuth is the authenticated identity attached to a request after the
// bearer token has been verified. TokenHash/TokenExpiresAt identify the
// presented token so logout can add it to the revocation set.
type ServerAuth struct {
	User           *db.User
	TokenHash      string
	TokenExpiresAt time.Time
}
