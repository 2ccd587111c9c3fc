package handlers

import (
	"log"
	"net/http"
	"strings"

	"blog-server/db"
	"blog-server/shared"
	"blog-server/token"
	"blog-server/types"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthentication,
			Msg:  "no auth header",
		})
		return nil
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthentication,
			Msg:  "invalid auth header",
		})
		return nil
	}

	// strip off the "Bearer " prefix
	raw := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := token.Verify(raw)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthentication,
			Msg:  "invalid or expired token",
		})
		return nil
	}

	// the revocation set is durable state shared by all workers, so a token
	// blacklisted by logout on one instance fails here on every instance
	tokenHash := token.Hash(raw)
	revoked, err := db.TokenRevoked(tokenHash)
	if err != nil {
		log.Printf("error checking token revocation: %v\n", err)
		writeApiError(w, err)
		return nil
	}

	if revoked {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthentication,
			Msg:  "token has been revoked",
		})
		return nil
	}

	user, err := db.GetUser(claims.UserId)
	if err != nil {
		log.Printf("error getting user: %v\n", err)
		writeApiError(w, err)
		return nil
	}

	if user == nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthentication,
			Msg:  "token user no longer exists",
		})
		return nil
	}

	return &types.ServerAuth{
		User:           user,
		TokenHash:      tokenHash,
		TokenExpiresAt: claims.ExpiresAt,
	}
}

// fetchPost resolves the {postId} path param. An unknown or malformed id is a
// plain not-found, mirroring route-model binding.
func fetchPost(w http.ResponseWriter, r *http.Request) *db.Post {
	vars := mux.Vars(r)
	postId := vars["postId"]

	if _, err := uuid.Parse(postId); err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindNotFound,
			Msg:  "post not found",
		})
		return nil
	}

	post, err := db.GetPost(postId)
	if err != nil {
		log.Printf("error getting post: %v\n", err)
		writeApiError(w, err)
		return nil
	}

	if post == nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindNotFound,
			Msg:  "post not found",
		})
		return nil
	}

	return post
}

func fetchComment(w http.ResponseWriter, r *http.Request) *db.Comment {
	vars := mux.Vars(r)
	commentId := vars["commentId"]

	if _, err := uuid.Parse(commentId); err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindNotFound,
			Msg:  "comment not found",
		})
		return nil
	}

	comment, err := db.GetComment(commentId)
	if err != nil {
		log.Printf("error getting comment: %v\n", err)
		writeApiError(w, err)
		return nil
	}

	if comment == nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindNotFound,
			Msg:  "comment not found",
		})
		return nil
	}

	return comment
}

func authorizePostOwner(w http.ResponseWriter, post *db.Post, auth *types.ServerAuth) bool {
	if post.UserId != auth.User.Id {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthorization,
			Msg:  "only the author can modify this post",
		})
		return false
	}

	return true
}

// checkCommentPost enforces that the comment addressed by the path actually
// belongs to the post addressed by the path.
func checkCommentPost(w http.ResponseWriter, post *db.Post, comment *db.Comment) bool {
	if comment.PostId != post.Id {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "mismatched access",
		})
		return false
	}

	return true
}

func authorizeCommentOwner(w http.ResponseWriter, comment *db.Comment, auth *types.ServerAuth) bool {
	if comment.UserId != auth.User.Id {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthorization,
			Msg:  "only the author can modify this comment",
		})
		return false
	}

	return true
}
