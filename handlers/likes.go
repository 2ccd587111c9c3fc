package handlers

import (
	"log"
	"net/http"

	"blog-server/db"
	"blog-server/shared"
)

// CreateLikeHandler relies on the storage-level (post, user) uniqueness
// constraint rather than a check-then-insert, so concurrent likes can't race
// into duplicates.
func CreateLikeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateLikeHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	err := db.CreateLike(post.Id, auth.User.Id)
	if err != nil {
		if err == db.ErrDuplicateLike {
			writeApiError(w, &shared.ApiError{
				Kind: shared.ApiErrorKindConflict,
				Msg:  "already liked",
			})
			return
		}
		log.Printf("Error creating like: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully created like")

	writeSuccess(w, http.StatusOK, nil, "liked")
}

// DeleteLikeHandler is idempotent: unliking a post the user never liked
// succeeds with no row change.
func DeleteLikeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteLikeHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	err := db.DeleteLike(post.Id, auth.User.Id)
	if err != nil {
		log.Printf("Error deleting like: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully deleted like")

	writeSuccess(w, http.StatusOK, nil, "like removed")
}

func LikeCountHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LikeCountHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	count, err := db.CountLikes(post.Id)
	if err != nil {
		log.Printf("Error counting likes: %v\n", err)
		writeApiError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shared.LikeCountResponse{
		PostId:     post.Id,
		LikesCount: count,
	}, "")
}
