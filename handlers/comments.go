package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"blog-server/db"
	"blog-server/shared"

	"github.com/google/uuid"
)

// ListCommentsHandler returns one page of a post's top-level comments in
// ascending creation order, each carrying its author and its direct replies.
// Pagination applies to top-level comments only.
func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListCommentsHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	page, perPage := parsePagination(r)

	comments, total, err := db.ListTopLevelComments(post.Id, page, perPage)
	if err != nil {
		log.Printf("Error listing comments: %v\n", err)
		writeApiError(w, err)
		return
	}

	commentIds := make([]string, len(comments))
	for i, comment := range comments {
		commentIds[i] = comment.Id
	}

	replies, err := db.GetRepliesForComments(commentIds)
	if err != nil {
		log.Printf("Error listing replies: %v\n", err)
		writeApiError(w, err)
		return
	}

	var userIds []string
	for _, comment := range comments {
		userIds = append(userIds, comment.UserId)
	}
	for _, reply := range replies {
		userIds = append(userIds, reply.UserId)
	}

	authors, err := db.GetUsersByIds(userIds)
	if err != nil {
		log.Printf("Error getting comment authors: %v\n", err)
		writeApiError(w, err)
		return
	}

	toApi := func(comment *db.Comment) *shared.Comment {
		apiComment := comment.ToApi()
		if author, ok := authors[comment.UserId]; ok {
			apiComment.Author = author.ToAuthor()
		}
		return apiComment
	}

	byId := make(map[string]*shared.Comment, len(comments))
	apiComments := make([]*shared.Comment, len(comments))
	for i, comment := range comments {
		apiComments[i] = toApi(comment)
		byId[comment.Id] = apiComments[i]
	}

	for _, reply := range replies {
		if parent, ok := byId[*reply.ParentId]; ok {
			parent.Replies = append(parent.Replies, toApi(reply))
		}
	}

	log.Println("Successfully processed request for ListCommentsHandler")

	writeSuccess(w, http.StatusOK, shared.CommentPage{
		Items:    apiComments,
		PageMeta: pageMeta(page, perPage, total),
	}, "")
}

func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateCommentHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		writeApiError(w, err)
		return
	}

	var req shared.CreateCommentRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	v.Check("body", req.Body, shared.RequiredRule{})
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	// a reply's parent must exist and belong to the same post; there is no
	// depth limit on the parent link
	if req.ParentId != nil {
		invalidTarget := &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid reply target",
		}

		if _, err := uuid.Parse(*req.ParentId); err != nil {
			writeApiError(w, invalidTarget)
			return
		}

		parent, err := db.GetComment(*req.ParentId)
		if err != nil {
			log.Printf("Error getting parent comment: %v\n", err)
			writeApiError(w, err)
			return
		}

		if parent == nil || parent.PostId != post.Id {
			writeApiError(w, invalidTarget)
			return
		}
	}

	comment := &db.Comment{
		PostId:   post.Id,
		UserId:   auth.User.Id,
		ParentId: req.ParentId,
		Body:     req.Body,
	}

	err = db.CreateComment(comment)
	if err != nil {
		log.Printf("Error creating comment: %v\n", err)
		writeApiError(w, err)
		return
	}

	apiComment := comment.ToApi()
	apiComment.Author = auth.User.ToAuthor()

	log.Println("Successfully created comment")

	writeSuccess(w, http.StatusCreated, apiComment, "comment created")
}

// UpdateCommentHandler replaces the body in full. The comment must belong to
// the addressed post and the current user must be its author.
func UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateCommentHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	comment := fetchComment(w, r)
	if comment == nil {
		return
	}

	if !checkCommentPost(w, post, comment) {
		return
	}

	if !authorizeCommentOwner(w, comment, auth) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		writeApiError(w, err)
		return
	}

	var req shared.UpdateCommentRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	v.Check("body", req.Body, shared.RequiredRule{})
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	comment.Body = req.Body

	err = db.UpdateCommentBody(comment)
	if err != nil {
		log.Printf("Error updating comment: %v\n", err)
		writeApiError(w, err)
		return
	}

	apiComment := comment.ToApi()
	apiComment.Author = auth.User.ToAuthor()

	log.Println("Successfully updated comment")

	writeSuccess(w, http.StatusOK, apiComment, "comment updated")
}

func DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteCommentHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	comment := fetchComment(w, r)
	if comment == nil {
		return
	}

	if !checkCommentPost(w, post, comment) {
		return
	}

	if !authorizeCommentOwner(w, comment, auth) {
		return
	}

	err := db.DeleteComment(comment.Id)
	if err != nil {
		log.Printf("Error deleting comment: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully deleted comment")

	writeSuccess(w, http.StatusOK, nil, "comment deleted")
}
