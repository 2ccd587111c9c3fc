package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"blog-server/db"
	"blog-server/shared"
)

func ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListPostsHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	page, perPage := parsePagination(r)
	params := db.ListPostsParams{
		Title:   r.URL.Query().Get("title"),
		Page:    page,
		PerPage: perPage,
	}

	var v shared.Validator
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			v.AddError("from", "must be a date in YYYY-MM-DD format")
		} else {
			params.From = &from
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			v.AddError("to", "must be a date in YYYY-MM-DD format")
		} else {
			params.To = &to
		}
	}
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	posts, total, err := db.ListPosts(params)
	if err != nil {
		log.Printf("Error listing posts: %v\n", err)
		writeApiError(w, err)
		return
	}

	apiPosts, err := decoratePosts(posts)
	if err != nil {
		log.Printf("Error decorating posts: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully processed request for ListPostsHandler")

	writeSuccess(w, http.StatusOK, shared.PostPage{
		Items:    apiPosts,
		PageMeta: pageMeta(page, perPage, total),
	}, "")
}

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		writeApiError(w, err)
		return
	}

	var req shared.CreatePostRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	v.Check("title", req.Title, shared.RequiredRule{}, shared.MaxLenRule{Max: 255})
	v.Check("body", req.Body, shared.RequiredRule{})
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	post := &db.Post{
		UserId: auth.User.Id,
		Title:  req.Title,
		Body:   req.Body,
	}

	err = db.CreatePost(post)
	if err != nil {
		log.Printf("Error creating post: %v\n", err)
		writeApiError(w, err)
		return
	}

	apiPost := post.ToApi()
	apiPost.Author = auth.User.ToAuthor()

	log.Println("Successfully created post")

	writeSuccess(w, http.StatusCreated, apiPost, "post created")
}

func GetPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetPostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	apiPost := post.ToApi()

	likeCount, err := db.CountLikes(post.Id)
	if err != nil {
		log.Printf("Error counting likes: %v\n", err)
		writeApiError(w, err)
		return
	}
	apiPost.LikeCount = likeCount

	author, err := db.GetUser(post.UserId)
	if err != nil {
		log.Printf("Error getting author: %v\n", err)
		writeApiError(w, err)
		return
	}
	if author != nil {
		apiPost.Author = author.ToAuthor()
	}

	writeSuccess(w, http.StatusOK, apiPost, "")
}

// UpdatePostHandler applies partial updates: only supplied fields change.
// Only the author may update.
func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdatePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	if !authorizePostOwner(w, post, auth) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		writeApiError(w, err)
		return
	}

	var req shared.UpdatePostRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	if req.Title != nil {
		v.Check("title", *req.Title, shared.RequiredRule{}, shared.MaxLenRule{Max: 255})
	}
	if req.Body != nil {
		v.Check("body", *req.Body, shared.RequiredRule{})
	}
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}

	err = db.UpdatePost(post)
	if err != nil {
		log.Printf("Error updating post: %v\n", err)
		writeApiError(w, err)
		return
	}

	apiPost := post.ToApi()
	apiPost.Author = auth.User.ToAuthor()

	log.Println("Successfully updated post")

	writeSuccess(w, http.StatusOK, apiPost, "post updated")
}

func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeletePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	post := fetchPost(w, r)
	if post == nil {
		return
	}

	if !authorizePostOwner(w, post, auth) {
		return
	}

	err := db.DeletePost(post.Id)
	if err != nil {
		log.Printf("Error deleting post: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully deleted post")

	writeSuccess(w, http.StatusOK, nil, "post deleted")
}

// decoratePosts attaches author summaries and like counts to a page of posts.
func decoratePosts(posts []*db.Post) ([]*shared.Post, error) {
	postIds := make([]string, len(posts))
	userIds := make([]string, len(posts))
	for i, post := range posts {
		postIds[i] = post.Id
		userIds[i] = post.UserId
	}

	authors, err := db.GetUsersByIds(userIds)
	if err != nil {
		return nil, err
	}

	likeCounts, err := db.CountLikesForPosts(postIds)
	if err != nil {
		return nil, err
	}

	apiPosts := make([]*shared.Post, len(posts))
	for i, post := range posts {
		apiPost := post.ToApi()
		apiPost.LikeCount = likeCounts[post.Id]
		if author, ok := authors[post.UserId]; ok {
			apiPost.Author = author.ToAuthor()
		}
		apiPosts[i] = apiPost
	}

	return apiPosts, nil
}
