package main

import (
	"fmt"
	"net/http"

	"blog-server/handlers"

	"github.com/gorilla/mux"
)

func routes() *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.DrainMiddleware)
	r.Use(handlers.LoggerMiddleware)
	r.Use(handlers.RateLimitMiddleware)

	r.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowedHandler)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	r.HandleFunc("/register", handlers.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", handlers.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", handlers.LogoutHandler).Methods("POST")

	r.HandleFunc("/user", handlers.GetUserHandler).Methods("GET")
	r.HandleFunc("/user", handlers.UpdateUserHandler).Methods("PUT")
	r.HandleFunc("/user", handlers.DeleteUserHandler).Methods("DELETE")

	r.HandleFunc("/posts", handlers.ListPostsHandler).Methods("GET")
	r.HandleFunc("/posts", handlers.CreatePostHandler).Methods("POST")
	r.HandleFunc("/posts/{postId}", handlers.GetPostHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}", handlers.UpdatePostHandler).Methods("PUT")
	r.HandleFunc("/posts/{postId}", handlers.DeletePostHandler).Methods("DELETE")

	r.HandleFunc("/posts/{postId}/comments", handlers.ListCommentsHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}/comments", handlers.CreateCommentHandler).Methods("POST")
	r.HandleFunc("/posts/{postId}/comments/{commentId}", handlers.UpdateCommentHandler).Methods("PUT")
	r.HandleFunc("/posts/{postId}/comments/{commentId}", handlers.DeleteCommentHandler).Methods("DELETE")

	r.HandleFunc("/posts/{postId}/likes", handlers.CreateLikeHandler).Methods("POST")
	r.HandleFunc("/posts/{postId}/likes", handlers.DeleteLikeHandler).Methods("DELETE")
	r.HandleFunc("/posts/{postId}/likes/count", handlers.LikeCountHandler).Methods("GET")

	return r
}
