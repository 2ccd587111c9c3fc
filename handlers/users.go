package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"blog-server/db"
	"blog-server/shared"

	"golang.org/x/crypto/bcrypt"
)

func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetUserHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	writeSuccess(w, http.StatusOK, auth.User.ToApi(), "")
}

// UpdateUserHandler applies partial updates: only fields present in the
// request change.
func UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateUserHandler")
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

	var req shared.UpdateUserRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	if req.Name != nil {
		v.Check("name", *req.Name, shared.RequiredRule{}, shared.MaxLenRule{Max: 100})
	}
	if req.Email != nil {
		v.Check("email", *req.Email, shared.RequiredRule{}, shared.EmailRule{}, shared.MaxLenRule{Max: 255})
	}
	if req.Password != nil {
		v.Check("password", *req.Password, shared.MinLenRule{Min: 8})
	}
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	user := auth.User
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password: %v\n", err)
			writeApiError(w, err)
			return
		}
		user.PasswordHash = string(hash)
	}

	err = db.UpdateUser(user)
	if err != nil {
		if err == db.ErrEmailTaken {
			writeApiError(w, &shared.ApiError{
				Kind:   shared.ApiErrorKindValidation,
				Msg:    "invalid input",
				Fields: map[string][]string{"email": {"email already exists"}},
			})
			return
		}
		log.Printf("Error updating user: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully updated user")

	writeSuccess(w, http.StatusOK, user.ToApi(), "profile updated")
}

// DeleteUserHandler removes the account; owned posts, comments and likes are
// cascaded away by storage.
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteUserHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	err := db.DeleteUser(auth.User.Id)
	if err != nil {
		log.Printf("Error deleting user: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully deleted user")

	writeSuccess(w, http.StatusOK, nil, "account deleted")
}
