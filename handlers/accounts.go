package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"blog-server/db"
	"blog-server/email"
	"blog-server/shared"
	"blog-server/token"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RegisterHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		writeApiError(w, err)
		return
	}

	var req shared.RegisterRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	v.Check("username", req.Username, shared.RequiredRule{}, shared.UsernameRule{})
	v.Check("name", req.Name, shared.RequiredRule{}, shared.MaxLenRule{Max: 100})
	v.Check("email", req.Email, shared.RequiredRule{}, shared.EmailRule{}, shared.MaxLenRule{Max: 255})
	v.Check("password", req.Password, shared.RequiredRule{}, shared.MinLenRule{Min: 8})
	if req.Password != req.PasswordConfirmation {
		v.AddError("password", "password confirmation does not match")
	}
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	// the password is stored only as a salted one-way hash
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v\n", err)
		writeApiError(w, err)
		return
	}

	user := &db.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = db.WithTx(r.Context(), "create user", func(tx *sqlx.Tx) error {
		return db.CreateUser(user, tx)
	})

	if err != nil {
		// uniqueness violations surface as input-validation failures
		switch err {
		case db.ErrUsernameTaken:
			writeApiError(w, &shared.ApiError{
				Kind:   shared.ApiErrorKindValidation,
				Msg:    "invalid input",
				Fields: map[string][]string{"username": {"username already exists"}},
			})
		case db.ErrEmailTaken:
			writeApiError(w, &shared.ApiError{
				Kind:   shared.ApiErrorKindValidation,
				Msg:    "invalid input",
				Fields: map[string][]string{"email": {"email already exists"}},
			})
		default:
			log.Printf("Error creating user: %v\n", err)
			writeApiError(w, err)
		}
		return
	}

	// issue a token right away so the client doesn't need a second login
	// round trip
	accessToken, err := token.Sign(user.Id)
	if err != nil {
		log.Printf("Error signing token: %v\n", err)
		writeApiError(w, err)
		return
	}

	go func() {
		if err := email.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("Error sending welcome email: %v\n", err)
		}
	}()

	log.Println("Successfully registered user")

	writeSuccess(w, http.StatusCreated, shared.AuthResponse{
		User:        user.ToApi(),
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(token.Expiration().Seconds()),
	}, "registration complete")
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LoginHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		writeApiError(w, err)
		return
	}

	var req shared.LoginRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindBadRequest,
			Msg:  "invalid request body",
		})
		return
	}

	var v shared.Validator
	v.Check("username", req.Username, shared.RequiredRule{})
	v.Check("password", req.Password, shared.RequiredRule{})
	if err := v.Err(); err != nil {
		writeApiError(w, err)
		return
	}

	user, err := db.GetUserByUsername(req.Username)
	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		writeApiError(w, err)
		return
	}

	// a single generic failure for unknown username and wrong password, so
	// responses don't reveal which usernames exist
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeApiError(w, &shared.ApiError{
			Kind: shared.ApiErrorKindAuthentication,
			Msg:  "invalid username or password",
		})
		return
	}

	accessToken, err := token.Sign(user.Id)
	if err != nil {
		log.Printf("Error signing token: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully logged in user")

	writeSuccess(w, http.StatusOK, shared.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(token.Expiration().Seconds()),
	}, "login complete")
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LogoutHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	// the token can never authenticate again, even before natural expiry
	err := db.RevokeToken(auth.TokenHash, auth.User.Id, auth.TokenExpiresAt)
	if err != nil {
		log.Printf("Error revoking token: %v\n", err)
		writeApiError(w, err)
		return
	}

	log.Println("Successfully logged out user")

	writeSuccess(w, http.StatusOK, nil, "logged out")
}
