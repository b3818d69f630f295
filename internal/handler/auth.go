package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /register
// Request:  {"id":1,"f_name":"...","email":"...","password":"...",...}
// Response: 201 {"message":"... created successfully","user":{...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64   `json:"id"`
		FirstName   string  `json:"f_name"`
		MiddleName  string  `json:"m_name"`
		LastName    string  `json:"l_name"`
		DateOfBirth *string `json:"dob"`
		Gender      string  `json:"gender"`
		Email       string  `json:"email"`
		Password    string  `json:"password"`
		Phone       string  `json:"phonenumber"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		ID:          req.ID,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusConflict, "An account with that email already exists.")
		case errors.Is(err, domain.ErrDuplicateID):
			writeMessage(w, http.StatusConflict, "An account with that id already exists.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("register user", "error", err)
			writeMessage(w, http.StatusInternalServerError, "An error occurred while creating the user.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("%s created successfully", user.Email),
		"user":    toUserDTO(user),
	})
}

// HandleLogin verifies credentials and returns a bearer token.
// POST /login
// Request:  {"email":"...","password":"..."}
// Response: {"message":"Login successful","token":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, _, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("login user", "error", err)
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}
