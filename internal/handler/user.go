package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/service"
)

// UserHandler handles account maintenance requests.
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// HandleUpdate applies a partial update to a user.
// PATCH /users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		FirstName   *string `json:"f_name"`
		MiddleName  *string `json:"m_name"`
		LastName    *string `json:"l_name"`
		DateOfBirth *string `json:"dob"`
		Gender      *string `json:"gender"`
		Email       *string `json:"email"`
		Password    *string `json:"password"`
		Phone       *string `json:"phonenumber"`
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

	user, err := h.auth.UpdateUser(r.Context(), id, service.UpdateUserInput{
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
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusConflict, "An account with that email already exists.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("update user", "id", id, "error", err)
			writeMessage(w, http.StatusInternalServerError, "An error occurred while updating the user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    toUserDTO(user),
	})
}

// HandleDelete removes a user.
// DELETE /users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.auth.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("delete user", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while deleting the user")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

// pathID parses the {id} path value, answering 400 when it is not an integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return id, true
}
