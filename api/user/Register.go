package user

import (
	"errors"
	"net/http"
	"net/mail"

	"backend/database"
	"backend/server/util"

	"go.uber.org/zap"
)

type UserRegister struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register a user
//
//	@Summary      Register a user
//	@Tags         accounts
//	@Accept       json
//	@Produce      plain
//	@Param        request body UserRegister true "Account"
//	@Success      201  {string}  string	"User created"
//	@Failure      400  {string}  string	"Invalid email"
//	@Failure      400  {string}  string	"Email already in use"
//	@Failure      400  {string}  string	"Password too short"
//	@Failure      500  {string}  string	"Internal server error"
//	@Router       /api/v1/user/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var data UserRegister
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if _, err := mail.ParseAddress(data.Email); err != nil {
		http.Error(w, "Invalid email", http.StatusBadRequest)
		return
	}

	DB := h.DB.WithContext(r.Context())
	if _, err := database.GetUserByEmail(DB, data.Email); err == nil {
		http.Error(w, "Email already in use", http.StatusBadRequest)
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.Log.Error("lookup user", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(data.Password) < 8 {
		http.Error(w, "Password too short", http.StatusBadRequest)
		return
	}

	if _, err := database.RegisterUser(DB, data.Name, data.Email, []byte(data.Password)); err != nil {
		h.Log.Error("register user", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("User created"))
}
