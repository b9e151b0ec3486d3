package user

import (
	"errors"
	"net/http"
	"time"

	"backend/api"
	"backend/database"
	"backend/server/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var errInvalidCredentials = errors.New("invalid email or password")

// Login a user
//
//	@Summary      Login a user
//	@Description  Authenticate with email and password. Sets the session_id cookie.
//	@Tags         accounts
//	@Accept       json
//	@Produce      plain
//	@Param        request body UserLogin true "Login credentials"
//	@Success      200  {string}  string "Login successful"
//	@Failure      400  {string}  string "Invalid email or password"
//	@Failure      401  {string}  string "Invalid email or password"
//	@Router       /api/v1/user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var data UserLogin
	if err := util.DecodeJSON(r, &data, false); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if data.Password == "" {
		http.Error(w, "Invalid email or password", http.StatusBadRequest)
		return
	}

	session, err := h.loginUser(r, data.Email, data.Password)
	if errors.Is(err, errInvalidCredentials) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.Log.Error("login", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, api.SessionCookie(r, h.CookieDomain, session.Token, session.Expiry))
	w.Header().Add("Cache-Control", `no-cache="Set-Cookie"`)

	http.SetCookie(w, &http.Cookie{
		Name:     "is_authorized",
		Value:    "true",
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Login successful"))
}

func (h *UserHandler) loginUser(r *http.Request, email string, password string) (*database.LoginSession, error) {
	DB := h.DB.WithContext(r.Context())

	user, err := database.GetUserByEmail(DB, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, errInvalidCredentials
	}

	token, err := api.GenerateToken(uuid.NewString())
	if err != nil {
		return nil, err
	}
	session, err := database.CreateLoginSession(DB, user, token, LoginTTL)
	if err != nil {
		return nil, err
	}
	h.Log.Info("user logged in", zap.String("user", user.UUID), zap.Time("expiry", session.Expiry.Round(time.Second)))
	return session, nil
}
