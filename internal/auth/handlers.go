package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"eternavista/internal/api"
	"eternavista/internal/audit"
	"eternavista/internal/user"
	"eternavista/pkg/config"
	"eternavista/pkg/db"
	"eternavista/pkg/session"
)

// UserStore is what identity management needs from persistence.
// *user.Repository satisfies it.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string, role user.Role) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Handlers struct {
	Cfg   config.Config
	Users UserStore
	Audit audit.Recorder
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// decodeCredentials reads either a JSON body or a form post.
func decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if api.WantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, api.Validation("invalid json")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, api.Validation("invalid form")
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}
	req.Username = strings.TrimSpace(req.Username)
	return req, nil
}

func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		h.fail(w, r, "/register", err)
		return
	}
	if req.Username == "" {
		h.fail(w, r, "/register", api.Validation("Username is required."))
		return
	}
	if req.Password == "" {
		h.fail(w, r, "/register", api.Validation("Password is required."))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	// Self-registration always creates a customer; any role in the request
	// body is ignored. Admins exist only via the startup bootstrap or resetpw.
	if _, err := h.Users.Create(r.Context(), req.Username, string(hash), user.RoleCustomer); err != nil {
		if db.IsUniqueViolation(err) {
			h.fail(w, r, "/register", api.Conflict("User "+req.Username+" is already registered."))
			return
		}
		api.WriteError(w, err)
		return
	}

	if api.WantsJSON(r) {
		api.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
		return
	}
	api.RedirectWithFlash(w, r, "/login", "Registration successful! Please login.")
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		h.fail(w, r, "/login", err)
		return
	}
	if req.Username == "" || req.Password == "" {
		h.fail(w, r, "/login", api.Validation("Username and password required"))
		return
	}

	// One uniform message for unknown user and bad password, so login failures
	// don't reveal which usernames exist.
	u, err := h.Users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.fail(w, r, "/login", api.InvalidCredentials("Incorrect username or password."))
			return
		}
		api.WriteError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		h.fail(w, r, "/login", api.InvalidCredentials("Incorrect username or password."))
		return
	}

	tok, err := session.IssueToken(h.Cfg.Session.Secret, u.ID, h.Cfg.Session.TTL, time.Now())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	h.setSessionCookie(w, tok, h.Cfg.Session.TTL)

	redirect := "/"
	if u.Role == user.RoleAdmin {
		redirect = "/admin"
	}

	if api.WantsJSON(r) {
		api.WriteJSON(w, http.StatusOK, map[string]string{
			"message":  "Login successful",
			"redirect": redirect,
		})
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -time.Second)
	http.Redirect(w, r, "/", http.StatusFound)
}

type userListItem struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
}

func (h Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	out := make([]userListItem, 0, len(users))
	for _, u := range users {
		out = append(out, userListItem{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	api.WriteJSON(w, http.StatusOK, out)
}

func (h Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := api.IdentityFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, api.Validation("invalid user id"))
		return
	}
	if id == caller.ID {
		api.WriteError(w, api.Validation("cannot delete yourself"))
		return
	}

	deleted, err := h.Users.Delete(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if !deleted {
		api.WriteError(w, api.NotFound("user not found"))
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), caller.ID, audit.ActionDelete, audit.EntityUser, id, nil); err != nil {
			log.Printf("audit record delete user %d: %v", id, err)
		}
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// fail is the dual-format failure adapter: JSON clients get the error body,
// form clients get flashed back to the page they came from.
func (h Handlers) fail(w http.ResponseWriter, r *http.Request, page string, err error) {
	if api.WantsJSON(r) {
		api.WriteError(w, err)
		return
	}
	api.RedirectWithFlash(w, r, page, err.Error())
}

func (h Handlers) setSessionCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
