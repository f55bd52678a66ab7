package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
	"github.com/navetta/shuttle-booking/internal/session"
	"github.com/navetta/shuttle-booking/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Svc        *service.Service
	Sessions   session.Store
	JWTSecret  string
	SessionTTL time.Duration
}

func NewAuthHandler(svc *service.Service, sessions session.Store, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Svc: svc, Sessions: sessions, JWTSecret: secret, SessionTTL: ttl}
}

// ----- DTOs -----

type registerReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type authResp struct {
	User    model.User `json:"user"`
	Token   string     `json:"token"`
	Expires time.Time  `json:"expires"`
}

// startSession issues a bearer token for the user and stores the
// session snapshot under its hash.
func (h *AuthHandler) startSession(ctx context.Context, u model.User) (authResp, error) {
	tok, err := utils.NewSessionToken(h.JWTSecret, u, h.SessionTTL)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Sessions.Put(ctx, utils.HashToken(tok.Token), u, h.SessionTTL); err != nil {
		return authResp{}, err
	}
	return authResp{User: u.Sanitized(), Token: tok.Token, Expires: tok.Exp}, nil
}

// Register creates a rider account and logs it in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Svc.Register(ctx, service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	resp, err := h.startSession(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start session failed"})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Svc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp, err := h.startSession(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start session failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented session token. Revoking a token that
// is already gone still answers 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing bearer token"})
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Sessions.Delete(ctx, utils.HashToken(raw)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's snapshot.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, actor.Sanitized())
}
