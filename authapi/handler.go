package authapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/authctx"
	"github.com/kbukum/authgate/auth/cookie"
	apperrors "github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/server"
	"github.com/kbukum/authgate/validation"
)

// Handler serves the auth routes.
type Handler struct {
	svc     *auth.Service
	cookies *cookie.Transport
	cfg     Config
	log     *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(cfg Config, svc *auth.Service, cookies *cookie.Transport, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	return &Handler{
		svc:     svc,
		cookies: cookies,
		cfg:     cfg,
		log:     log.WithComponent("authapi"),
	}
}

// RegisterRoutes mounts the auth routes on r. limit guards the credential
// endpoints; pass nothing to leave them unlimited.
func (h *Handler) RegisterRoutes(r gin.IRouter, limit ...gin.HandlerFunc) {
	g := r.Group(h.cfg.BasePath())

	creds := g.Group("", limit...)
	creds.POST("/register", h.Register)
	creds.POST("/login", h.Login)

	session := g.Group("", PayloadMiddleware(h.svc, h.cookies))
	session.DELETE("/logout", h.Logout)
	session.GET("/private_route", h.PrivateRoute)
}

// Register creates a user from form input and answers 202 with the public record.
func (h *Handler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.WithContext(c.Request.Context()).Debug("register bind failed", logger.ErrorFields("bind", err))
		server.RespondWithError(c, apperrors.Validation("invalid form body"))
		return
	}
	if err := validation.Validate(&form); err != nil {
		server.RespondWithError(c, err)
		return
	}

	pub, err := h.svc.Register(c.Request.Context(), auth.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondAccepted(c, pub)
}

// Login checks credentials and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.log.WithContext(c.Request.Context()).Debug("login bind failed", logger.ErrorFields("bind", err))
		server.RespondWithError(c, apperrors.Validation("invalid JSON body"))
		return
	}
	if err := validation.Validate(&body); err != nil {
		server.RespondWithError(c, err)
		return
	}

	session, err := h.svc.Login(c.Request.Context(), auth.Credentials{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.cookies.Set(c.Writer, session.Token, session.Claims)
	server.RespondOK(c, session.User)
}

// Logout always succeeds and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context(), authctx.Payload(c.Request.Context()))
	h.cookies.Clear(c.Writer)
	server.RespondOK(c, LogoutResponse{Status: "logged out"})
}

// PrivateRoute answers true for a verified session and 406 otherwise.
func (h *Handler) PrivateRoute(c *gin.Context) {
	ok, err := h.svc.Guard(c.Request.Context(), authctx.Payload(c.Request.Context()))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok)
}
