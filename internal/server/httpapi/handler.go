package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type reissueRequest struct {
	Username string `json:"username"`
}

// handleSignup creates an account. The password digest never appears in the
// response.
func (s *Server) handleSignup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "username and password required"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "username and password required"})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "username already exists"})
		default:
			s.logger.Error(c.Request.Context(), "signup failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user.PublicInfo()})
}

// handleLogin verifies credentials and emits the session cookie. Unknown
// username and wrong password produce the same response.
func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "username and password required"})
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	http.SetCookie(c.Writer, auth.SessionCookie(token))
	c.JSON(http.StatusOK, gin.H{"ok": true, "username": user.Username, "token": token})
}

// handleLogout clears the client-held session cookie. The token string stays
// valid until its natural expiry; only the client copy is removed.
func (s *Server) handleLogout(c *gin.Context) {
	if claims, ok := sessionClaims(c); ok {
		s.logger.Info(c.Request.Context(), "logout", "username", claims.Username)
	}
	http.SetCookie(c.Writer, auth.ClearSessionCookie())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleToken reissues a session token for a known username without a
// password check. Deploy this behind a trust boundary; it is not itself an
// authentication step, and username existence is not secret here.
func (s *Server) handleToken(c *gin.Context) {
	var req reissueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "username required"})
		return
	}

	token, user, err := s.users.Reissue(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "token reissue failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "token issue failed"})
		return
	}

	http.SetCookie(c.Writer, auth.SessionCookie(token))
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "username": user.Username})
}

// handleMe reports the identity behind the request's cookie. It answers 200
// for every request: no cookie, an expired token, and a tampered token are
// all just anonymous.
func (s *Server) handleMe(c *gin.Context) {
	claims, ok := auth.ClaimsFromRequest(c.Request, s.jwtSecret)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"ok": true, "authenticated": false})
		return
	}

	user, err := s.users.WhoAmI(c.Request.Context(), claims)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "authenticated": true, "user": user.PublicInfo()})
}

// handleDuplCheck reports username availability for the signup form.
func (s *Server) handleDuplCheck(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "username required"})
		return
	}

	available, err := s.users.CheckUsername(c.Request.Context(), username)
	if err != nil {
		s.logger.Error(c.Request.Context(), "dupl_check failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "available": available})
}

// handleUserByName returns the public profile for a username.
func (s *Server) handleUserByName(c *gin.Context) {
	username := c.Param("username")

	user, err := s.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "user lookup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user.PublicInfo()})
}
