package controllers

import (
	"encoding/json"
	"net/http"

	"gazette/app/admin"

	"go.uber.org/zap"
)

// AuthController issues admin session tokens
type AuthController struct {
	username     string
	passwordHash string
	tokens       *admin.TokenService
	log          *zap.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(username, passwordHash string, tokens *admin.TokenService, log *zap.Logger) *AuthController {
	return &AuthController{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
		log:          log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the admin credentials and returns a bearer token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, r, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.Username != ac.username || !admin.CheckPasswordHash(req.Password, ac.passwordHash) {
		ac.log.Warn("failed admin login", zap.String("username", req.Username))
		sendError(w, r, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := ac.tokens.Generate(req.Username)
	if err != nil {
		sendError(w, r, "failed to issue token", http.StatusInternalServerError)
		return
	}
	sendJSON(w, map[string]string{"token": token})
}
