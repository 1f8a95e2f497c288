package handler

import (
	"net/http"
	"strings"

	"todoapi/internal/auth"
	"todoapi/internal/model"
	"todoapi/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler provides local register/login endpoints compatible with the
// tokens the task API verifies. Deployments that authenticate purely
// against an external issuer can leave these routes unused.
type AuthHandler struct {
	users    repository.UserRepositoryInterface
	verifier *auth.Verifier
}

func NewAuthHandler(users repository.UserRepositoryInterface, verifier *auth.Verifier) *AuthHandler {
	return &AuthHandler{users: users, verifier: verifier}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondInternal(c)
		return
	}
	if existing != nil {
		respondDetail(c, http.StatusConflict, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(c)
		return
	}

	user := &model.User{
		ID:             uuid.New().String(),
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: string(hash),
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondInternal(c)
		return
	}

	token, err := h.verifier.Generate(user.ID, user.Email)
	if err != nil {
		respondInternal(c)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: *user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(req.Email)

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondInternal(c)
		return
	}
	if user == nil {
		respondDetail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		respondDetail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.verifier.Generate(user.ID, user.Email)
	if err != nil {
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: *user})
}
