package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (entities.User, string, error)
	SignIn(ctx context.Context, email, password string) (entities.User, string, error)
}

type AuthHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      AuthService
	detail   detailMode
}

func NewAuthHandler(logger *slog.Logger, env string, svc AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger.With(slog.String("handler", "auth")),
		validate: validator.New(),
		svc:      svc,
		detail:   detailModeFor(env),
	}
}

func (h *AuthHandler) Init(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.SignUp)
		r.Post("/signin", h.SignIn)
	})
}

// SignUp registers a user and returns a bearer token.
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Param        request  body  SignUpRequest  true  "Name, email, password"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Router       /users/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignUpRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, token, err := h.svc.SignUp(ctx, req.Name, req.Email, req.Password)
	if errors.Is(err, entities.ErrEmailTaken) {
		utils.WriteError(w, "email already taken, please use another one", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign up", slog.Any("error", err))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, AuthResponse{Token: token, User: UserEntityToJSON(user)}, http.StatusCreated)
}

// SignIn authenticates a user and returns a bearer token.
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Param        request  body  SignInRequest  true  "Email and password"
// @Success      200  {object}  AuthResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Router       /users/signin [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignInRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, token, err := h.svc.SignIn(ctx, req.Email, req.Password)
	if errors.Is(err, entities.ErrInvalidCredentials) {
		utils.WriteError(w, "incorrect email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign in", slog.Any("error", err))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, AuthResponse{Token: token, User: UserEntityToJSON(user)}, http.StatusOK)
}
