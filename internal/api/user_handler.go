package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/users-api/internal/api/shared"
	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/phrazzld/users-api/internal/service"
)

// UserCreatedMessage is the body message returned by a successful POST /users.
const UserCreatedMessage = "User created successfully"

// CreateUserRequest is the input of POST /users. Fields are pointers so a
// missing field can be told apart from an empty one; empty strings are
// accepted.
type CreateUserRequest struct {
	Name  *string `json:"name"  validate:"required"`
	Email *string `json:"email" validate:"required"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	Identifier int    `json:"identifier"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserHandler handles the /users endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With("component", "user_handler"),
	}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := bindCreateUserRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), *req.Name, *req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	log.Debug("user created via API", "identifier", user.Identifier)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: UserCreatedMessage})
}

// usersToResponse converts users to their wire form. The result is never
// nil so an empty store encodes as [].
func usersToResponse(users []domain.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			Identifier: u.Identifier,
			Name:       u.Name,
			Email:      u.Email,
		})
	}
	return resp
}
