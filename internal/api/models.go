// Package api implements the HTTP handlers for the todo API.
package api

import "github.com/dkellner/todo-api/internal/domain"

// Common request/response structures. Request structs are decoded strictly
// (unknown fields rejected) and validated before any handler logic runs.

// UserRequest is the payload for both registration and login.
// The schema is exactly username plus password, nothing else.
type UserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=5"`
}

// ItemCreateRequest is the payload for creating an item. user_id, done and
// image_name are accepted for schema compatibility but ignored: ownership
// comes from the token and new items always start not-done.
type ItemCreateRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	UserID      string `json:"user_id,omitempty"`
	Done        *bool  `json:"done,omitempty"`
	ImageName   string `json:"image_name,omitempty"`
}

// ItemInfoRequest is the payload for overwriting an item's title and
// description. Deliberately unvalidated, matching the recorded contract.
type ItemInfoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DeleteUserRequest carries the email the delete endpoint matches on.
// Note the mismatch with the route's username path parameter; that is the
// recorded contract.
type DeleteUserRequest struct {
	Email string `json:"email"`
}

// PatchUserRequest carries a caller-supplied filter and $set payload applied
// verbatim to the users collection.
type PatchUserRequest struct {
	Query   map[string]interface{} `json:"query"`
	Payload map[string]interface{} `json:"payload"`
}

// UserResponse is the user record as returned to clients. There is no
// password field here or on any other response type.
type UserResponse struct {
	Username  string `json:"username"`
	ImageName string `json:"image_name,omitempty"`
}

// AuthUserResponse is the registration/login response: the user record plus
// a fresh token pair.
type AuthUserResponse struct {
	Username     string `json:"username"`
	ImageName    string `json:"image_name,omitempty"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh"`
}

// RefreshResponse carries the new access token minted from a refresh token.
type RefreshResponse struct {
	AccessToken string `json:"token"`
}

// ItemFieldsResponse is the trimmed item view returned by create and update
// endpoints.
type ItemFieldsResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{Username: u.Username, ImageName: u.ImageName}
}

func newItemFieldsResponse(i *domain.Item) ItemFieldsResponse {
	return ItemFieldsResponse{Title: i.Title, Description: i.Description, Done: i.Done}
}
