package inbound

import "github.com/shandysiswandi/gopost/internal/auth/entity"

type CredentialRequest struct {
	Username string `json:"username" example:"jane"`
	Password string `json:"password" example:"s3cret"`
}

type SessionResponse struct {
	UserID   int64  `json:"userId" example:"1"`
	Username string `json:"username" example:"jane"`
}

func NewSessionResponse(identity entity.Identity) SessionResponse {
	return SessionResponse{UserID: identity.UserID, Username: identity.Username}
}
