package auth

import "github.com/google/uuid"

type (
	Account struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}
	Token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
)
