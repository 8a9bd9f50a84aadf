package account

import (
	domain "eduxchange/internal/domain/account"
)

func fromDBModel(model *Account) *domain.Account {
	return &domain.Account{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}
