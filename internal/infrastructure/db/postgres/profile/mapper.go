package profile

import (
	domain "eduxchange/internal/domain/profile"
)

func fromDBModel(model *Profile) *domain.Profile {
	return &domain.Profile{
		ID:          model.ID,
		FullName:    model.FullName,
		University:  model.University,
		Department:  model.Department,
		YearOfStudy: model.YearOfStudy,
		Bio:         model.Bio,
		AvatarURL:   model.AvatarURL,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
