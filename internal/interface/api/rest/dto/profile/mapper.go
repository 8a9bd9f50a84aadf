package profile

import "eduxchange/internal/domain/profile"

func ToResponseMe(s profile.Summary) Me {
	p := s.Profile
	return Me{
		ID:            p.ID,
		Email:         s.Email,
		FullName:      p.FullName,
		University:    p.University,
		Department:    p.Department,
		YearOfStudy:   p.YearOfStudy,
		Bio:           p.Bio,
		AvatarURL:     p.AvatarURL,
		ResourceCount: s.ResourceCount,
		CreatedAt:     p.CreatedAt,
	}
}
