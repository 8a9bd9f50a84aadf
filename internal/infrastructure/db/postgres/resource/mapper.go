package resource

import (
	domain "eduxchange/internal/domain/resource"
)

func fromDBModel(model *Resource) *domain.Resource {
	var r = &domain.Resource{
		ID:          model.ID,
		UserID:      model.UserID,
		Title:       model.Title,
		Description: model.Description,
		Type:        domain.Type(model.ResourceType),
		Subject:     model.Subject,
		CourseCode:  model.CourseCode,

		FileURL:      model.FileURL,
		FileName:     model.FileName,
		FileSize:     model.FileSize,
		MimeType:     model.MimeType,
		ExternalLink: model.ExternalLink,

		Tags:     domain.Tags(model.Tags),
		IsPublic: model.IsPublic,

		DownloadCount: model.DownloadCount,
		ViewCount:     model.ViewCount,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return r
}

func fromDBModels(models Resources) domain.Resources {
	rs := make(domain.Resources, len(models))
	for idx, r := range models {
		rs[idx] = fromDBModel(r)
	}

	return rs
}

// tagsToDB stores an empty tag list as NULL.
func tagsToDB(tags domain.Tags) []string {
	if len(tags) == 0 {
		return nil
	}
	return []string(tags)
}
