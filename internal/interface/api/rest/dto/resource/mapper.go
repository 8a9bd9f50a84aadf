package resource

import (
	"strings"

	"eduxchange/internal/domain/resource"
)

func ToResponseResource(rDomain resource.Resource) Resource {
	d := resource.DisplayFor(rDomain.Type)
	tags := []string(rDomain.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Resource{
		ID:            rDomain.ID,
		UserID:        rDomain.UserID,
		Title:         rDomain.Title,
		Description:   rDomain.Description,
		ResourceType:  string(rDomain.Type),
		Subject:       rDomain.Subject,
		CourseCode:    rDomain.CourseCode,
		FileURL:       rDomain.FileURL,
		FileName:      rDomain.FileName,
		FileSize:      rDomain.FileSize,
		MimeType:      rDomain.MimeType,
		ExternalLink:  rDomain.ExternalLink,
		Tags:          tags,
		IsPublic:      rDomain.IsPublic,
		DownloadCount: rDomain.DownloadCount,
		ViewCount:     rDomain.ViewCount,
		CreatedAt:     rDomain.CreatedAt,
		UpdatedAt:     rDomain.UpdatedAt,
		Display:       Display{Label: d.Label, Icon: d.Icon, Color: d.Color},
	}
}

func ToResponseResources(rsDomain resource.Resources) Resources {
	rs := make(Resources, len(rsDomain))
	for idx, r := range rsDomain {
		rs[idx] = ToResponseResource(*r)
	}

	return rs
}

// ToDomainResource trims the input and turns empty optional fields into nil.
// An unknown resource_type maps to the empty type; validate first.
func ToDomainResource(req Request) resource.Resource {
	typ, _ := resource.ParseType(req.ResourceType)
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	return resource.Resource{
		Title:        strings.TrimSpace(req.Title),
		Description:  optional(req.Description),
		Type:         typ,
		Subject:      optional(req.Subject),
		CourseCode:   optional(req.CourseCode),
		ExternalLink: optional(req.ExternalLink),
		IsPublic:     isPublic,
		Tags:         resource.NormalizeTags(req.Tags),
	}
}

// ToDomainEdit maps an edit request. An absent is_public stays nil so the
// stored visibility is kept.
func ToDomainEdit(req Request) resource.Edit {
	return resource.Edit{
		Title:        strings.TrimSpace(req.Title),
		Description:  optional(req.Description),
		Subject:      optional(req.Subject),
		CourseCode:   optional(req.CourseCode),
		ExternalLink: optional(req.ExternalLink),
		IsPublic:     req.IsPublic,
		Tags:         resource.NormalizeTags(req.Tags),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
