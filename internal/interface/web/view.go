package web

import (
	"github.com/dustin/go-humanize"

	domain "eduxchange/internal/domain/resource"
	"eduxchange/internal/interface/api/rest"
)

const dateLayout = "Jan 2, 2006"

type (
	typeOption struct {
		Value  string
		Label  string
		Active bool
	}
	resourceView struct {
		ID           string
		Title        string
		Description  string
		Display      domain.Display
		Subject      string
		CourseCode   string
		FileName     string
		Size         string
		Tags         []string
		IsPublic     bool
		Views        string
		Downloads    string
		Created      string
		Updated      string
		HasTarget    bool
		DownloadURL  string
		ExternalLink string
	}
	listPage struct {
		Resources []resourceView
		Types     []typeOption
		Filter    string
		Notice    string
	}
)

func toView(r *domain.Resource) resourceView {
	v := resourceView{
		ID:          r.ID.String(),
		Title:       r.Title,
		Display:     domain.DisplayFor(r.Type),
		Description: deref(r.Description),
		Subject:     deref(r.Subject),
		CourseCode:  deref(r.CourseCode),
		FileName:    deref(r.FileName),
		Tags:        r.Tags,
		IsPublic:    r.IsPublic,
		Views:       humanize.Comma(r.ViewCount),
		Downloads:   humanize.Comma(r.DownloadCount),
		Created:     r.CreatedAt.Format(dateLayout),
		Updated:     humanize.Time(r.UpdatedAt),
		DownloadURL: rest.RouteResources + "/" + r.ID.String() + "/download",
	}
	if r.FileSize != nil && *r.FileSize > 0 {
		v.Size = humanize.Bytes(uint64(*r.FileSize))
	}
	v.ExternalLink = deref(r.ExternalLink)
	v.HasTarget = r.HasFile() || v.ExternalLink != ""

	return v
}

func typeOptions(active string) []typeOption {
	opts := make([]typeOption, len(domain.Types))
	for i, t := range domain.Types {
		opts[i] = typeOption{
			Value:  string(t),
			Label:  domain.DisplayFor(t).Label,
			Active: string(t) == active,
		}
	}
	return opts
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
