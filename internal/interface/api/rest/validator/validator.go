package validator

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"eduxchange/internal/domain/resource"
	"eduxchange/internal/interface/api/rest/dto/auth"
	dto "eduxchange/internal/interface/api/rest/dto/resource"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	maxTitleLen    = 200
	maxFullNameLen = 128
)

var ErrInvalidType = errors.New("invalid resource_type")

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ParseTypeFilter reads the optional ?type= list filter. An empty value
// means no filter.
func ParseTypeFilter(raw string) (*resource.Type, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	typ, ok := resource.ParseType(raw)
	if !ok {
		return nil, ErrInvalidType
	}
	return &typ, nil
}

func ValidateSignUp(r auth.SignUpRequest) map[string]string {
	errs := credentials(r.Email, r.Password)

	if utf8.RuneCountInString(strings.TrimSpace(r.FullName)) > maxFullNameLen {
		errs["full_name"] = "full_name must be at most 128 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := credentials(r.Email, r.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func credentials(rawEmail, password string) map[string]string {
	errs := make(map[string]string)

	// password is not trimmed
	email := strings.ToLower(strings.TrimSpace(rawEmail))

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8-72 characters"
	}

	return errs
}

// ValidateResource checks a create (creating=true) or edit payload.
// On edit the type is taken from the stored record, so the type and file
// rules are left to the service.
func ValidateResource(r dto.Request, hasFile, creating bool) map[string]string {
	errs := make(map[string]string)

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs["title"] = "title is required"
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs["title"] = "title must be at most 200 characters"
	}

	link := strings.TrimSpace(r.ExternalLink)
	if link != "" && !isHTTPURL(link) {
		errs["external_link"] = "external_link must be an absolute http(s) URL"
	}

	if creating {
		typ, ok := resource.ParseType(r.ResourceType)
		switch {
		case strings.TrimSpace(r.ResourceType) == "":
			errs["resource_type"] = "resource_type is required"
		case !ok:
			errs["resource_type"] = "resource_type must be one of pdf, notes, video, image, link"
		case typ.NeedsLink() && link == "":
			errs["external_link"] = "external_link is required for " + string(typ)
		case typ.NeedsFile() && !hasFile:
			errs["file"] = "file is required for " + string(typ)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
