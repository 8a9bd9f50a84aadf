package resource

// Request is bound from multipart forms on create and JSON on update.
type Request struct {
	Title        string   `json:"title" form:"title"`
	Description  string   `json:"description" form:"description"`
	ResourceType string   `json:"resource_type" form:"resource_type"`
	Subject      string   `json:"subject" form:"subject"`
	CourseCode   string   `json:"course_code" form:"course_code"`
	ExternalLink string   `json:"external_link" form:"external_link"`
	IsPublic     *bool    `json:"is_public" form:"is_public"`
	Tags         []string `json:"tags" form:"tags"`
}
