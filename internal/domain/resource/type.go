package resource

import "strings"

type Type string

const (
	TypePDF   Type = "pdf"
	TypeNotes Type = "notes"
	TypeVideo Type = "video"
	TypeImage Type = "image"
	TypeLink  Type = "link"
)

var Types = []Type{TypePDF, TypeNotes, TypeVideo, TypeImage, TypeLink}

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, true
		}
	}
	return "", false
}

func (t Type) NeedsFile() bool { return t == TypePDF || t == TypeImage }
func (t Type) NeedsLink() bool { return t == TypeVideo || t == TypeLink }

type Display struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var displays = map[Type]Display{
	TypePDF:   {Label: "PDF Document", Icon: "file-text", Color: "bg-red-100 text-red-700"},
	TypeNotes: {Label: "Notes", Icon: "sticky-note", Color: "bg-amber-100 text-amber-700"},
	TypeVideo: {Label: "Video", Icon: "video", Color: "bg-blue-100 text-blue-700"},
	TypeImage: {Label: "Image", Icon: "image", Color: "bg-emerald-100 text-emerald-700"},
	TypeLink:  {Label: "External Link", Icon: "link", Color: "bg-violet-100 text-violet-700"},
}

// DisplayFor falls back to the pdf entry for unknown types.
func DisplayFor(t Type) Display {
	if d, ok := displays[t]; ok {
		return d
	}
	return displays[TypePDF]
}
