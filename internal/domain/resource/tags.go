package resource

import "strings"

const MaxTags = 5

type Tags []string

// Add appends tag unless it is blank, already present or the list is full.
func (t Tags) Add(tag string) Tags {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(t) >= MaxTags || t.Has(tag) {
		return t
	}
	return append(t, tag)
}

func (t Tags) Has(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// Remove drops tag, keeping the order of the rest.
func (t Tags) Remove(tag string) Tags {
	out := make(Tags, 0, len(t))
	for _, existing := range t {
		if existing != tag {
			out = append(out, existing)
		}
	}
	return out
}

// NormalizeTags folds raw input through Add, so the result never holds
// more than MaxTags entries.
func NormalizeTags(raw []string) Tags {
	var out Tags
	for _, tag := range raw {
		out = out.Add(tag)
	}
	return out
}
