// Package forms turns raw request fields into validated, persist-ready
// values. Each Validate call returns either the typed value or a
// field→message map; handlers redisplay the form when the map is non-empty.
package forms

import (
	"strconv"
	"strings"
)

// Errors maps a form field name to a human-readable message.
type Errors map[string]string

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// PostForm carries a validated post submission. Image is filled in by the
// handler after the upload is stored; it is not part of field validation.
type PostForm struct {
	Text    string
	GroupID *uint
	Image   string
}

// ValidatePost checks the text and group fields of a create/edit submission.
// groupID is the raw select value: empty means no group.
func ValidatePost(text, groupID string) (PostForm, Errors) {
	errs := Errors{}
	form := PostForm{Text: text}

	if strings.TrimSpace(text) == "" {
		errs["text"] = "Text is required"
	}

	if groupID != "" {
		id, err := strconv.Atoi(groupID)
		if err != nil || id < 1 {
			errs["group"] = "Unknown group"
		} else {
			gid := uint(id)
			form.GroupID = &gid
		}
	}

	return form, errs
}

// CommentForm carries a validated comment submission.
type CommentForm struct {
	Text string
}

func ValidateComment(text string) (CommentForm, Errors) {
	errs := Errors{}
	if strings.TrimSpace(text) == "" {
		errs["text"] = "Text is required"
	}
	return CommentForm{Text: text}, errs
}
