// Package style builds the stylesheets injected into the rendering surface:
// the base appearance from user preferences and the note type's own CSS,
// rescoped from the review card to the editable container.
package style

import (
	"fmt"
	"regexp"
	"strings"
)

// EditableSelector is the container class of the editable surface.
const EditableSelector = ".note-editable"

// DefaultCSS is injected when the note type's CSS cannot be resolved.
const DefaultCSS = ".note-editable {\n" +
	" font-family: arial;\n" +
	" font-size: 20px;\n" +
	" text-align: center;\n" +
	" color: black;\n" +
	" background-color: white;\n }"

// ScopeToEditable rewrites .card rules so they apply to the editable container.
func ScopeToEditable(css string) string {
	return strings.ReplaceAll(css, ".card", EditableSelector+" ")
}

// ResolutionError means a note type's CSS could not be used and DefaultCSS was
// substituted.
type ResolutionError struct {
	ModelID int64
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to load template css for note type %d: %v", e.ModelID, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolve turns the result of a CSS lookup into the stylesheet to inject.
// A lookup error or blank CSS yields DefaultCSS and a *ResolutionError.
func Resolve(modelID int64, css string, lookupErr error) (string, error) {
	if lookupErr != nil {
		return DefaultCSS, &ResolutionError{ModelID: modelID, Err: lookupErr}
	}
	if strings.TrimSpace(css) == "" {
		return DefaultCSS, &ResolutionError{ModelID: modelID, Err: fmt.Errorf("note type has no css")}
	}
	return ScopeToEditable(css), nil
}

const (
	dynamicFontMaxSize = 14
	dynamicFontMinSize = 3
	dynamicFontFactor  = 5
)

var (
	breakTag = regexp.MustCompile(`(?i)<br.*?>`)
	ruleTag  = regexp.MustCompile(`(?i)<hr.*?>`)
	anyTag   = regexp.MustCompile(`<.*?>`)
)

// DynamicFontSize picks a default font size that shrinks as the field's
// visible text grows.
func DynamicFontSize(html string) int {
	text := breakTag.ReplaceAllString(html, " ")
	text = ruleTag.ReplaceAllString(text, " ")
	text = anyTag.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return max(dynamicFontMinSize, dynamicFontMaxSize-len([]rune(text))/dynamicFontFactor)
}
