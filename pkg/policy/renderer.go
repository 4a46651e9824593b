package policy

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

var placeholderRgx = regexp.MustCompile(`\$\{([^}]+)\}`)

// MissingVariableError reports placeholders left unresolved after
// substitution. A document with dangling placeholders must never be attached
// to a live identity.
type MissingVariableError struct {
	Variables []string
}

func (e *MissingVariableError) Error() string {
	if len(e.Variables) == 1 {
		return "missing required variable: " + e.Variables[0]
	}
	return "missing required variables: " + strings.Join(e.Variables, ", ")
}

// Renderer turns a permission tier plus a variable bag into a validated
// access-policy document.
type Renderer struct {
	templates store.TemplateStore
}

// NewRenderer creates a renderer backed by the given template store. A nil
// store means compiled-in defaults only.
func NewRenderer(templates store.TemplateStore) *Renderer {
	return &Renderer{templates: templates}
}

// Render looks up the tier's template (stored, else compiled-in default),
// substitutes ${name} placeholders from variables, and structurally
// validates the result. A request never fails solely because the store
// lacks a template; it does fail on leftover placeholders or a malformed
// document.
func (r *Renderer) Render(ctx context.Context, tier model.PermissionTier, variables map[string]string) (string, error) {
	content, err := r.templateContent(ctx, tier)
	if err != nil {
		return "", err
	}

	rendered := substitute(content, variables)

	if missing := findPlaceholders(rendered); len(missing) > 0 {
		return "", &MissingVariableError{Variables: missing}
	}

	if _, err := ParseDocument(rendered); err != nil {
		return "", err
	}
	return rendered, nil
}

func (r *Renderer) templateContent(ctx context.Context, tier model.PermissionTier) (string, error) {
	if r.templates != nil {
		tmpl, err := r.templates.GetTemplate(ctx, tier)
		switch {
		case err == nil:
			return tmpl.Content, nil
		case errors.Is(err, store.ErrTemplateNotFound):
			// Fall through to the compiled-in default.
		default:
			return "", fmt.Errorf("template lookup for tier %s: %w", tier, err)
		}
	}

	tmpl, ok := defaultTemplates[tier]
	if !ok {
		return "", fmt.Errorf("no template available for tier %s", tier)
	}
	return tmpl.Content, nil
}

// Placeholders lists the distinct ${name} placeholders in a template, in
// order of first appearance.
func Placeholders(content string) []string {
	return findPlaceholders(content)
}

func substitute(content string, variables map[string]string) string {
	for name, value := range variables {
		content = strings.ReplaceAll(content, "${"+name+"}", value)
	}
	return content
}

func findPlaceholders(content string) []string {
	matches := placeholderRgx.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
