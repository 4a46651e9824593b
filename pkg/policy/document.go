package policy

import (
	"encoding/json"
	"fmt"
)

// DocumentVersion is the policy language version marker.
const DocumentVersion = "2012-10-17"

// StructuralError reports a rendered document that is not a well-formed
// policy. It is always caught before the document is handed to the
// credential authority.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structurally invalid policy document: " + e.Reason
}

// StringList is a policy field that accepts either a bare string or a list
// of strings, as the policy language does.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Statement is one entry in a policy document.
type Statement struct {
	Sid       string                    `json:"Sid,omitempty"`
	Effect    string                    `json:"Effect"`
	Principal map[string]string         `json:"Principal,omitempty"`
	Action    StringList                `json:"Action"`
	Resource  StringList                `json:"Resource,omitempty"`
	Condition map[string]map[string]any `json:"Condition,omitempty"`
}

// Document is a parsed policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// ParseDocument decodes and structurally validates a policy document.
func ParseDocument(raw string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &StructuralError{Reason: "not valid JSON: " + err.Error()}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the structural invariants: a version marker, at least one
// statement, each statement with an allow/deny effect and at least one
// action.
func (d *Document) Validate() error {
	if d.Version == "" {
		return &StructuralError{Reason: "missing Version"}
	}
	if len(d.Statement) == 0 {
		return &StructuralError{Reason: "no statements"}
	}
	for i, stmt := range d.Statement {
		if stmt.Effect != "Allow" && stmt.Effect != "Deny" {
			return &StructuralError{Reason: fmt.Sprintf("statement %d has effect %q, want Allow or Deny", i, stmt.Effect)}
		}
		if len(stmt.Action) == 0 {
			return &StructuralError{Reason: fmt.Sprintf("statement %d has no actions", i)}
		}
	}
	return nil
}

// JSON renders the document, indented the way humans and diff tools expect
// policy documents to look.
func (d *Document) JSON() (string, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
