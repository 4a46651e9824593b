package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(`{
		"Version": "2012-10-17",
		"Statement": [
			{"Effect": "Allow", "Action": "s3:GetObject", "Resource": ["arn:aws:s3:::bucket/*"]}
		]
	}`)
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, doc.Version)
	require.Len(t, doc.Statement, 1)

	// Bare strings and lists both decode to a list.
	assert.Equal(t, StringList{"s3:GetObject"}, doc.Statement[0].Action)
	assert.Equal(t, StringList{"arn:aws:s3:::bucket/*"}, doc.Statement[0].Resource)
}

func TestParseDocumentRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"Version": `},
		{"missing version", `{"Statement": [{"Effect": "Allow", "Action": "s3:GetObject"}]}`},
		{"no statements", `{"Version": "2012-10-17", "Statement": []}`},
		{"bad effect", `{"Version": "2012-10-17", "Statement": [{"Effect": "Permit", "Action": "s3:GetObject"}]}`},
		{"no actions", `{"Version": "2012-10-17", "Statement": [{"Effect": "Allow", "Action": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(tt.raw)
			var structuralErr *StructuralError
			assert.ErrorAs(t, err, &structuralErr)
		})
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := Document{
		Version: DocumentVersion,
		Statement: []Statement{
			{Effect: "Allow", Action: StringList{"s3:GetObject"}, Resource: StringList{"*"}},
		},
	}
	out, err := doc.JSON()
	require.NoError(t, err)

	parsed, err := ParseDocument(out)
	require.NoError(t, err)
	assert.Equal(t, doc.Statement[0].Action, parsed.Statement[0].Action)
}
