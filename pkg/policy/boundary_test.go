package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolevend/rolevend/pkg/model"
)

func TestBoundaryCoversAllTiers(t *testing.T) {
	for _, tier := range model.PermissionTierValues() {
		out, err := Boundary(tier)
		require.NoError(t, err, "tier %s", tier)

		_, err = ParseDocument(out)
		assert.NoError(t, err, "tier %s", tier)
	}
}

func TestAdminBoundaryDeniesSelfEscalation(t *testing.T) {
	out, err := Boundary(model.TierAdmin)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)

	var denied StringList
	for _, stmt := range doc.Statement {
		if stmt.Effect == "Deny" {
			denied = append(denied, stmt.Action...)
		}
	}
	for _, action := range selfEscalationDenies {
		assert.Contains(t, denied, action)
	}
}

func TestBreakGlassBoundaryIsUnrestricted(t *testing.T) {
	out, err := Boundary(model.TierBreakGlass)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)

	require.Len(t, doc.Statement, 1)
	assert.Equal(t, "Allow", doc.Statement[0].Effect)
	assert.Equal(t, StringList{"*"}, doc.Statement[0].Action)
}
