package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modular-tools/cli/internal/apperr"
	"github.com/modular-tools/cli/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	doc := `{
	  "billing": [
	    {"invoice": {"name": "describe", "description": "Describe invoices",
	      "parameters": [{"name": "id", "alias": "i", "required": true, "description": "Invoice id"}],
	      "route": {"path": "/billing/invoice/describe"}}},
	    {"invoice": {"name": "close", "description": "Close an adjustment",
	      "route": {"path": "/billing/invoice/adjustments/close"}}},
	    {"invoice": {"name": "reopen", "description": "Reopen an adjustment",
	      "route": {"path": "/billing/invoice/adjustments/reopen"}}},
	    {"report": {"name": "generate", "description": "Generate a report",
	      "route": {"path": "/billing/report/generate"}}}
	  ]
	}`
	cat, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)
	return cat
}

func TestResolveExactLeaf(t *testing.T) {
	res, err := Resolve(testCatalog(t), []string{"billing", "invoice", "describe"})
	require.NoError(t, err)
	require.NotNil(t, res.Exact)
	require.Equal(t, "describe", res.Exact.Meta.Name)
	require.Equal(t, "invoice", res.Exact.Group)
	require.Empty(t, res.Exact.Subgroup)
}

func TestResolveExactSubgroupLeaf(t *testing.T) {
	res, err := Resolve(testCatalog(t), []string{"billing", "invoice", "adjustments", "close"})
	require.NoError(t, err)
	require.NotNil(t, res.Exact)
	require.Equal(t, "close", res.Exact.Meta.Name)
	require.Equal(t, "invoice", res.Exact.Group)
	require.Equal(t, "adjustments", res.Exact.Subgroup)
}

func TestResolveModuleListing(t *testing.T) {
	res, err := Resolve(testCatalog(t), []string{"billing"})
	require.NoError(t, err)
	require.Nil(t, res.Exact)
	require.ElementsMatch(t, []string{"invoice", "report"}, res.Groups)
	require.ElementsMatch(t, []string{"adjustments"}, res.Subgroups)
	require.ElementsMatch(t, []string{"describe", "generate"}, res.Commands)
}

func TestResolveGroupListing(t *testing.T) {
	res, err := Resolve(testCatalog(t), []string{"billing", "invoice"})
	require.NoError(t, err)
	require.Nil(t, res.Exact)
	require.ElementsMatch(t, []string{"adjustments"}, res.Subgroups)
	require.ElementsMatch(t, []string{"describe"}, res.Commands)
}

func TestResolveModuleNotFound(t *testing.T) {
	tests := [][]string{
		{"assets"},
		{"assets", "invoice", "describe"},
	}

	for _, tokens := range tests {
		_, err := Resolve(testCatalog(t), tokens)
		require.Error(t, err)

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		require.Equal(t, apperr.BadRequest, ae.Kind)
		require.Contains(t, ae.Message, "module not found")
	}
}

func TestResolveInvalidPath(t *testing.T) {
	_, err := Resolve(testCatalog(t), []string{"billing", "nosuchgroup"})
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.BadRequest, ae.Kind)
	require.Equal(t, "invalid group or command requested", ae.Message)
}

func TestResolveEmptyTokens(t *testing.T) {
	_, err := Resolve(testCatalog(t), nil)
	require.Error(t, err)
}

func TestSubgroupWinsOverSameNamedGroup(t *testing.T) {
	// "archive" exists both as a group and as a subgroup of "invoice"; it
	// must be listed only as a subgroup.
	doc := `{
	  "billing": [
	    {"invoice": {"name": "close", "route": {"path": "/billing/invoice/archive/close"}}},
	    {"archive": {"name": "purge", "route": {"path": "/billing/archive/purge"}}}
	  ]
	}`
	cat, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)

	res, err := Resolve(cat, []string{"billing"})
	require.NoError(t, err)
	require.Contains(t, res.Subgroups, "archive")
	require.NotContains(t, res.Groups, "archive")
	require.Contains(t, res.Groups, "invoice")
}

func TestSubgroupNodeNeverInGroupBucket(t *testing.T) {
	res, err := Resolve(testCatalog(t), []string{"billing", "invoice", "adjustments"})
	require.NoError(t, err)
	require.Nil(t, res.Exact)
	require.ElementsMatch(t, []string{"adjustments"}, res.Subgroups)
	require.Empty(t, res.Commands)
	// "invoice" is the group of the matched nodes, still visible here
	require.ElementsMatch(t, []string{"invoice"}, res.Groups)
}
