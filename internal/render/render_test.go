package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/resolve"
)

var testRenderer = Renderer{EntryPoint: "mcli"}

func TestRootListingEmptyCatalog(t *testing.T) {
	out := testRenderer.Root(&catalog.Catalog{})
	require.Equal(t, "Description: "+HelpStub+"\nNo commands available\n", out)
}

func TestRootListingBucketsAndSorting(t *testing.T) {
	cat := &catalog.Catalog{
		Modules: map[string]*catalog.Module{
			"billing": {Type: "module"},
			"assets":  {Type: "module"},
		},
		Roots: map[string]catalog.CommandMeta{
			"whoami":       {Name: "whoami", Type: "root command"},
			"health_check": {Name: "health_check", Type: "root command"},
		},
	}

	out := testRenderer.Root(cat)

	require.True(t, strings.HasPrefix(out,
		"Description: "+HelpStub+"\n"+
			"Usage: mcli [module] group [subgroup] command [parameters]\n"+
			"Options:\n"+
			"  --help     Show this message and exit.\n"))

	// "root command" folds into "command"; buckets and names are sorted
	require.Contains(t, out, "Available commands:\n\thealth_check\n\twhoami\n")
	require.Contains(t, out, "Available modules:\n\tassets\n\tbilling\n")
	require.Less(t, strings.Index(out, "Available commands:"), strings.Index(out, "Available modules:"))
}

func TestListingScopedBuckets(t *testing.T) {
	res := &resolve.Resolution{
		Subgroups: []string{"adjustments"},
		Groups:    []string{"report", "invoice"},
		Commands:  []string{"generate", "describe"},
	}

	out := testRenderer.Listing(res)

	require.Contains(t, out, "Available commands:\n\tdescribe\n\tgenerate\n")
	require.Contains(t, out, "Available groups:\n\tinvoice\n\treport\n")
	require.Contains(t, out, "Available subgroups:\n\tadjustments\n")
}

func TestListingOmitsEmptyBuckets(t *testing.T) {
	out := testRenderer.Listing(&resolve.Resolution{Commands: []string{"describe"}})
	require.Contains(t, out, "Available commands:")
	require.NotContains(t, out, "Available groups:")
	require.NotContains(t, out, "Available subgroups:")
}

func TestCommandHelp(t *testing.T) {
	meta := catalog.CommandMeta{
		Name:        "describe",
		Description: "Describe invoices",
		Parameters: []catalog.Parameter{
			{Name: "id", Alias: "i", Required: true, Description: "Invoice id"},
			{Name: "verbose", Required: false, Description: "Show full payload"},
		},
	}

	out := testRenderer.Command(meta, []string{"billing", "invoice", "describe"})

	require.Equal(t,
		"Description: Describe invoices\n"+
			"Usage: mcli billing invoice describe [parameters]\n"+
			"Parameters:\n"+
			"\t--id\t-i\t*\tInvoice id\n"+
			"\t--verbose\t\t\tShow full payload\n",
		out)
}

func TestCommandHelpIncludesDeclaredDescriptionVerbatim(t *testing.T) {
	meta := catalog.CommandMeta{Description: "Reopen a closed adjustment (admin only)"}
	out := testRenderer.Command(meta, []string{"billing", "invoice", "adjustments", "reopen"})
	require.Contains(t, out, "Description: Reopen a closed adjustment (admin only)\n")
}

func TestCommandHelpNoParameters(t *testing.T) {
	meta := catalog.CommandMeta{Description: "Ping"}
	out := testRenderer.Command(meta, []string{"health_check"})
	require.Equal(t,
		"Description: Ping\n"+
			"Usage: mcli health_check [parameters]\n"+
			"Parameters:\n"+
			"No parameters declared\n",
		out)
}

func TestParameterRowsFollowDeclarationOrder(t *testing.T) {
	meta := catalog.CommandMeta{
		Parameters: []catalog.Parameter{
			{Name: "zeta"},
			{Name: "alpha"},
		},
	}
	out := testRenderer.Command(meta, []string{"x"})
	require.Less(t, strings.Index(out, "--zeta"), strings.Index(out, "--alpha"))
}
