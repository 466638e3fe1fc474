package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modular-tools/cli/internal/apperr"
	"github.com/modular-tools/cli/internal/domain"
	"github.com/modular-tools/cli/internal/testutil"
)

const dynamicCatalog = `{
  "billing": [
    {"invoice": {"name": "describe", "description": "Describe an invoice",
      "parameters": [
        {"name": "invoice_id", "alias": "i", "required": true, "description": "Invoice identifier"},
        {"name": "format", "required": false, "description": "Output format"}
      ],
      "route": {"path": "/billing/invoice/describe"}}},
    {"invoice": {"name": "close", "description": "Close an adjustment",
      "route": {"path": "/billing/invoice/adjustments/close"}}}
  ]
}`

func TestSplitTokens(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		tokens []string
		params []string
	}{
		{"empty", nil, nil, nil},
		{"path only", []string{"billing", "invoice", "describe"},
			[]string{"billing", "invoice", "describe"}, nil},
		{"flags only", []string{"--help"}, []string{}, []string{"--help"}},
		{"path then flags", []string{"billing", "invoice", "describe", "--invoice_id", "42"},
			[]string{"billing", "invoice", "describe"}, []string{"--invoice_id", "42"}},
		{"value after flag stays a parameter", []string{"setup", "--username", "describe", "extra"},
			[]string{"setup"}, []string{"--username", "describe", "extra"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, rawParams := splitTokens(tc.args)
			require.Equal(t, tc.tokens, tokens)
			require.Equal(t, tc.params, rawParams)
		})
	}
}

func TestExtractGlobalOptions(t *testing.T) {
	rawParams := []string{"--no-color", "--help", "--pager=cat", "--invoice_id", "42", "--no-pager", "--interactive"}
	opts := extractGlobalOptions(&rawParams)

	require.True(t, opts.help)
	require.True(t, opts.noColor)
	require.True(t, opts.noPager)
	require.True(t, opts.interactive)
	require.Equal(t, "cat", opts.pager)

	// --help stays visible to the command, the rest are consumed
	require.Equal(t, []string{"--help", "--invoice_id", "42"}, rawParams)
}

func loggedIn(t *testing.T, gateway domain.Gateway) *domain.Application {
	t.Helper()
	a, _ := testutil.NewApp(t, gateway)
	require.NoError(t, a.Catalog.SaveDynamic([]byte(dynamicCatalog)))
	return a
}

func TestRunRootHelp(t *testing.T) {
	a := loggedIn(t, &testutil.FakeGateway{})

	res, err := run(a, nil, nil, globalOptions{})
	require.NoError(t, err)
	require.True(t, res.paged)
	require.Contains(t, res.message, "Available modules:")
	require.Contains(t, res.message, "billing")
	require.Contains(t, res.message, "health_check")

	named, err := run(a, []string{"help"}, nil, globalOptions{})
	require.NoError(t, err)
	require.Equal(t, res.message, named.message)
}

func TestRunListingForPartialPath(t *testing.T) {
	a := loggedIn(t, &testutil.FakeGateway{})

	res, err := run(a, []string{"billing", "invoice"}, nil, globalOptions{})
	require.NoError(t, err)
	require.True(t, res.paged)
	require.Contains(t, res.message, "Available subgroups:\n\tadjustments")
	require.Contains(t, res.message, "Available commands:\n\tdescribe")
}

func TestRunExactCommandDispatches(t *testing.T) {
	gateway := &testutil.FakeGateway{
		ExecuteFunc: func(routePath string, args []string) (domain.ExecResult, error) {
			require.Equal(t, "/billing/invoice/describe", routePath)
			require.Equal(t, []string{"--invoice_id", "42"}, args)
			return domain.ExecResult{Message: "ok", Warnings: []string{"slow"}}, nil
		},
	}
	a := loggedIn(t, gateway)

	res, err := run(a, []string{"billing", "invoice", "describe"},
		[]string{"--invoice_id", "42"}, globalOptions{})
	require.NoError(t, err)
	require.False(t, res.paged)
	require.Equal(t, "ok", res.message)
	require.Equal(t, []string{"slow"}, res.warnings)
	require.Equal(t, 1, gateway.ExecuteCalls)
}

func TestRunAliasNormalizedBeforeDispatch(t *testing.T) {
	gateway := &testutil.FakeGateway{
		ExecuteFunc: func(_ string, args []string) (domain.ExecResult, error) {
			require.Equal(t, []string{"--invoice_id", "42"}, args)
			return domain.ExecResult{}, nil
		},
	}
	a := loggedIn(t, gateway)

	_, err := run(a, []string{"billing", "invoice", "describe"},
		[]string{"-i", "42"}, globalOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, gateway.ExecuteCalls)
}

func TestRunMissingParameterBlocksDispatch(t *testing.T) {
	gateway := &testutil.FakeGateway{}
	a := loggedIn(t, gateway)

	_, err := run(a, []string{"billing", "invoice", "describe"}, nil, globalOptions{})
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "The following parameters are missing: invoice_id", ae.Message)
	require.Equal(t, 0, gateway.ExecuteCalls)
}

func TestRunCommandHelp(t *testing.T) {
	a := loggedIn(t, &testutil.FakeGateway{})

	res, err := run(a, []string{"billing", "invoice", "describe"},
		[]string{"--help"}, globalOptions{help: true})
	require.NoError(t, err)
	require.True(t, res.paged)
	require.Contains(t, res.message, "Description: Describe an invoice")
	require.Contains(t, res.message, "Usage: mcli billing invoice describe [parameters]")
	require.Contains(t, res.message, "--invoice_id\t-i\t*\tInvoice identifier")
}

func TestRunRootCommandDispatches(t *testing.T) {
	gateway := &testutil.FakeGateway{
		ExecuteFunc: func(routePath string, args []string) (domain.ExecResult, error) {
			require.Equal(t, "/health_check", routePath)
			require.Empty(t, args)
			return domain.ExecResult{Message: "healthy"}, nil
		},
	}
	a := loggedIn(t, gateway)

	res, err := run(a, []string{"health_check"}, nil, globalOptions{})
	require.NoError(t, err)
	require.Equal(t, "healthy", res.message)
}

func TestRunRootCommandHelp(t *testing.T) {
	a := loggedIn(t, &testutil.FakeGateway{})

	res, err := run(a, []string{"whoami"}, []string{"--help"}, globalOptions{help: true})
	require.NoError(t, err)
	require.Contains(t, res.message, "Usage: mcli whoami [parameters]")
	require.Contains(t, res.message, "--detailed")
}

func TestRunStaticCommandWins(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := loggedIn(t, &testutil.FakeGateway{})

	res, err := run(a, []string{"version"}, nil, globalOptions{})
	require.NoError(t, err)
	require.Contains(t, res.message, "mcli")
}

func TestRunUnknownModule(t *testing.T) {
	a := loggedIn(t, &testutil.FakeGateway{})

	_, err := run(a, []string{"storage"}, nil, globalOptions{})
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.BadRequest, ae.Kind)
	require.Equal(t, 2, ae.ExitCode())
}
