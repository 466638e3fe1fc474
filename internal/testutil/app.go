// Package testutil provides in-memory fixtures for tests: an application
// wired against an in-memory filesystem and a scriptable gateway.
package testutil

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/config"
	"github.com/modular-tools/cli/internal/domain"
	"github.com/modular-tools/cli/internal/log"
)

// FakeGateway is a scriptable domain.Gateway.
type FakeGateway struct {
	LoginFunc   func(username, password string) (domain.LoginResult, error)
	ExecuteFunc func(routePath string, args []string) (domain.ExecResult, error)

	LoginCalls   int
	ExecuteCalls int
}

func (g *FakeGateway) Login(username, password string) (domain.LoginResult, error) {
	g.LoginCalls++
	if g.LoginFunc == nil {
		return domain.LoginResult{}, nil
	}
	return g.LoginFunc(username, password)
}

func (g *FakeGateway) Execute(routePath string, args []string) (domain.ExecResult, error) {
	g.ExecuteCalls++
	if g.ExecuteFunc == nil {
		return domain.ExecResult{}, nil
	}
	return g.ExecuteFunc(routePath, args)
}

var _ domain.Gateway = (*FakeGateway)(nil)

// NewApp builds an application backed by an in-memory filesystem and the
// given gateway.
func NewApp(t *testing.T, gateway domain.Gateway) (*domain.Application, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	app := &domain.Application{
		Config:  config.NewStore(fs, "/meta/config"),
		Catalog: catalog.NewStore(fs, "/meta/commands_meta.json"),
		Gateway: gateway,
		Logger:  log.NopLogger{},
	}
	return app, fs
}
