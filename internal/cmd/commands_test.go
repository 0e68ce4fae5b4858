package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/config"
)

func TestAccountsCmdHelpWorks(t *testing.T) {
	cmd := AccountsCmd()
	cmd.SetArgs([]string{"--help"})
	assert.NoError(t, cmd.Execute())
}

func TestProductsCmdUnknownSubcommandErrors(t *testing.T) {
	cmd := ProductsCmd()
	cmd.SetArgs([]string{"nope"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestPrintAccountsTable(t *testing.T) {
	var buf bytes.Buffer
	accounts := []api.Account{
		{AccountID: "100000000001", Name: "team-1", Email: "team-1@example.com", Status: api.AccountActive, JoinedAt: "2024-01-15"},
	}
	require.NoError(t, printAccounts(&buf, accounts, false))
	out := buf.String()
	assert.Contains(t, out, "100000000001")
	assert.Contains(t, out, "team-1@example.com")
}

func TestPrintAccountsJSON(t *testing.T) {
	var buf bytes.Buffer
	accounts := []api.Account{{ID: "a-1", AccountID: "100000000001", Name: "team-1"}}
	require.NoError(t, printAccounts(&buf, accounts, true))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "100000000001", decoded[0]["account_id"])
}

func TestPrintAccountsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAccounts(&buf, nil, false))
	assert.Contains(t, buf.String(), "no accounts found")
}

func TestPrintProductsTable(t *testing.T) {
	var buf bytes.Buffer
	products := []api.Product{{Name: "alpha", Owner: "ops", Position: "Lead", UpdatedAt: "2024-02-01T00:00:00Z"}}
	require.NoError(t, printProducts(&buf, products, false))
	assert.Contains(t, buf.String(), "alpha")
	assert.Contains(t, buf.String(), "ops")
}

func TestPrintLinkViewsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLinkViews(&buf, nil, false))
	assert.Contains(t, buf.String(), "no linked accounts")
}

func TestRunInteractiveInitSavesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := RunInteractiveInit(strings.NewReader(srv.URL+"\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "connected to "+srv.URL)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, cfg.APIURL)
}

func TestRunInteractiveInitUnreachableServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	var out bytes.Buffer
	err := RunInteractiveInit(strings.NewReader(srv.URL+"\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not reach")
}
