package deal

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/models"
	dealservice "github.com/thenoetrevino/rolodex/internal/services/deal"
	"github.com/thenoetrevino/rolodex/internal/testutil"
	clitest "github.com/thenoetrevino/rolodex/internal/testutil/cli"
)

func run(t *testing.T, a *app.App, args ...string) clitest.Result {
	t.Helper()
	return clitest.ExecuteCLICommand(t, a, DealCmd(), args)
}

func seed(t *testing.T, a *app.App, titles ...string) []string {
	t.Helper()
	ids := make([]string, len(titles))
	for i, title := range titles {
		d, err := a.DealService.CreateDeal(context.Background(), testutil.Session(clitest.TestUser), dealservice.CreateDealRequest{Title: title})
		require.NoError(t, err)
		ids[i] = d.ID
	}
	return ids
}

func boardTitles(t *testing.T, a *app.App, stage models.Stage) []string {
	t.Helper()
	deals, err := a.DealService.ListDeals(context.Background(), testutil.Session(clitest.TestUser), "")
	require.NoError(t, err)
	var out []string
	for _, d := range deals {
		if d.Stage == stage {
			out = append(out, d.Title)
		}
	}
	return out
}

// ============================================================================
// Create Tests
// ============================================================================

func TestCreate_JSON(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	res := run(t, a, "create", "--title", "Acme hire", "--value", "25000", "--stage", "qualified", "--close-date", "2026-12-01", "--json")
	require.NoError(t, res.Err, res.Stderr)

	out := testutil.ParseJSON(t, res.Stdout)
	if out["success"] != true {
		t.Fatalf("Expected success, got %s", res.Stdout)
	}
	data := out["data"].(map[string]any)
	assert.Equal(t, "Acme hire", data["title"])
	assert.Equal(t, "Qualified", data["stage"])
	assert.Equal(t, float64(25000), data["value"])
}

func TestCreate_Quiet(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	res := run(t, a, "create", "--title", "Acme hire", "--quiet")
	require.NoError(t, res.Err)

	id := strings.TrimSpace(res.Stdout)
	d, err := a.DealService.GetDeal(context.Background(), testutil.Session(clitest.TestUser), id)
	require.NoError(t, err, "quiet output should be the new id")
	assert.Equal(t, "Acme hire", d.Title)
}

func TestCreate_Errors(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing title", []string{"create", "--json"}, cli.ExitUsage},
		{"bad stage", []string{"create", "--title", "x", "--stage", "archived", "--json"}, cli.ExitValidation},
		{"negative value", []string{"create", "--title", "x", "--value", "-5", "--json"}, cli.ExitValidation},
		{"bad date", []string{"create", "--title", "x", "--close-date", "soon", "--json"}, cli.ExitValidation},
		{"unknown contact", []string{"create", "--title", "x", "--contact", "nope", "--json"}, cli.ExitValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, a, tt.args...)
			assert.Equal(t, tt.want, res.ExitCode(), res.Stdout)
			out := testutil.ParseJSON(t, res.Stdout)
			assert.Equal(t, false, out["success"])
		})
	}
}

// ============================================================================
// Read Tests
// ============================================================================

func TestList(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	seed(t, a, "Go engineer", "Designer")

	res := run(t, a, "list")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Found 2 deals")
	assert.Contains(t, res.Stdout, "Go engineer")

	res = run(t, a, "list", "--search", "design", "--quiet")
	require.NoError(t, res.Err)
	assert.Len(t, strings.Fields(res.Stdout), 1)

	res = clitest.ExecuteCLICommandAs(t, a, "someone-else", DealCmd(), []string{"list"})
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "No deals found")
}

func TestShow_NotFound(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	res := run(t, a, "show", "missing")
	assert.Equal(t, cli.ExitNotFound, res.ExitCode())
	assert.Contains(t, res.Stderr, "not found")

	res = run(t, a, "show")
	assert.Equal(t, cli.ExitUsage, res.ExitCode())
}

// ============================================================================
// Update and Delete Tests
// ============================================================================

func TestUpdate(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ids := seed(t, a, "Acme hire")

	res := run(t, a, "update", ids[0], "--value", "900", "--stage", "proposal", "--json")
	require.NoError(t, res.Err, res.Stdout)

	d, err := a.DealService.GetDeal(context.Background(), testutil.Session(clitest.TestUser), ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.StageProposal, d.Stage)
	require.NotNil(t, d.Value)
	assert.Equal(t, int64(900), *d.Value)
	assert.Equal(t, "Acme hire", d.Title, "unset flags keep their values")

	res = run(t, a, "update", ids[0], "--clear-value", "--quiet")
	require.NoError(t, res.Err)
	d, err = a.DealService.GetDeal(context.Background(), testutil.Session(clitest.TestUser), ids[0])
	require.NoError(t, err)
	assert.Nil(t, d.Value)
}

func TestDelete(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ids := seed(t, a, "Acme hire")

	cmd := DealCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	res := clitest.ExecuteCLICommand(t, a, cmd, []string{"delete", ids[0]})
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Cancelled")

	res = run(t, a, "delete", ids[0], "--force")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "deleted")

	res = run(t, a, "delete", ids[0], "--force")
	assert.Equal(t, cli.ExitNotFound, res.ExitCode())
}

// ============================================================================
// Board Tests
// ============================================================================

func TestMove_BeforeAnotherDeal(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ids := seed(t, a, "A", "B", "C")

	res := run(t, a, "move", ids[2], "--before", ids[0], "--json")
	require.NoError(t, res.Err, res.Stdout)

	assert.Equal(t, []string{"C", "A", "B"}, boardTitles(t, a, models.StageLead))
}

func TestMove_ToStage(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ids := seed(t, a, "A", "B")

	res := run(t, a, "move", ids[0], "--stage", "won")
	require.NoError(t, res.Err)

	assert.Equal(t, []string{"B"}, boardTitles(t, a, models.StageLead))
	assert.Equal(t, []string{"A"}, boardTitles(t, a, models.StageWon))
}

func TestMove_Errors(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ids := seed(t, a, "A")

	assert.Equal(t, cli.ExitUsage, run(t, a, "move", ids[0]).ExitCode())
	assert.Equal(t, cli.ExitNotFound, run(t, a, "move", "missing", "--stage", "won").ExitCode())
	assert.Equal(t, cli.ExitNotFound, run(t, a, "move", ids[0], "--before", "missing").ExitCode())
}

func TestSync_Stdin(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ids := seed(t, a, "A", "B")

	cmd := DealCmd()
	cmd.SetIn(strings.NewReader(`[{"id":"` + ids[1] + `","stage":"Lead","position":0},{"id":"` + ids[0] + `","stage":"Lead","position":1}]`))
	res := clitest.ExecuteCLICommand(t, a, cmd, []string{"sync", "--json"})
	require.NoError(t, res.Err, res.Stdout)
	assert.Equal(t, float64(2), testutil.ParseJSON(t, res.Stdout)["data"].(map[string]any)["applied"])

	assert.Equal(t, []string{"B", "A"}, boardTitles(t, a, models.StageLead))
}

func TestSync_BadInput(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	cmd := DealCmd()
	cmd.SetIn(strings.NewReader(`{not json`))
	res := clitest.ExecuteCLICommand(t, a, cmd, []string{"sync"})
	assert.Equal(t, cli.ExitDataErr, res.ExitCode())

	cmd = DealCmd()
	cmd.SetIn(strings.NewReader(`[{"id":"x","stage":"Nowhere","position":0}]`))
	res = clitest.ExecuteCLICommand(t, a, cmd, []string{"sync"})
	assert.Equal(t, cli.ExitValidation, res.ExitCode())
}
