package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/testutil"
	clitest "github.com/thenoetrevino/rolodex/internal/testutil/cli"
)

func TestDashboard(t *testing.T) {
	db, a := clitest.SetupCLITest(t)
	testutil.CreateTestContact(t, db, clitest.TestUser, models.Contact{Name: "Ada"})
	testutil.CreateTestDeal(t, db, clitest.TestUser, models.StageLead, "Open deal")
	testutil.CreateTestDeal(t, db, clitest.TestUser, models.StageWon, "Closed deal")

	res := clitest.ExecuteCLICommand(t, a, DashboardCmd(), []string{"--json"})
	require.NoError(t, res.Err, res.Stderr)

	data := testutil.ParseJSON(t, res.Stdout)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total_contacts"])
	assert.Equal(t, float64(2), data["total_deals"])
	assert.Equal(t, float64(1), data["open_deals"])

	res = clitest.ExecuteCLICommand(t, a, DashboardCmd(), nil)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Pipeline")
}
