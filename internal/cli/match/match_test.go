package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/testutil"
	clitest "github.com/thenoetrevino/rolodex/internal/testutil/cli"
)

func TestMatch(t *testing.T) {
	db, a := clitest.SetupCLITest(t)
	owner := clitest.TestUser

	cheap := testutil.CreateTestContact(t, db, owner, models.Contact{Name: "Cheap", Skills: []string{"go"}, SalaryExpectation: testutil.Int64(90000), AvailabilityStatus: models.AvailabilityOpen})
	pricey := testutil.CreateTestContact(t, db, owner, models.Contact{Name: "Pricey", Skills: []string{"go"}, SalaryExpectation: testutil.Int64(130000)})
	testutil.CreateTestContact(t, db, owner, models.Contact{Name: "Busy", Skills: []string{"go"}, SalaryExpectation: testutil.Int64(100000), AvailabilityStatus: models.AvailabilityNotLooking})
	testutil.CreateTestContact(t, db, owner, models.Contact{Name: "Rustacean", Skills: []string{"rust"}, SalaryExpectation: testutil.Int64(100000)})
	client := testutil.CreateTestContact(t, db, owner, models.Contact{
		Name:             "Acme",
		Type:             models.ContactClient,
		DesiredSpecialty: "go",
		SalaryBudgetMax:  testutil.Int64(150000),
	})

	res := clitest.ExecuteCLICommand(t, a, MatchCmd(), []string{client, "--quiet"})
	require.NoError(t, res.Err, res.Stderr)
	assert.Equal(t, []string{cheap, pricey}, strings.Fields(res.Stdout))

	res = clitest.ExecuteCLICommand(t, a, MatchCmd(), []string{"--specialty", "go", "--max", "100000", "--quiet"})
	require.NoError(t, res.Err, res.Stderr)
	assert.Equal(t, []string{cheap}, strings.Fields(res.Stdout))

	res = clitest.ExecuteCLICommand(t, a, MatchCmd(), []string{"--specialty", "cobol"})
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "No matching candidates")
}

func TestMatch_Errors(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	res := clitest.ExecuteCLICommand(t, a, MatchCmd(), nil)
	assert.Equal(t, cli.ExitUsage, res.ExitCode())

	res = clitest.ExecuteCLICommand(t, a, MatchCmd(), []string{"missing"})
	assert.Equal(t, cli.ExitNotFound, res.ExitCode())
}
