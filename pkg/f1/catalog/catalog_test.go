package catalog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNamedQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected NamedQuery
	}{
		{"Top Drivers by Points", TopDriversByPoints},
		{"top drivers by points", TopDriversByPoints},
		{"team-performance", TeamPerformanceComparison},
		{" Race Winners Summary ", RaceWinnersSummary},
		{"circuit-statistics", CircuitStatistics},
		{"Drivers with No Points (Nested Query)", DriversWithNoPoints},
	}

	for i, tc := range tests {
		q, err := LookupNamedQuery(tc.input)

		require.NoError(t, err, "TEST[%d] Failed: %s", i, tc.input)
		assert.Equal(t, tc.expected, q, "TEST[%d] Failed: %s", i, tc.input)
	}
}

func TestLookupNamedQuery_Unknown(t *testing.T) {
	for _, name := range []string{"", "DROP TABLE DRIVER", "SELECT * FROM DRIVER"} {
		_, err := LookupNamedQuery(name)
		require.ErrorIs(t, err, ErrUnknownQuery)
	}

	assert.Empty(t, NamedQuery(99).Statement())
}

func TestNamedQueries_Complete(t *testing.T) {
	queries := NamedQueries()
	require.Len(t, queries, 5)

	slugs := make(map[string]bool)

	for _, q := range queries {
		assert.NotEmpty(t, q.String())
		assert.NotEmpty(t, q.Statement())
		assert.NotContains(t, q.Statement(), "?", "%s takes no parameters", q)
		assert.False(t, slugs[q.Slug()], "duplicate slug %s", q.Slug())

		slugs[q.Slug()] = true
	}

	assert.NotEmpty(t, DriversWithNoPoints.Note())
	assert.Contains(t, DriversWithNoPoints.Statement(), "NOT IN (")
}

func TestProcedures_AreIdentifiers(t *testing.T) {
	ident := regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	for _, p := range Procedures() {
		assert.Regexp(t, ident, p)
	}
}

func TestParameterizedStatements(t *testing.T) {
	tests := []struct {
		statement string
		params    int
	}{
		{TeamStandings, 1},
		{DriversByTeam, 1},
		{DriverFunctions, 4},
		{TeamFunctions, 2},
		{InsertDriver, 4},
		{InsertResult, 7},
		{LatestAuditEntries, 1},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.params, strings.Count(tc.statement, "?"), "TEST[%d] Failed", i)
	}
}
