package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownQuery is returned for a demonstration query name outside the catalog.
var ErrUnknownQuery = errors.New("unknown query")

// NamedQuery is one of the fixed demonstration queries on the operations page.
type NamedQuery int

const (
	TopDriversByPoints NamedQuery = iota + 1
	TeamPerformanceComparison
	RaceWinnersSummary
	CircuitStatistics
	DriversWithNoPoints
)

type namedQuery struct {
	title     string
	slug      string
	note      string
	statement string
}

var namedQueries = map[NamedQuery]namedQuery{
	TopDriversByPoints: {
		title: "Top Drivers by Points",
		slug:  "top-drivers",
		statement: `
			SELECT
				CONCAT(D.First_Name, ' ', D.Last_Name) AS Driver_Name,
				T.Team_Name,
				GetDriverTotalPoints(D.Driver_ID) AS Total_Points,
				CountDriverWins(D.Driver_ID) AS Wins,
				GetBestFinish(D.Driver_ID) AS Best_Finish,
				GetDriverAge(D.Driver_ID) AS Age
			FROM DRIVER D
			LEFT JOIN TEAM T ON D.Team_ID = T.Team_ID
			ORDER BY Total_Points DESC
			LIMIT 10`,
	},
	TeamPerformanceComparison: {
		title: "Team Performance Comparison",
		slug:  "team-performance",
		statement: `
			SELECT
				T.Team_Name,
				GetTeamTotalPoints(T.Team_ID) AS Total_Points,
				CountTeamWins(T.Team_ID) AS Wins,
				COUNT(DISTINCT R.Driver_ID) AS Different_Drivers
			FROM TEAM T
			LEFT JOIN RESULT R ON T.Team_ID = R.Team_ID
			GROUP BY T.Team_ID, T.Team_Name
			ORDER BY Total_Points DESC`,
	},
	RaceWinnersSummary: {
		title: "Race Winners Summary",
		slug:  "race-winners",
		statement: `
			SELECT
				RA.Race_Name,
				RA.Year,
				CONCAT(D.First_Name, ' ', D.Last_Name) AS Winner,
				T.Team_Name,
				RES.Points
			FROM RACE RA
			JOIN RESULT RES ON RA.Race_ID = RES.Race_ID AND RES.Position = 1
			JOIN DRIVER D ON RES.Driver_ID = D.Driver_ID
			JOIN TEAM T ON RES.Team_ID = T.Team_ID
			ORDER BY RA.Race_ID DESC`,
	},
	CircuitStatistics: {
		title: "Circuit Statistics",
		slug:  "circuit-statistics",
		statement: `
			SELECT
				C.Circuit_Name,
				C.Location,
				COUNT(DISTINCT RA.Race_ID) AS Races_Held
			FROM CIRCUIT C
			LEFT JOIN RACE RA ON C.Circuit_ID = RA.Circuit_ID
			GROUP BY C.Circuit_ID, C.Circuit_Name, C.Location
			ORDER BY Races_Held DESC`,
	},
	DriversWithNoPoints: {
		title: "Drivers with No Points (Nested Query)",
		slug:  "drivers-without-points",
		note: "Uses a nested query to find drivers who are not in the set of drivers " +
			"that have scored points.",
		statement: `
			SELECT First_Name, Last_Name
			FROM DRIVER
			WHERE Driver_ID NOT IN (
				SELECT DISTINCT Driver_ID
				FROM RESULT
				WHERE Points > 0
			)
			ORDER BY Last_Name`,
	},
}

// NamedQueries returns the demonstration queries in menu order.
func NamedQueries() []NamedQuery {
	return []NamedQuery{
		TopDriversByPoints,
		TeamPerformanceComparison,
		RaceWinnersSummary,
		CircuitStatistics,
		DriversWithNoPoints,
	}
}

// LookupNamedQuery resolves a menu title or slug, ignoring case and surrounding space.
func LookupNamedQuery(name string) (NamedQuery, error) {
	name = strings.TrimSpace(name)

	for _, q := range NamedQueries() {
		d := namedQueries[q]
		if strings.EqualFold(name, d.title) || strings.EqualFold(name, d.slug) {
			return q, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
}

func (q NamedQuery) String() string { return namedQueries[q].title }

// Slug is the URL-safe name.
func (q NamedQuery) Slug() string { return namedQueries[q].slug }

// Note is an optional explanation shown next to the result.
func (q NamedQuery) Note() string { return namedQueries[q].note }

// Statement returns the SQL for q, or "" for a value outside the enumeration.
func (q NamedQuery) Statement() string { return namedQueries[q].statement }
