package dashboard

import (
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource/sql"
)

// Table is a result set ready for display.
type Table struct {
	Title   string        `json:"title,omitempty"`
	Columns []string      `json:"columns"`
	Rows    sql.ResultSet `json:"rows"`
}

func newTable(title string, rows sql.ResultSet) *Table {
	columns := rows.Columns()
	if columns == nil {
		columns = []string{}
	}

	return &Table{Title: title, Columns: columns, Rows: rows}
}

// Metric is a single headline number.
type Metric struct {
	Label string `json:"label"`
	Value any    `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// Chart kinds.
const (
	ChartBar        = "bar"
	ChartStackedBar = "stacked-bar"
	ChartPie        = "pie"
)

// Chart describes a chart over rows. Rendering is left to the client.
type Chart struct {
	Kind   string            `json:"kind"`
	Title  string            `json:"title"`
	X      string            `json:"x"`
	Y      []string          `json:"y"`
	Color  string            `json:"color,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
	Rows   sql.ResultSet     `json:"rows"`
}

// Option is one entry of a select box.
type Option struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
}

// DashboardPage is the landing page.
type DashboardPage struct {
	Metrics     []Metric `json:"metrics"`
	TopDrivers  *Table   `json:"topDrivers"`
	TopTeams    *Table   `json:"topTeams"`
	RecentRaces *Table   `json:"recentRaces"`
}

// StandingsPage has the driver and team championships of one year.
type StandingsPage struct {
	Year        int    `json:"year"`
	Drivers     *Table `json:"drivers"`
	DriverChart *Chart `json:"driverChart"`
	Teams       *Table `json:"teams"`
	TeamChart   *Chart `json:"teamChart"`
}

// StatsPanel is a procedure result summarised as metrics.
type StatsPanel struct {
	Metrics []Metric `json:"metrics"`
	Table   *Table   `json:"table"`
}

// PodiumPlace is one of the top three finishers of a race.
type PodiumPlace struct {
	Place  int    `json:"place"`
	Driver string `json:"driver"`
	Team   string `json:"team"`
	Points any    `json:"points"`
}

// RaceResultsPage is the classification of one race.
type RaceResultsPage struct {
	Results *Table        `json:"results"`
	Podium  []PodiumPlace `json:"podium"`
}

// AnalyticsPanel pairs a table with its chart.
type AnalyticsPanel struct {
	Table *Table `json:"table"`
	Chart *Chart `json:"chart"`
}

// QueryInfo describes a demonstration query.
type QueryInfo struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Note string `json:"note,omitempty"`
}

// QueryResult is a demonstration query and its rows.
type QueryResult struct {
	Query QueryInfo `json:"query"`
	Table *Table    `json:"table"`
}

// ResultForm holds the choices of the add-result form.
type ResultForm struct {
	Races    []Option `json:"races"`
	Drivers  []Option `json:"drivers"`
	Teams    []Option `json:"teams"`
	Statuses []Option `json:"statuses"`
}

// Confirmation reports a successful write. RowsAffected is set only when the write ran as a plain
// statement; a stored procedure call does not report how many rows it wrote.
type Confirmation struct {
	Message      string `json:"message"`
	RowsAffected *int64 `json:"rowsAffected,omitempty"`
}

// AuditNone selects no values when it is the only entry of an AuditFilter list. Table and action
// names are upper case so it never matches a real entry.
const AuditNone = "none"

// AuditFilter selects audit entries. An empty list selects every value; use AuditNone to select none.
type AuditFilter struct {
	Tables  []string
	Actions []string
}

// AuditPage is the filtered audit log with its summary.
type AuditPage struct {
	Entries *Table   `json:"entries"`
	Tables  []string `json:"tables"`
	Actions []string `json:"actions"`
	Summary []Metric `json:"summary"`
}
