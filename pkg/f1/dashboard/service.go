package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/catalog"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource/sql"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/validation"
)

// DefaultChampionshipYear is the season shown when no year is given.
const DefaultChampionshipYear = 2024

const (
	topChartSize = 10
	podiumSize   = 3
	dialectNoSP  = "sqlite"
)

// Service builds every page of the dashboard. It is safe for concurrent use.
type Service struct {
	exec      Executor
	validator *validation.Validator
	year      int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithChampionshipYear sets the default season.
func WithChampionshipYear(year int) ServiceOption {
	return func(s *Service) {
		if year > 0 {
			s.year = year
		}
	}
}

// WithValidator replaces the English input validator.
func WithValidator(v *validation.Validator) ServiceOption {
	return func(s *Service) { s.validator = v }
}

// New returns a Service reading through exec.
func New(exec Executor, opts ...ServiceOption) *Service {
	s := &Service{
		exec:      exec,
		validator: validation.New("en"),
		year:      DefaultChampionshipYear,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ChampionshipYear is the default season.
func (s *Service) ChampionshipYear() int { return s.year }

// Dashboard returns headline counts, the top five drivers and teams and the five latest races.
func (s *Service) Dashboard(ctx context.Context) (*DashboardPage, error) {
	counts := []struct {
		label, delta, query string
	}{
		{"Total Drivers", "Active", catalog.CountDrivers},
		{"Total Teams", fmt.Sprintf("%d Season", s.year), catalog.CountTeams},
		{"Total Races", "Completed", catalog.CountRaces},
		{"Total Results", "Recorded", catalog.CountResults},
	}

	page := &DashboardPage{Metrics: make([]Metric, 0, len(counts))}

	for _, c := range counts {
		rows, err := s.exec.ExecuteQuery(ctx, c.query)
		if err != nil {
			return nil, err
		}

		var value any = int64(0)
		if len(rows) > 0 {
			value = rows[0].Value("count")
		}

		page.Metrics = append(page.Metrics, Metric{Label: c.label, Value: value, Delta: c.delta})
	}

	var err error

	if page.TopDrivers, err = s.table(ctx, "Top 5 Drivers", catalog.TopDrivers); err != nil {
		return nil, err
	}

	if page.TopTeams, err = s.table(ctx, "Top 5 Teams", catalog.TopTeams); err != nil {
		return nil, err
	}

	if page.RecentRaces, err = s.table(ctx, "Recent Races", catalog.RecentRaces); err != nil {
		return nil, err
	}

	return page, nil
}

// Standings returns the driver championship from GetChampionshipStandings and the team championship
// of year, both ranked. A year of zero uses the default season.
func (s *Service) Standings(ctx context.Context, year int) (*StandingsPage, error) {
	if year == 0 {
		year = s.year
	}

	if year < 1950 || year > 2100 {
		return nil, invalid(fmt.Sprintf("year %d is outside the championship era", year))
	}

	drivers, err := s.exec.CallProcedure(ctx, catalog.GetChampionshipStandings, year)
	if err != nil {
		return nil, err
	}

	teams, err := s.exec.ExecuteQuery(ctx, catalog.TeamStandings, year)
	if err != nil {
		return nil, err
	}

	drivers, teams = ranked(drivers), ranked(teams)

	return &StandingsPage{
		Year:    year,
		Drivers: newTable(fmt.Sprintf("Driver Championship %d", year), drivers),
		DriverChart: &Chart{
			Kind:   ChartBar,
			Title:  fmt.Sprintf("Top %d Drivers by Points", topChartSize),
			X:      "Driver_Name",
			Y:      []string{"Total_Points"},
			Color:  "Team_Name",
			Labels: map[string]string{"Total_Points": "Points", "Driver_Name": "Driver"},
			Rows:   head(drivers, topChartSize),
		},
		Teams: newTable(fmt.Sprintf("Team Championship %d", year), teams),
		TeamChart: &Chart{
			Kind:   ChartBar,
			Title:  "Team Championship Points",
			X:      "Team_Name",
			Y:      []string{"Total_Points"},
			Color:  "Nationality",
			Labels: map[string]string{"Total_Points": "Points", "Team_Name": "Team"},
			Rows:   teams,
		},
	}, nil
}

// Drivers lists every driver with age and team.
func (s *Service) Drivers(ctx context.Context) (*Table, error) {
	return s.table(ctx, "All Drivers", catalog.AllDrivers)
}

// DriversByTeam lists the drivers signed to team.
func (s *Service) DriversByTeam(ctx context.Context, teamID int64) (*Table, error) {
	if teamID <= 0 {
		return nil, invalid("team id must be positive")
	}

	return s.table(ctx, "Drivers", catalog.DriversByTeam, teamID)
}

// DriverOptions lists drivers by first name for a select box.
func (s *Service) DriverOptions(ctx context.Context) ([]Option, error) {
	return s.options(ctx, catalog.DriverOptions)
}

// DriverStats summarises GetDriverStats. The best finish reads "P<n>", or "N/A" when the driver has
// never been classified.
func (s *Service) DriverStats(ctx context.Context, driverID int64) (*StatsPanel, error) {
	if driverID <= 0 {
		return nil, invalid("driver id must be positive")
	}

	rows, err := s.exec.CallProcedure(ctx, catalog.GetDriverStats, driverID)
	if err != nil {
		return nil, err
	}

	panel := &StatsPanel{Metrics: []Metric{}, Table: newTable("Driver Statistics", rows)}

	if len(rows) == 0 {
		return panel, nil
	}

	first := rows[0]

	panel.Metrics = []Metric{
		{Label: "Total Points", Value: first.Value("Total_Points")},
		{Label: "Wins", Value: first.Value("Wins")},
		{Label: "Podiums", Value: first.Value("Podiums")},
		{Label: "Best Finish", Value: BestFinish(first.Value("Best_Finish"))},
	}

	return panel, nil
}

// BestFinish formats a finishing position as "P<n>". Zero, NULL and non-numeric values are "N/A".
func BestFinish(v any) string {
	pos, ok := sql.NewRow([]string{"v"}, []any{v}).Float("v")
	if !ok || pos == 0 {
		return "N/A"
	}

	return "P" + strconv.Itoa(int(pos))
}

// NewDriver is the input of AddDriver.
type NewDriver struct {
	FirstName string `json:"firstName" binding:"required" label:"First name"`
	LastName  string `json:"lastName" binding:"required" label:"Last name"`
	DOB       string `json:"dob" binding:"required,datetime=2006-01-02,notfuture" label:"Date of birth"`
	TeamID    int64  `json:"teamId" binding:"required,gt=0" label:"Team"`
}

// AddDriver stores a driver through the AddDriver procedure. Databases without stored procedures get
// the equivalent insert.
func (s *Service) AddDriver(ctx context.Context, in NewDriver) (*Confirmation, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.DOB = strings.TrimSpace(in.DOB)

	if err := s.validate(in); err != nil {
		return nil, err
	}

	affected, err := s.write(ctx, catalog.AddDriver, catalog.InsertDriver, in.FirstName, in.LastName, in.DOB, in.TeamID)
	if err != nil {
		return nil, err
	}

	return &Confirmation{
		Message:      fmt.Sprintf("Driver %s %s added successfully!", in.FirstName, in.LastName),
		RowsAffected: affected,
	}, nil
}

// Teams lists every team.
func (s *Service) Teams(ctx context.Context) (*Table, error) {
	return s.table(ctx, "All Teams", catalog.AllTeams)
}

// TeamOptions lists teams by name for a select box.
func (s *Service) TeamOptions(ctx context.Context) ([]Option, error) {
	return s.options(ctx, catalog.TeamOptions)
}

// TeamPerformance summarises GetTeamPerformance.
func (s *Service) TeamPerformance(ctx context.Context, teamID int64) (*StatsPanel, error) {
	if teamID <= 0 {
		return nil, invalid("team id must be positive")
	}

	rows, err := s.exec.CallProcedure(ctx, catalog.GetTeamPerformance, teamID)
	if err != nil {
		return nil, err
	}

	panel := &StatsPanel{Metrics: []Metric{}, Table: newTable("Team Performance Analysis", rows)}

	if len(rows) > 0 {
		panel.Metrics = []Metric{
			{Label: "Total Points", Value: rows[0].Value("Total_Points")},
			{Label: "Wins", Value: rows[0].Value("Wins")},
			{Label: "Podiums", Value: rows[0].Value("Podiums")},
		}
	}

	return panel, nil
}

// RaceOptions lists races, latest first, as "<name> - <year>".
func (s *Service) RaceOptions(ctx context.Context) ([]Option, error) {
	return s.options(ctx, catalog.RaceOptions)
}

// RaceResults returns the classification from GetRaceResults and its podium.
func (s *Service) RaceResults(ctx context.Context, raceID int64) (*RaceResultsPage, error) {
	if raceID <= 0 {
		return nil, invalid("race id must be positive")
	}

	rows, err := s.exec.CallProcedure(ctx, catalog.GetRaceResults, raceID)
	if err != nil {
		return nil, err
	}

	return &RaceResultsPage{
		Results: newTable("Race Results", rows),
		Podium:  Podium(rows),
	}, nil
}

// Podium picks, in row order, the first three rows with a non-null Position of at most 3.
func Podium(rows sql.ResultSet) []PodiumPlace {
	podium := make([]PodiumPlace, 0, podiumSize)

	for _, r := range rows {
		pos, ok := r.Float("Position")
		if !ok || pos > podiumSize {
			continue
		}

		podium = append(podium, PodiumPlace{
			Place:  len(podium) + 1,
			Driver: r.String("Driver_Name"),
			Team:   r.String("Team_Name"),
			Points: r.Value("Points"),
		})

		if len(podium) == podiumSize {
			break
		}
	}

	return podium
}

// CircuitAnalysis counts races and average points per circuit.
func (s *Service) CircuitAnalysis(ctx context.Context) (*AnalyticsPanel, error) {
	t, err := s.table(ctx, "Circuit Statistics", catalog.CircuitAnalysis)
	if err != nil {
		return nil, err
	}

	return &AnalyticsPanel{Table: t, Chart: &Chart{
		Kind:  ChartBar,
		Title: "Races Held per Circuit",
		X:     "Circuit_Name",
		Y:     []string{"Races_Held"},
		Color: "Location",
		Rows:  t.Rows,
	}}, nil
}

// DNFAnalysis compares finishes and retirements per team.
func (s *Service) DNFAnalysis(ctx context.Context) (*AnalyticsPanel, error) {
	t, err := s.table(ctx, "DNF (Did Not Finish) Analysis", catalog.DNFAnalysis)
	if err != nil {
		return nil, err
	}

	return &AnalyticsPanel{Table: t, Chart: &Chart{
		Kind:  ChartStackedBar,
		Title: "Team Reliability Analysis",
		X:     "Team_Name",
		Y:     []string{"Finished", "DNF"},
		Rows:  t.Rows,
	}}, nil
}

// PointsDistribution shares points between the ten highest scoring drivers.
func (s *Service) PointsDistribution(ctx context.Context) (*AnalyticsPanel, error) {
	t, err := s.table(ctx, "Points Distribution", catalog.PointsDistribution)
	if err != nil {
		return nil, err
	}

	return &AnalyticsPanel{Table: t, Chart: &Chart{
		Kind:  ChartPie,
		Title: fmt.Sprintf("Top %d Drivers - Points Share", topChartSize),
		X:     "Driver_Name",
		Y:     []string{"Total_Points"},
		Rows:  head(t.Rows, topChartSize),
	}}, nil
}

// DriverFunctions evaluates the driver scalar functions for one driver. It returns nil when the
// database yields no row.
func (s *Service) DriverFunctions(ctx context.Context, driverID int64) (*sql.Row, error) {
	if driverID < 1 {
		return nil, invalid("driver id must be at least 1")
	}

	return s.firstRow(ctx, catalog.DriverFunctions, driverID, driverID, driverID, driverID)
}

// TeamFunctions evaluates the team scalar functions for one team.
func (s *Service) TeamFunctions(ctx context.Context, teamID int64) (*sql.Row, error) {
	if teamID < 1 {
		return nil, invalid("team id must be at least 1")
	}

	return s.firstRow(ctx, catalog.TeamFunctions, teamID, teamID)
}

// NamedQueries lists the demonstration queries in menu order.
func (*Service) NamedQueries() []QueryInfo {
	queries := catalog.NamedQueries()
	out := make([]QueryInfo, 0, len(queries))

	for _, q := range queries {
		out = append(out, queryInfo(q))
	}

	return out
}

// RunNamedQuery runs a demonstration query chosen by title or slug. Other names are rejected.
func (s *Service) RunNamedQuery(ctx context.Context, name string) (*QueryResult, error) {
	q, err := catalog.LookupNamedQuery(name)
	if err != nil {
		return nil, &InputError{Cause: err}
	}

	t, err := s.table(ctx, q.String(), q.Statement())
	if err != nil {
		return nil, err
	}

	return &QueryResult{Query: queryInfo(q), Table: t}, nil
}

func queryInfo(q catalog.NamedQuery) QueryInfo {
	return QueryInfo{Name: q.String(), Slug: q.Slug(), Note: q.Note()}
}

// ResultForm loads the choices of the add-result form.
func (s *Service) ResultForm(ctx context.Context) (*ResultForm, error) {
	var (
		form ResultForm
		err  error
	)

	if form.Races, err = s.options(ctx, catalog.RaceOptions); err != nil {
		return nil, err
	}

	if form.Drivers, err = s.options(ctx, catalog.DriverOptions); err != nil {
		return nil, err
	}

	if form.Teams, err = s.options(ctx, catalog.TeamOptions); err != nil {
		return nil, err
	}

	if form.Statuses, err = s.options(ctx, catalog.StatusOptions); err != nil {
		return nil, err
	}

	return &form, nil
}

// NewRaceResult is the input of AddRaceResult. A Position of 0 records a non-classified finish.
type NewRaceResult struct {
	RaceID   int64   `json:"raceId" binding:"required,gt=0" label:"Race"`
	DriverID int64   `json:"driverId" binding:"required,gt=0" label:"Driver"`
	TeamID   int64   `json:"teamId" binding:"required,gt=0" label:"Team"`
	StatusID int64   `json:"statusId" binding:"required,gt=0" label:"Status"`
	Position int     `json:"position" binding:"min=0,max=20" label:"Final position"`
	Grid     int     `json:"grid" binding:"min=1,max=20" label:"Grid position"`
	Points   float64 `json:"points" binding:"min=0,max=26" label:"Points"`
}

// AddRaceResult records a result through the AddRaceResult procedure, sending NULL for position 0.
func (s *Service) AddRaceResult(ctx context.Context, in NewRaceResult) (*Confirmation, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	var position any
	if in.Position > 0 {
		position = in.Position
	}

	affected, err := s.write(ctx, catalog.AddRaceResult, catalog.InsertResult,
		in.RaceID, in.DriverID, in.TeamID, in.StatusID, position, in.Grid, in.Points)
	if err != nil {
		return nil, err
	}

	return &Confirmation{Message: "Race result added successfully!", RowsAffected: affected}, nil
}

// AuditLog filters the latest audit entries. The summary describes the filtered entries.
func (s *Service) AuditLog(ctx context.Context, filter AuditFilter) (*AuditPage, error) {
	rows, err := s.exec.ExecuteQuery(ctx, catalog.LatestAuditEntries, catalog.AuditLimit)
	if err != nil {
		return nil, err
	}

	page := &AuditPage{
		Tables:  distinct(rows, "Table_Name"),
		Actions: distinct(rows, "Action"),
	}

	tables := selection(filter.Tables, page.Tables)
	actions := selection(filter.Actions, page.Actions)

	filtered := sql.ResultSet{}

	for _, r := range rows {
		if tables[r.String("Table_Name")] && actions[r.String("Action")] {
			filtered = append(filtered, r)
		}
	}

	page.Entries = newTable("Audit Log", filtered)
	page.Summary = []Metric{
		{Label: "Total Log Entries", Value: len(filtered)},
		{Label: "Tables Affected", Value: len(distinct(filtered, "Table_Name"))},
		{Label: "Action Types", Value: len(distinct(filtered, "Action"))},
	}

	return page, nil
}

func selection(chosen, all []string) map[string]bool {
	if len(chosen) == 0 {
		chosen = all
	}

	set := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		set[c] = true
	}

	return set
}

// distinct returns the values of column in order of first appearance.
func distinct(rows sql.ResultSet, column string) []string {
	seen := make(map[string]bool)
	out := []string{}

	for _, r := range rows {
		v := r.String(column)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	return out
}

func (s *Service) validate(in any) error {
	if err := s.validator.Struct(in); err != nil {
		return &InputError{Cause: err}
	}

	return nil
}

// write calls procedure, or runs insert on databases that have no stored procedures. The row count is
// nil for procedure calls.
func (s *Service) write(ctx context.Context, procedure, insert string, args ...any) (*int64, error) {
	if s.exec.Dialect() == dialectNoSP {
		res, err := s.exec.ExecuteMutation(ctx, insert, args...)
		if err != nil {
			return nil, err
		}

		return &res.RowsAffected, nil
	}

	if _, err := s.exec.CallProcedure(ctx, procedure, args...); err != nil {
		return nil, err
	}

	return nil, nil
}

func (s *Service) table(ctx context.Context, title, query string, args ...any) (*Table, error) {
	rows, err := s.exec.ExecuteQuery(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return newTable(title, rows), nil
}

func (s *Service) firstRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	rows, err := s.exec.ExecuteQuery(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// options maps rows with ID and Label columns to select options.
func (s *Service) options(ctx context.Context, query string) ([]Option, error) {
	rows, err := s.exec.ExecuteQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]Option, 0, len(rows))
	for _, r := range rows {
		out = append(out, Option{ID: r.Value("ID"), Label: r.String("Label")})
	}

	return out, nil
}

func ranked(rows sql.ResultSet) sql.ResultSet {
	out := make(sql.ResultSet, len(rows))
	for i, r := range rows {
		out[i] = r.With("Rank", int64(i+1))
	}

	return out
}

func head(rows sql.ResultSet, n int) sql.ResultSet {
	if len(rows) > n {
		return rows[:n]
	}

	return rows
}
