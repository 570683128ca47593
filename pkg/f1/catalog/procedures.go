package catalog

// Stored procedures called by the pages.
const (
	GetChampionshipStandings = "GetChampionshipStandings"
	GetDriverStats           = "GetDriverStats"
	GetTeamPerformance       = "GetTeamPerformance"
	GetRaceResults           = "GetRaceResults"
	AddDriver                = "AddDriver"
	AddRaceResult            = "AddRaceResult"
)

// Procedures lists every procedure in the order the pages introduce them.
func Procedures() []string {
	return []string{
		GetChampionshipStandings,
		GetDriverStats,
		GetTeamPerformance,
		GetRaceResults,
		AddDriver,
		AddRaceResult,
	}
}
