// Package catalog holds every statement and procedure the dashboard pages run. Statements are written
// for MySQL with ? placeholders; the datasource rebinds them for postgres.
package catalog

// Dashboard page.
const (
	CountDrivers = `SELECT COUNT(*) AS count FROM DRIVER`
	CountTeams   = `SELECT COUNT(*) AS count FROM TEAM`
	CountRaces   = `SELECT COUNT(*) AS count FROM RACE`
	CountResults = `SELECT COUNT(*) AS count FROM RESULT`

	TopDrivers = `
		SELECT
			CONCAT(D.First_Name, ' ', D.Last_Name) AS Driver,
			T.Team_Name,
			SUM(R.Points) AS Points,
			COUNT(CASE WHEN R.Position = 1 THEN 1 END) AS Wins
		FROM DRIVER D
		JOIN RESULT R ON D.Driver_ID = R.Driver_ID
		JOIN TEAM T ON R.Team_ID = T.Team_ID
		GROUP BY D.Driver_ID, D.First_Name, D.Last_Name, T.Team_Name
		ORDER BY Points DESC
		LIMIT 5`

	TopTeams = `
		SELECT
			T.Team_Name,
			SUM(R.Points) AS Points,
			COUNT(CASE WHEN R.Position = 1 THEN 1 END) AS Wins
		FROM TEAM T
		JOIN RESULT R ON T.Team_ID = R.Team_ID
		GROUP BY T.Team_ID, T.Team_Name
		ORDER BY Points DESC
		LIMIT 5`

	RecentRaces = `
		SELECT
			RA.Race_Name,
			RA.Venue,
			C.Circuit_Name,
			RA.Year,
			CONCAT(D.First_Name, ' ', D.Last_Name) AS Winner
		FROM RACE RA
		JOIN CIRCUIT C ON RA.Circuit_ID = C.Circuit_ID
		LEFT JOIN RESULT RES ON RA.Race_ID = RES.Race_ID AND RES.Position = 1
		LEFT JOIN DRIVER D ON RES.Driver_ID = D.Driver_ID
		ORDER BY RA.Race_ID DESC
		LIMIT 5`
)

// Standings page.
const TeamStandings = `
	SELECT
		T.Team_Name,
		T.Nationality,
		SUM(R.Points) AS Total_Points,
		COUNT(CASE WHEN R.Position = 1 THEN 1 END) AS Wins,
		COUNT(CASE WHEN R.Position <= 3 THEN 1 END) AS Podiums
	FROM TEAM T
	JOIN RESULT R ON T.Team_ID = R.Team_ID
	JOIN RACE RA ON R.Race_ID = RA.Race_ID
	WHERE RA.Year = ?
	GROUP BY T.Team_ID, T.Team_Name, T.Nationality
	ORDER BY Total_Points DESC`

// Driver and team pages.
const (
	AllDrivers = `
		SELECT
			D.Driver_ID,
			CONCAT(D.First_Name, ' ', D.Last_Name) AS Driver_Name,
			D.DOB,
			TIMESTAMPDIFF(YEAR, D.DOB, CURDATE()) AS Age,
			T.Team_Name
		FROM DRIVER D
		LEFT JOIN TEAM T ON D.Team_ID = T.Team_ID
		ORDER BY D.Driver_ID`

	DriversByTeam = `
		SELECT D.Driver_ID, D.First_Name, D.Last_Name, D.DOB, D.Team_ID
		FROM DRIVER D
		WHERE D.Team_ID = ?
		ORDER BY D.Driver_ID`

	DriverOptions = `SELECT Driver_ID AS ID, CONCAT(First_Name, ' ', Last_Name) AS Label FROM DRIVER ORDER BY First_Name`
	AllTeams      = `SELECT * FROM TEAM ORDER BY Team_Name`
	TeamOptions   = `SELECT Team_ID AS ID, Team_Name AS Label FROM TEAM ORDER BY Team_Name`
	RaceOptions   = `SELECT Race_ID AS ID, CONCAT(Race_Name, ' - ', Year) AS Label FROM RACE ORDER BY Race_ID DESC`
	StatusOptions = `SELECT Status_ID AS ID, Status_description AS Label FROM STATUS ORDER BY Status_ID`
)

// Analytics page.
const (
	CircuitAnalysis = `
		SELECT
			C.Circuit_Name,
			C.Location,
			COUNT(DISTINCT RA.Race_ID) AS Races_Held,
			ROUND(AVG(RES.Points), 2) AS Avg_Points
		FROM CIRCUIT C
		JOIN RACE RA ON C.Circuit_ID = RA.Circuit_ID
		LEFT JOIN RESULT RES ON RA.Race_ID = RES.Race_ID
		GROUP BY C.Circuit_ID, C.Circuit_Name, C.Location
		ORDER BY Races_Held DESC`

	DNFAnalysis = `
		SELECT
			T.Team_Name,
			COUNT(RES.Result_ID) AS Total_Results,
			SUM(CASE WHEN S.Status_description = 'Finished' THEN 1 ELSE 0 END) AS Finished,
			SUM(CASE WHEN S.Status_description != 'Finished' THEN 1 ELSE 0 END) AS DNF,
			ROUND(
				(SUM(CASE WHEN S.Status_description = 'Finished' THEN 1 ELSE 0 END) * 100.0) / COUNT(RES.Result_ID),
				2
			) AS Reliability_Percentage
		FROM TEAM T
		JOIN RESULT RES ON T.Team_ID = RES.Team_ID
		JOIN STATUS S ON RES.Status_ID = S.Status_ID
		GROUP BY T.Team_ID, T.Team_Name
		ORDER BY Reliability_Percentage DESC`

	PointsDistribution = `
		SELECT
			CONCAT(D.First_Name, ' ', D.Last_Name) AS Driver_Name,
			SUM(R.Points) AS Total_Points
		FROM DRIVER D
		JOIN RESULT R ON D.Driver_ID = R.Driver_ID
		GROUP BY D.Driver_ID, D.First_Name, D.Last_Name
		HAVING SUM(R.Points) > 0
		ORDER BY Total_Points DESC`
)

// Database operations page. Ids are bound once per function call.
const (
	DriverFunctions = `
		SELECT
			GetDriverTotalPoints(?) AS Total_Points,
			CountDriverWins(?) AS Wins,
			GetDriverAge(?) AS Age,
			GetBestFinish(?) AS Best_Finish`

	TeamFunctions = `
		SELECT
			GetTeamTotalPoints(?) AS Total_Points,
			CountTeamWins(?) AS Wins`
)

// Audit log page.
const (
	AuditLimit = 50

	LatestAuditEntries = `
		SELECT
			Log_ID,
			Table_Name,
			Action,
			Record_ID,
			Old_Value,
			New_Value,
			Changed_By,
			Changed_At
		FROM AUDIT_LOG
		ORDER BY Changed_At DESC
		LIMIT ?`
)

// Plain inserts used where the database has no stored procedures. They write the same rows as AddDriver
// and AddRaceResult.
const (
	InsertDriver = `INSERT INTO DRIVER (First_Name, Last_Name, DOB, Team_ID) VALUES (?, ?, ?, ?)`
	InsertResult = `
		INSERT INTO RESULT (Race_ID, Driver_ID, Team_ID, Status_ID, Position, Grid, Points)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
)
