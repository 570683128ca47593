package f1

import (
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/dashboard"
)

func registerDashboardRoutes(root *RouteGroup) {
	root.Group("/api", func(api *RouteGroup) {
		api.GET("/dashboard", dashboardHandler)
		api.GET("/standings", standingsHandler)

		api.Group("/drivers", func(g *RouteGroup) {
			g.GET("/", driversHandler)
			g.POST("/", addDriverHandler)
			g.GET("/options", driverOptionsHandler)
			g.GET("/{id}/stats", driverStatsHandler)
		})

		api.Group("/teams", func(g *RouteGroup) {
			g.GET("/", teamsHandler)
			g.GET("/options", teamOptionsHandler)
			g.GET("/{id}/performance", teamPerformanceHandler)
		})

		api.Group("/races", func(g *RouteGroup) {
			g.GET("/options", raceOptionsHandler)
			g.GET("/{id}/results", raceResultsHandler)
		})

		api.Group("/analytics", func(g *RouteGroup) {
			g.GET("/circuits", circuitAnalysisHandler)
			g.GET("/dnf", dnfAnalysisHandler)
			g.GET("/points", pointsDistributionHandler)
		})

		api.Group("/operations", func(g *RouteGroup) {
			g.GET("/functions/driver/{id}", driverFunctionsHandler)
			g.GET("/functions/team/{id}", teamFunctionsHandler)
			g.GET("/queries", namedQueriesHandler)
			g.GET("/queries/{name}", runNamedQueryHandler)
			g.GET("/result-form", resultFormHandler)
		})

		api.POST("/results", addRaceResultHandler)
		api.GET("/audit", auditHandler)
	})
}

func dashboardHandler(c *Context) (any, error) {
	return c.Dashboard.Dashboard(c)
}

func standingsHandler(c *Context) (any, error) {
	year, err := c.Request.IntParam("year", 0)
	if err != nil {
		return nil, err
	}

	return c.Dashboard.Standings(c, year)
}

// driversHandler lists every driver, or only those of one team when ?team= is given.
func driversHandler(c *Context) (any, error) {
	teamID, err := c.Request.IntParam("team", 0)
	if err != nil {
		return nil, err
	}

	if teamID > 0 {
		return c.Dashboard.DriversByTeam(c, int64(teamID))
	}

	return c.Dashboard.Drivers(c)
}

func driverOptionsHandler(c *Context) (any, error) {
	return c.Dashboard.DriverOptions(c)
}

func driverStatsHandler(c *Context) (any, error) {
	id, err := c.Request.IntPathParam("id")
	if err != nil {
		return nil, err
	}

	return c.Dashboard.DriverStats(c, id)
}

func addDriverHandler(c *Context) (any, error) {
	var in dashboard.NewDriver

	if err := c.Bind(&in); err != nil {
		return nil, err
	}

	return c.Dashboard.AddDriver(c, in)
}

func teamsHandler(c *Context) (any, error) {
	return c.Dashboard.Teams(c)
}

func teamOptionsHandler(c *Context) (any, error) {
	return c.Dashboard.TeamOptions(c)
}

func teamPerformanceHandler(c *Context) (any, error) {
	id, err := c.Request.IntPathParam("id")
	if err != nil {
		return nil, err
	}

	return c.Dashboard.TeamPerformance(c, id)
}

func raceOptionsHandler(c *Context) (any, error) {
	return c.Dashboard.RaceOptions(c)
}

func raceResultsHandler(c *Context) (any, error) {
	id, err := c.Request.IntPathParam("id")
	if err != nil {
		return nil, err
	}

	return c.Dashboard.RaceResults(c, id)
}

func circuitAnalysisHandler(c *Context) (any, error) {
	return c.Dashboard.CircuitAnalysis(c)
}

func dnfAnalysisHandler(c *Context) (any, error) {
	return c.Dashboard.DNFAnalysis(c)
}

func pointsDistributionHandler(c *Context) (any, error) {
	return c.Dashboard.PointsDistribution(c)
}

func driverFunctionsHandler(c *Context) (any, error) {
	id, err := c.Request.IntPathParam("id")
	if err != nil {
		return nil, err
	}

	return c.Dashboard.DriverFunctions(c, id)
}

func teamFunctionsHandler(c *Context) (any, error) {
	id, err := c.Request.IntPathParam("id")
	if err != nil {
		return nil, err
	}

	return c.Dashboard.TeamFunctions(c, id)
}

func namedQueriesHandler(c *Context) (any, error) {
	return c.Dashboard.NamedQueries(), nil
}

func runNamedQueryHandler(c *Context) (any, error) {
	return c.Dashboard.RunNamedQuery(c, c.PathParam("name"))
}

func resultFormHandler(c *Context) (any, error) {
	return c.Dashboard.ResultForm(c)
}

func addRaceResultHandler(c *Context) (any, error) {
	var in dashboard.NewRaceResult

	if err := c.Bind(&in); err != nil {
		return nil, err
	}

	return c.Dashboard.AddRaceResult(c, in)
}

func auditHandler(c *Context) (any, error) {
	return c.Dashboard.AuditLog(c, dashboard.AuditFilter{
		Tables:  c.Request.Params("table"),
		Actions: c.Request.Params("action"),
	})
}
