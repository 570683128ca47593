package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/config"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
)

func sqliteConfig(t *testing.T, extra map[string]string) config.Config {
	t.Helper()

	values := map[string]string{
		"DB_DIALECT": "sqlite",
		"DB_NAME":    filepath.Join(t.TempDir(), "f1.db"),
	}

	for k, v := range extra {
		values[k] = v
	}

	return config.NewMockConfig(values)
}

func TestNewContainer_WiresDependencies(t *testing.T) {
	c := NewContainerWithLogger(sqliteConfig(t, map[string]string{"APP_NAME": "pitwall"}), logging.NewFileLogger(""))
	t.Cleanup(func() { _ = c.Close() })

	require.NotNil(t, c.SQL)
	require.NotNil(t, c.Dashboard)
	assert.Equal(t, "pitwall", c.AppName())
	assert.Equal(t, "sqlite", c.SQL.Dialect())
	assert.Equal(t, 2024, c.Dashboard.ChampionshipYear())
}

func TestNewContainer_ChampionshipYear(t *testing.T) {
	testCases := []struct {
		desc     string
		value    string
		expected int
	}{
		{"configured year", "2021", 2021},
		{"invalid year falls back", "last season", 2024},
		{"unset", "", 2024},
	}

	for i, tc := range testCases {
		c := NewContainerWithLogger(sqliteConfig(t, map[string]string{"CHAMPIONSHIP_YEAR": tc.value}),
			logging.NewFileLogger(""))

		assert.Equalf(t, tc.expected, c.Dashboard.ChampionshipYear(), "TEST[%d] Failed: %s", i, tc.desc)

		_ = c.Close()
	}
}

func TestContainer_Health(t *testing.T) {
	c := NewContainerWithLogger(sqliteConfig(t, nil), logging.NewFileLogger(""))
	t.Cleanup(func() { _ = c.Close() })

	health := c.Health(context.Background())

	assert.Equal(t, "UP", health["status"])
	assert.Equal(t, defaultAppName, health["name"])
}

func TestContainer_HealthDegradedWhenDatabaseIsDown(t *testing.T) {
	cfg := config.NewMockConfig(map[string]string{
		"DB_DIALECT": "sqlite",
		"DB_NAME":    filepath.Join(t.TempDir(), "missing", "dir", "f1.db"),
	})

	c := NewContainerWithLogger(cfg, logging.NewFileLogger(""))
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "DEGRADED", c.Health(context.Background())["status"])
}

func TestContainer_MetricsHandlerExposesFrameworkMetrics(t *testing.T) {
	c := NewContainerWithLogger(sqliteConfig(t, nil), logging.NewFileLogger(""))
	t.Cleanup(func() { _ = c.Close() })

	c.Metrics().IncrementCounter(context.Background(), "app_procedure_calls", "procedure", "GetDriverStats")

	rec := httptest.NewRecorder()
	c.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "app_procedure_calls")
}
