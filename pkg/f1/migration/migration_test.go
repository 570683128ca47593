package migration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/config"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource/sql"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
)

func newSQLite(t *testing.T) *sql.DB {
	t.Helper()

	cfg := sql.NewDBConfig(config.NewMockConfig(map[string]string{
		"DB_DIALECT":        "sqlite",
		"DB_NAME":           filepath.Join(t.TempDir(), "migrate.db"),
		"DB_MAX_OPEN_CONNS": "1",
	}))

	db := sql.New(cfg, logging.NewFileLogger(""), nil)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func exec(statements ...string) Migrate {
	return Migrate{UP: func(d Datasource) error { return d.Exec(statements...) }}
}

func appliedVersions(t *testing.T, db *sql.DB) []int64 {
	t.Helper()

	rows, err := db.ExecuteQuery(context.Background(), `SELECT version FROM f1_migrations ORDER BY version`)
	require.NoError(t, err)

	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Value("version").(int64))
	}

	return out
}

func TestRun_AppliesInOrderOnce(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()
	logger := logging.NewFileLogger("")

	migrations := map[int64]Migrate{
		2: exec(`INSERT INTO TEAM (Team_Name) VALUES ('Ferrari')`),
		1: exec(`CREATE TABLE TEAM (Team_ID INTEGER PRIMARY KEY, Team_Name TEXT)`),
	}

	require.NoError(t, Run(ctx, migrations, db, logger))
	require.NoError(t, Run(ctx, migrations, db, logger))

	rows, err := db.ExecuteQuery(ctx, `SELECT COUNT(*) AS n FROM TEAM`)
	require.NoError(t, err)

	assert.Equal(t, int64(1), rows[0].Value("n"))
	assert.Equal(t, []int64{1, 2}, appliedVersions(t, db))
}

func TestRun_OnlyNewerVersionsRun(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()
	logger := logging.NewFileLogger("")

	require.NoError(t, Run(ctx, map[int64]Migrate{
		10: exec(`CREATE TABLE CIRCUIT (Circuit_ID INTEGER PRIMARY KEY)`),
	}, db, logger))

	ran := false

	require.NoError(t, Run(ctx, map[int64]Migrate{
		5:  {UP: func(Datasource) error { ran = true; return nil }},
		10: exec(`CREATE TABLE CIRCUIT (Circuit_ID INTEGER PRIMARY KEY)`),
		11: exec(`ALTER TABLE CIRCUIT ADD COLUMN Location TEXT`),
	}, db, logger))

	assert.False(t, ran)
	assert.Equal(t, []int64{10, 11}, appliedVersions(t, db))
}

func TestRun_FailureRollsBack(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()
	errBroken := errors.New("broken migration")

	err := Run(ctx, map[int64]Migrate{
		1: exec(`CREATE TABLE STATUS (Status_ID INTEGER PRIMARY KEY)`),
		2: {UP: func(d Datasource) error {
			if err := d.Exec(`INSERT INTO STATUS (Status_ID) VALUES (1)`); err != nil {
				return err
			}

			return errBroken
		}},
	}, db, logging.NewFileLogger(""))

	require.ErrorIs(t, err, errBroken)

	rows, err := db.ExecuteQuery(ctx, `SELECT COUNT(*) AS n FROM STATUS`)
	require.NoError(t, err)

	assert.Equal(t, int64(0), rows[0].Value("n"))
	assert.Equal(t, []int64{1}, appliedVersions(t, db))
}

func TestRun_MissingUP(t *testing.T) {
	db := newSQLite(t)

	err := Run(context.Background(), map[int64]Migrate{7: {}}, db, logging.NewFileLogger(""))

	require.ErrorIs(t, err, errMissingUP)
	assert.Contains(t, err.Error(), "7")
}

func TestRun_ConnectionUnavailable(t *testing.T) {
	cfg := sql.NewDBConfig(config.NewMockConfig(map[string]string{
		"DB_DIALECT": "sqlite",
		"DB_NAME":    filepath.Join(t.TempDir(), "no", "such", "dir.db"),
	}))

	db := sql.New(cfg, logging.NewFileLogger(""), nil)

	err := Run(context.Background(), map[int64]Migrate{1: exec(`SELECT 1`)}, db, logging.NewFileLogger(""))

	assert.ErrorIs(t, err, sql.ErrConnectionUnavailable)
}
