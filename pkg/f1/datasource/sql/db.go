// Package sql runs the dashboard's reads, stored procedure calls and writes against the relational
// database. A single lazily opened *sql.DB is shared by the whole process; every operation is logged
// and timed.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "github.com/lib/pq"              // postgres driver
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource"
)

var (
	whitespace     = regexp.MustCompile(`\s+`)
	procedureName  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	pingTimeout    = 5 * time.Second
	statsHistogram = "app_sql_stats"
)

// Metrics is the subset of the metrics manager used for SQL statistics.
type Metrics interface {
	IncrementCounter(ctx context.Context, name string, labels ...string)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

// OpenFunc opens a database handle. It is swapped in tests.
type OpenFunc func(driverName, dsn string) (*sql.DB, error)

// DB owns the process-wide database handle.
type DB struct {
	mu   sync.Mutex
	conn *sql.DB
	open OpenFunc

	logger  datasource.Logger
	config  *DBConfig
	metrics Metrics
}

// Option customises a DB.
type Option func(*DB)

// WithOpener replaces the function used to open the handle.
func WithOpener(open OpenFunc) Option {
	return func(d *DB) { d.open = open }
}

// New returns a DB that connects on first use.
func New(cfg *DBConfig, logger datasource.Logger, metrics Metrics, opts ...Option) *DB {
	d := &DB{
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}

	d.open = func(driverName, dsn string) (*sql.DB, error) {
		return otelsql.Open(driverName, dsn, otelsql.WithAttributes(attribute.String("db.system", cfg.Dialect)))
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Log is the debug record written for every SQL operation.
type Log struct {
	Type     string `json:"type"`
	Query    string `json:"query"`
	Duration int64  `json:"duration"`
	Args     []any  `json:"args,omitempty"`
}

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%-32s \u001B[38;5;24m%-6s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s\n",
		l.Type, "SQL", l.Duration, clean(l.Query))
}

func clean(query string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(query, " "))
}

func getOperationType(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	return strings.ToUpper(fields[0])
}

func (d *DB) sendOperationStats(ctx context.Context, start time.Time, queryType, query string, args ...any) {
	duration := time.Since(start).Microseconds()

	if d.logger != nil {
		d.logger.Debug(&Log{
			Type:     queryType,
			Query:    query,
			Duration: duration,
			Args:     args,
		})
	}

	if d.metrics == nil {
		return
	}

	d.metrics.RecordHistogram(ctx, statsHistogram, float64(duration)/float64(time.Millisecond/time.Microsecond),
		"hostname", d.config.HostName, "database", d.config.Database, "type", getOperationType(query))

	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()

	if conn != nil {
		d.metrics.SetGauge("app_sql_open_connections", float64(conn.Stats().OpenConnections))
	}
}

// Dialect reports the configured SQL dialect.
func (d *DB) Dialect() string {
	return d.config.Dialect
}

// Conn returns the shared handle, opening and pinging it on first use. A failed attempt is not
// cached: the next caller tries again, but no call retries on its own.
func (d *DB) Conn(ctx context.Context) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		return d.conn, nil
	}

	driverName, err := d.config.driverName()
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}

	dsn, err := d.config.DSN()
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}

	conn, err := d.open(driverName, dsn)
	if err != nil {
		d.logError("could not open %s database %s: %v", driverName, d.config.Database, err)
		return nil, &ConnectionError{Cause: err}
	}

	conn.SetMaxOpenConns(d.config.MaxOpenConns)
	conn.SetMaxIdleConns(d.config.MaxIdleConns)
	conn.SetConnMaxLifetime(d.config.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()

		d.logError("could not connect to %s at %s: %v", d.config.Database, d.config.HostName, err)

		return nil, &ConnectionError{Cause: err}
	}

	if d.logger != nil {
		d.logger.Infof("connected to %s database '%s' at '%s'", d.config.Dialect, d.config.Database, d.config.HostName)
	}

	d.conn = conn

	return conn, nil
}

func (d *DB) logError(format string, args ...any) {
	if d.logger != nil {
		d.logger.Errorf(format, args...)
	}
}

// ExecuteQuery runs a read and returns every row in database order.
func (d *DB) ExecuteQuery(ctx context.Context, query string, args ...any) (ResultSet, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return nil, err
	}

	query = d.rebind(query)

	defer d.sendOperationStats(ctx, time.Now(), "ExecuteQuery", query, args...)

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		d.logError("error running query: %v", err)
		return nil, &QueryError{Cause: err}
	}

	defer rows.Close()

	result, err := scanAll(rows)
	if err != nil {
		d.logError("error reading rows: %v", err)
		return nil, &QueryError{Cause: err}
	}

	if result == nil {
		result = ResultSet{}
	}

	return result, nil
}

// CallProcedure invokes a stored procedure with positional arguments and concatenates the rows of
// every result set it yields, in yield order. A procedure that yields nothing returns an empty set.
func (d *DB) CallProcedure(ctx context.Context, name string, args ...any) (ResultSet, error) {
	stmt, err := d.procedureStatement(name, len(args))
	if err != nil {
		return nil, &ProcedureError{Name: name, Cause: err}
	}

	conn, err := d.Conn(ctx)
	if err != nil {
		return nil, err
	}

	if d.metrics != nil {
		d.metrics.IncrementCounter(ctx, "app_procedure_calls", "procedure", name)
	}

	defer d.sendOperationStats(ctx, time.Now(), "CallProcedure", stmt, args...)

	rows, err := conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		d.logError("error calling procedure %s: %v", name, err)
		return nil, &ProcedureError{Name: name, Cause: err}
	}

	defer rows.Close()

	result := ResultSet{}

	for {
		set, err := scanAll(rows)
		if err != nil {
			d.logError("error reading result of procedure %s: %v", name, err)
			return nil, &ProcedureError{Name: name, Cause: err}
		}

		result = append(result, set...)

		if !rows.NextResultSet() {
			break
		}
	}

	if err := rows.Err(); err != nil {
		d.logError("error reading result of procedure %s: %v", name, err)
		return nil, &ProcedureError{Name: name, Cause: err}
	}

	return result, nil
}

func (d *DB) procedureStatement(name string, argc int) (string, error) {
	if !procedureName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", errInvalidProcedureName, name)
	}

	placeholders := make([]string, argc)

	switch d.config.Dialect {
	case dialectMySQL:
		for i := range placeholders {
			placeholders[i] = "?"
		}

		return "CALL " + name + "(" + strings.Join(placeholders, ", ") + ")", nil
	case dialectPostgres:
		for i := range placeholders {
			placeholders[i] = "$" + strconv.Itoa(i+1)
		}

		return "SELECT * FROM " + name + "(" + strings.Join(placeholders, ", ") + ")", nil
	case dialectSQLite:
		return "", errNoProcedures
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, d.config.Dialect)
	}
}

// ExecuteMutation runs a write inside a transaction and commits it. When the statement fails nothing
// is committed and the transaction is released.
func (d *DB) ExecuteMutation(ctx context.Context, statement string, args ...any) (MutationResult, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return MutationResult{}, err
	}

	statement = d.rebind(statement)

	defer d.sendOperationStats(ctx, time.Now(), "ExecuteMutation", statement, args...)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		d.logError("error starting transaction: %v", err)
		return MutationResult{}, &MutationError{Cause: err}
	}

	res, err := tx.ExecContext(ctx, statement, args...)
	if err != nil {
		_ = tx.Rollback()

		d.logError("error executing statement: %v", err)

		return MutationResult{}, &MutationError{Cause: err}
	}

	if err := tx.Commit(); err != nil {
		d.logError("error committing statement: %v", err)
		return MutationResult{}, &MutationError{Cause: err}
	}

	var out MutationResult

	// drivers that cannot report these (postgres has no LastInsertId) leave them at zero
	out.RowsAffected, _ = res.RowsAffected()
	out.LastInsertID, _ = res.LastInsertId()

	return out, nil
}

// rebind rewrites ? placeholders to $n for postgres. Statements must not carry literal '?'.
func (d *DB) rebind(query string) string {
	if d.config.Dialect != dialectPostgres {
		return query
	}

	var (
		counter = 1
		out     strings.Builder
	)

	out.Grow(len(query) + 8)

	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			out.WriteByte(query[i])
			continue
		}

		out.WriteByte('$')
		out.WriteString(strconv.Itoa(counter))
		counter++
	}

	return out.String()
}

// Health describes the database for the health endpoint.
type Health struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details"`
}

// HealthCheck pings the database, connecting first when needed.
func (d *DB) HealthCheck(ctx context.Context) Health {
	h := Health{
		Status: "DOWN",
		Details: map[string]any{
			"host":    hostDetail(d.config),
			"dialect": d.config.Dialect,
		},
	}

	conn, err := d.Conn(ctx)
	if err != nil {
		h.Details["error"] = err.Error()
		return h
	}

	if err := conn.PingContext(ctx); err != nil {
		h.Details["error"] = err.Error()
		return h
	}

	h.Status = "UP"
	h.Details["stats"] = conn.Stats()

	return h
}

func hostDetail(c *DBConfig) string {
	if c.Port == "" {
		return c.HostName + "/" + c.Database
	}

	return c.HostName + ":" + c.Port + "/" + c.Database
}

// Close releases the handle if one was opened.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}

	err := d.conn.Close()
	d.conn = nil

	return err
}
