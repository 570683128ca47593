// Package dashboard turns each page of the F1 dashboard into database calls and view-models that a
// presentation layer can render as tables, metrics and charts.
package dashboard

import (
	"context"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource/sql"
)

//go:generate mockgen -source=executor.go -destination=mock_executor.go -package=dashboard

// Executor runs statements against the database. *sql.DB satisfies it.
type Executor interface {
	ExecuteQuery(ctx context.Context, query string, args ...any) (sql.ResultSet, error)
	CallProcedure(ctx context.Context, name string, args ...any) (sql.ResultSet, error)
	ExecuteMutation(ctx context.Context, statement string, args ...any) (sql.MutationResult, error)
	Dialect() string
}
