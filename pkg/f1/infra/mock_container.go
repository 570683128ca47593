package infra

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/dashboard"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
)

// Mocks are the doubles behind a mock container.
type Mocks struct {
	Executor *dashboard.MockExecutor
}

// NewMockContainer returns a Container whose dashboard reads from a gomock Executor. SQL is left nil,
// so Health must not be called on it.
func NewMockContainer(t *testing.T) (*Container, *Mocks) {
	t.Helper()

	exec := dashboard.NewMockExecutor(gomock.NewController(t))

	c := &Container{
		Logger:  logging.NewFileLogger(""),
		appName: defaultAppName,
	}

	c.initMetrics()
	c.Dashboard = dashboard.New(exec)

	return c, &Mocks{Executor: exec}
}
