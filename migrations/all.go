// Package migrations provisions the sqlite demo database: the F1 schema, the audit triggers and the
// reference rows. MySQL and postgres deployments ship their own schema, procedures and functions.
package migrations

import (
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/migration"
)

func All() map[int64]migration.Migrate {
	return map[int64]migration.Migrate{
		1717200000: createCoreTables(),
		1717200100: createAuditLog(),
		1717200200: seedReferenceData(),
	}
}
