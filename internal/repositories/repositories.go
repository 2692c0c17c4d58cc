// Package repositories contains the per-entity data access layer.
//
// Every mutation that touches a denormalized counter (roles.count_users,
// majors.count_students) or the audit log runs inside a single transaction
// with row locks on the affected rows, so a crash can never leave the
// counters out of sync with the referencing rows.
package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL duplicate-key error
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
