package db

import (
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDupEntry = 1062

var dupKeyPattern = regexp.MustCompile(`for key '([^']+)'`)

func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry
}

// GetDupKey returns the name of the violated unique key or "" if err is not a duplicate key error
func GetDupKey(err error) string {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlErrDupEntry {
		return ""
	}
	match := dupKeyPattern.FindStringSubmatch(mysqlErr.Message)
	if match == nil {
		return ""
	}
	return match[1]
}
