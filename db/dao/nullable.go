package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

func NullInt64From(ptr *int64) NullInt64 {
	if ptr == nil {
		return NullInt64{}
	}
	return NullInt64{sql.NullInt64{Int64: *ptr, Valid: true}}
}

// Ptr returns nil if null
func (ni *NullInt64) Ptr() *int64 {
	if !ni.NullInt64.Valid {
		return nil
	}
	val := ni.NullInt64.Int64
	return &val
}
