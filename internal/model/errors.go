package model

import "errors"

// ErrNullField is returned by save hooks when a required column is empty.
var ErrNullField = errors.New("required field is empty")

// Tables lists every model the schema is migrated from, parents first.
func Tables() []interface{} {
	return []interface{}{&User{}, &Message{}, &Follow{}, &Activity{}}
}
