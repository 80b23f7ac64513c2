package models

import (
	"database/sql"
	"time"
)

type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}

// CustomerInput is the customer block of a preview submission.
type CustomerInput struct {
	Name    string
	Phone   string
	Address string
}
