package domain

import "time"

// User is an account known to this service. Registration lives elsewhere.
type User struct {
	ID        int64
	Email     string
	Name      *string
	CreatedAt time.Time
}
