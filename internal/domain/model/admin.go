package model

import "time"

// Admin is a back-office user allowed to manage orders and stock.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
