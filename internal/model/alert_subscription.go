package model

import "time"

// AlertSubscription links a browser push subscription to a vehicle. One row
// exists per (endpoint, vehicle) pair; replacing a subscription swaps the
// whole row set for the endpoint.
type AlertSubscription struct {
	Endpoint  string    `gorm:"primaryKey;size:512"`
	VehicleID string    `gorm:"primaryKey;size:64;index"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
