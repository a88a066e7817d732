package model

import "time"

// Technician is a member of the maintenance workforce.
type Technician struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	Name           string     `gorm:"size:128;not null" json:"name"`
	Email          string     `gorm:"size:256;not null" json:"email"`
	Phone          string     `gorm:"size:64;not null" json:"phone"`
	Specialization StringList `gorm:"serializer:json" json:"specialization"`
	Status         string     `gorm:"size:32" json:"status"`
	Rating         float64    `json:"rating"`
	CompletedJobs  int        `json:"completed_jobs"`
	ActiveJobs     int        `json:"active_jobs"`
	Certifications StringList `gorm:"serializer:json" json:"certifications"`
	HourlyRate     float64    `json:"hourly_rate"`
	JoinDate       Date       `json:"join_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
