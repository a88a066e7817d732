package service

// Request payloads accepted by the façade. Optional fields are pointers so a
// partial update only touches what the caller sent; the same structs bind
// directly from JSON at the HTTP boundary and are usable from tests.

// ItemCreate is the payload for creating a maintenance item. The id is
// caller-assigned, matching the fleet's existing item numbering.
type ItemCreate struct {
	ID                 string   `json:"id"`
	VehicleID          string   `json:"vehicle_id"`
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	Status             string   `json:"status"`
	Priority           string   `json:"priority"`
	DueDate            string   `json:"due_date"`
	CurrentMileage     *int     `json:"current_mileage"`
	DueMileage         *int     `json:"due_mileage"`
	EstimatedCost      *float64 `json:"estimated_cost"`
	AssignedTo         string   `json:"assigned_to"`
	AssignedTechnician string   `json:"assigned_technician"`
	Notes              string   `json:"notes"`
	PartsNeeded        []string `json:"parts_needed"`
	Attachments        []string `json:"attachments"`
}

// ItemUpdate is a partial update; nil fields keep their stored values.
type ItemUpdate struct {
	Type               *string   `json:"type"`
	Description        *string   `json:"description"`
	Status             *string   `json:"status"`
	Priority           *string   `json:"priority"`
	DueDate            *string   `json:"due_date"`
	ScheduledDate      *string   `json:"scheduled_date"`
	CompletedDate      *string   `json:"completed_date"`
	CurrentMileage     *int      `json:"current_mileage"`
	DueMileage         *int      `json:"due_mileage"`
	EstimatedCost      *float64  `json:"estimated_cost"`
	ActualCost         *float64  `json:"actual_cost"`
	AssignedTo         *string   `json:"assigned_to"`
	AssignedTechnician *string   `json:"assigned_technician"`
	Notes              *string   `json:"notes"`
	PartsNeeded        *[]string `json:"parts_needed"`
	Attachments        *[]string `json:"attachments"`
}

// TechnicianCreate is the payload for adding a technician. The id is
// server-assigned when omitted.
type TechnicianCreate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Specialization []string `json:"specialization"`
	Status         string   `json:"status"`
	Certifications []string `json:"certifications"`
	HourlyRate     *float64 `json:"hourly_rate"`
	JoinDate       string   `json:"join_date"`
}

// TechnicianUpdate is a partial technician update.
type TechnicianUpdate struct {
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Specialization *[]string `json:"specialization"`
	Status         *string   `json:"status"`
	Rating         *float64  `json:"rating"`
	CompletedJobs  *int      `json:"completed_jobs"`
	ActiveJobs     *int      `json:"active_jobs"`
	Certifications *[]string `json:"certifications"`
	HourlyRate     *float64  `json:"hourly_rate"`
}

// PartCreate is the payload for adding an inventory part.
type PartCreate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PartNumber  string   `json:"part_number"`
	Category    string   `json:"category"`
	Quantity    *int     `json:"quantity"`
	MinQuantity *int     `json:"min_quantity"`
	UnitCost    *float64 `json:"unit_cost"`
	Supplier    string   `json:"supplier"`
	Location    string   `json:"location"`
	UsedIn      []string `json:"used_in"`
}

// PartUpdate is a partial part update.
type PartUpdate struct {
	Name        *string   `json:"name"`
	PartNumber  *string   `json:"part_number"`
	Category    *string   `json:"category"`
	Quantity    *int      `json:"quantity"`
	MinQuantity *int      `json:"min_quantity"`
	UnitCost    *float64  `json:"unit_cost"`
	Supplier    *string   `json:"supplier"`
	Location    *string   `json:"location"`
	UsedIn      *[]string `json:"used_in"`
}

// ScheduleCreate is the payload for adding a recurring schedule.
type ScheduleCreate struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	VehicleID         string   `json:"vehicle_id"`
	MaintenanceType   string   `json:"maintenance_type"`
	Description       string   `json:"description"`
	Frequency         string   `json:"frequency"`
	FrequencyValue    *int     `json:"frequency_value"`
	EstimatedCost     *float64 `json:"estimated_cost"`
	EstimatedDuration *float64 `json:"estimated_duration"`
	AssignedTo        string   `json:"assigned_to"`
	IsActive          *bool    `json:"is_active"`
}

// ScheduleUpdate is a partial schedule update.
type ScheduleUpdate struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Frequency         *string  `json:"frequency"`
	FrequencyValue    *int     `json:"frequency_value"`
	EstimatedCost     *float64 `json:"estimated_cost"`
	EstimatedDuration *float64 `json:"estimated_duration"`
	AssignedTo        *string  `json:"assigned_to"`
	IsActive          *bool    `json:"is_active"`
}
