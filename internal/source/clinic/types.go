package clinic

// AppointmentsResponse is the paginated response from the appointments
// list endpoint.
type AppointmentsResponse struct {
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	Appointments []Appointment `json:"appointments"`
}

// Appointment represents a single appointment in the clinic API.
type Appointment struct {
	ID              string `json:"id"`
	Patient         string `json:"patient"`
	Practitioner    string `json:"practitioner"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
	ScheduledTime   string `json:"scheduled_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Room            string `json:"room"`
	VisitType       string `json:"visit_type"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Profile is the response from the current-user endpoint, used to
// validate credentials.
type Profile struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// ErrorResponse is the error payload the clinic API returns on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
