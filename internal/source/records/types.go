package records

// EntriesResponse is the paginated response from the record-entries
// endpoint. The feed mixes medical record entries and prescriptions.
type EntriesResponse struct {
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	Entries []Entry `json:"entries"`
}

// Entry is a single item in the EHR feed.
type Entry struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"` // "record" or "prescription"
	Patient      string `json:"patient"`
	Doctor       string `json:"doctor"`
	Diagnosis    string `json:"diagnosis"`
	Treatment    string `json:"treatment"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
	Notes        string `json:"notes"`
	Flagged      bool   `json:"flagged"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Whoami is the response from the session endpoint, used to validate
// credentials.
type Whoami struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
