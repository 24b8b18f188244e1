package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email       string   `json:"email"       validate:"required"`
	Password    string   `json:"password"    validate:"required"`
	FullName    string   `json:"full_name"   validate:"required"`
	City        string   `json:"city"        validate:"required"`
	Role        string   `json:"role"        validate:"required"`
	Phone       *string  `json:"phone"`
	State       *string  `json:"state"`
	Description *string  `json:"description"`
	Skills      *string  `json:"skills"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// --- Profiles ---

// profileResponse mirrors the profiles row minus password_hash.
// Absent optional columns are rendered as null.
type profileResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	FullName     string   `json:"full_name"`
	Phone        *string  `json:"phone"`
	City         string   `json:"city"`
	State        *string  `json:"state"`
	Description  *string  `json:"description"`
	Skills       *string  `json:"skills"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	MemberSince  int      `json:"member_since"`
	CreatedAt    string   `json:"created_at"`
}

type availabilityResponse struct {
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type reviewResponse struct {
	Rating       float64 `json:"rating"`
	Comment      *string `json:"comment"`
	CreatedAt    string  `json:"created_at"`
	ReviewerName string  `json:"reviewer_name"`
}

type helperDetailResponse struct {
	profileResponse
	Availabilities []availabilityResponse `json:"availabilities"`
	Reviews        []reviewResponse       `json:"reviews"`
}

// --- Jobs ---

type createJobRequest struct {
	ClientID         string   `json:"client_id"          validate:"required"`
	HelperID         string   `json:"helper_id"          validate:"required"`
	ScheduledDate    string   `json:"scheduled_date"     validate:"required"`
	ScheduledStart   string   `json:"scheduled_start"    validate:"required"`
	ScheduledEnd     *string  `json:"scheduled_end"`
	AgreedHourlyRate *float64 `json:"agreed_hourly_rate"`
	TotalAmount      *float64 `json:"total_amount"`
	Details          string   `json:"details"            validate:"required"`
}

type createJobResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type helperJobResponse struct {
	ID             string  `json:"id"`
	ScheduledDate  string  `json:"scheduled_date"`
	ScheduledStart string  `json:"scheduled_start"`
	ScheduledEnd   *string `json:"scheduled_end"`
	Details        string  `json:"details"`
	Status         string  `json:"status"`
	ClientName     string  `json:"client_name"`
	City           string  `json:"city"`
	Phone          *string `json:"phone"`
}
