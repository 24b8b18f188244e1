package handler

import (
	"time"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		City:        req.City,
		Role:        req.Role,
		Phone:       req.Phone,
		State:       req.State,
		Description: req.Description,
		Skills:      req.Skills,
		HourlyRate:  req.HourlyRate,
	}
}

func toCreateJobInput(req createJobRequest, idempotencyKey string) ports.CreateJobInput {
	return ports.CreateJobInput{
		ClientID:         req.ClientID,
		HelperID:         req.HelperID,
		ScheduledDate:    req.ScheduledDate,
		ScheduledStart:   req.ScheduledStart,
		ScheduledEnd:     req.ScheduledEnd,
		AgreedHourlyRate: req.AgreedHourlyRate,
		TotalAmount:      req.TotalAmount,
		Details:          req.Details,
		IdempotencyKey:   idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:           p.ID,
		Email:        p.Email,
		Role:         string(p.Role),
		FullName:     p.FullName,
		Phone:        p.Phone,
		City:         p.City,
		State:        p.State,
		Description:  p.Description,
		Skills:       p.Skills,
		HourlyRate:   p.HourlyRate,
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
		MemberSince:  p.MemberSince,
		CreatedAt:    formatTimestamp(p.CreatedAt),
	}
}

func toProfileListResponse(profiles []domain.Profile) []profileResponse {
	out := make([]profileResponse, len(profiles))
	for i := range profiles {
		out[i] = toProfileResponse(&profiles[i])
	}
	return out
}

func toHelperDetailResponse(hp *domain.HelperProfile) helperDetailResponse {
	avail := make([]availabilityResponse, len(hp.Availabilities))
	for i, a := range hp.Availabilities {
		avail[i] = availabilityResponse{Days: a.Days, StartTime: a.StartTime, EndTime: a.EndTime}
	}

	reviews := make([]reviewResponse, len(hp.Reviews))
	for i, r := range hp.Reviews {
		reviews[i] = reviewResponse{
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    formatTimestamp(r.CreatedAt),
			ReviewerName: r.ReviewerName,
		}
	}

	return helperDetailResponse{
		profileResponse: toProfileResponse(&hp.Profile),
		Availabilities:  avail,
		Reviews:         reviews,
	}
}

func toHelperJobsResponse(jobs []domain.HelperJob) []helperJobResponse {
	out := make([]helperJobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = helperJobResponse{
			ID:             j.ID,
			ScheduledDate:  j.ScheduledDate,
			ScheduledStart: j.ScheduledStart,
			ScheduledEnd:   j.ScheduledEnd,
			Details:        j.Details,
			Status:         string(j.Status),
			ClientName:     j.ClientName,
			City:           j.City,
			Phone:          j.Phone,
		}
	}
	return out
}
