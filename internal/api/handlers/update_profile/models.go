package update_profile

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	Label         string                     `json:"label"`
	Timezone      string                     `json:"timezone"` // IANA таймзона профиля
	WeeklyRules   []models.WeeklyRuleInput   `json:"weeklyRules"`
	DateOverrides []models.DateOverrideInput `json:"dateOverrides"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateProfileRequest) ToServiceRequest(userID, profileID int64) *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		UserID:        userID,
		ProfileID:     profileID,
		Label:         r.Label,
		Timezone:      r.Timezone,
		WeeklyRules:   r.WeeklyRules,
		DateOverrides: r.DateOverrides,
	}
}
