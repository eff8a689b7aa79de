package conference

import (
	"time"

	"github.com/frahmantamala/workforce-management/internal/core/common/validation"
)

type ScheduleConferenceDTO struct {
	Title        string    `json:"title"`
	Participants []int64   `json:"participants"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	DurationMins int       `json:"duration_mins,omitempty"`
}

func (dto ScheduleConferenceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("scheduled_at", dto.ScheduledAt).Required().NotPast()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ConferencesResponse struct {
	Conferences []*Conference `json:"conferences"`
}
