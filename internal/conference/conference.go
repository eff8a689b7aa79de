package conference

import (
	"strconv"
	"strings"
	"time"

	conferenceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/conference"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusActive    Status = "ACTIVE"
	StatusEnded     Status = "ENDED"
	StatusCancelled Status = "CANCELLED"
)

// Conference is a scheduled video meeting hosted by one user.
type Conference struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	HostID       int64     `json:"host_id"`
	Participants []int64   `json:"participants"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	DurationMins int       `json:"duration_mins"`
	Status       Status    `json:"status"`
	JoinURL      string    `json:"join_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(m *conferenceDatamodel.VideoConference) *Conference {
	return &Conference{
		ID:           m.ID,
		Title:        m.Title,
		HostID:       m.HostID,
		Participants: decodeParticipants(m.Participants),
		ScheduledAt:  m.ScheduledAt,
		DurationMins: m.DurationMins,
		Status:       Status(m.Status),
		JoinURL:      m.JoinURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func encodeParticipants(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func decodeParticipants(s string) []int64 {
	if s == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
