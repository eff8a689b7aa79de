package postgres

import (
	"fmt"

	errors "github.com/frahmantamala/workforce-management/internal"
	conferenceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/conference"
	"github.com/frahmantamala/workforce-management/internal/conference"
	"gorm.io/gorm"
)

// ConferenceRepository implements conference.RepositoryAPI using GORM.
type ConferenceRepository struct {
	db *gorm.DB
}

func NewConferenceRepository(db *gorm.DB) conference.RepositoryAPI {
	return &ConferenceRepository{db: db}
}

func (r *ConferenceRepository) Create(c *conferenceDatamodel.VideoConference) error {
	return r.db.Create(c).Error
}

func (r *ConferenceRepository) GetByID(id int64) (*conferenceDatamodel.VideoConference, error) {
	var c conferenceDatamodel.VideoConference
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrConferenceNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetForUser matches the host column or the comma-separated participant list.
func (r *ConferenceRepository) GetForUser(userID int64) ([]*conferenceDatamodel.VideoConference, error) {
	var conferences []*conferenceDatamodel.VideoConference
	id := fmt.Sprintf("%d", userID)
	err := r.db.Where(
		"host_id = ? OR participants = ? OR participants LIKE ? OR participants LIKE ? OR participants LIKE ?",
		userID, id, id+",%", "%,"+id, "%,"+id+",%").
		Order("scheduled_at DESC").
		Find(&conferences).Error
	return conferences, err
}

func (r *ConferenceRepository) Update(c *conferenceDatamodel.VideoConference) error {
	return r.db.Save(c).Error
}
