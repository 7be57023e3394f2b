package repository

import (
	"time"

	"skillmatrix_backend/internal/model"

	"gorm.io/gorm"
)

type InviteRepository struct {
	DB *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{DB: db}
}

func (r *InviteRepository) Create(invite *model.AssessmentInvite) error {
	return r.DB.Create(invite).Error
}

func (r *InviteRepository) FindByID(id uint) (*model.AssessmentInvite, error) {
	var invite model.AssessmentInvite
	if err := r.DB.First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *InviteRepository) HasPending(developerID, assessmentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.AssessmentInvite{}).
		Where("developer_id = ? AND assessment_id = ? AND status = ?", developerID, assessmentID, model.InvitePending).
		Count(&count).Error
	return count > 0, err
}

func (r *InviteRepository) ListPendingByDeveloper(developerID uint) ([]model.AssessmentInvite, error) {
	var invites []model.AssessmentInvite
	err := r.DB.Where("developer_id = ? AND status = ?", developerID, model.InvitePending).
		Order("created_at DESC").Find(&invites).Error
	return invites, err
}

// ExpireOlderThan marks stale pending invites as expired, releasing their
// slot in the one-pending-per-pair index, and reports how many were affected.
func (r *InviteRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	res := r.DB.Model(&model.AssessmentInvite{}).
		Where("status = ? AND created_at < ?", model.InvitePending, cutoff).
		Updates(map[string]interface{}{"status": model.InviteExpired, "pending_flag": nil})
	return res.RowsAffected, res.Error
}
