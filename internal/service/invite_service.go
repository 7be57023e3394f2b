package service

import (
	"errors"
	"time"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"
	"skillmatrix_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InviteService struct {
	InviteRepo     *repository.InviteRepository
	UserRepo       *repository.UserRepository
	AssessmentRepo *repository.AssessmentRepository
	CatalogRepo    *repository.CatalogRepository
	TTL            time.Duration
}

func NewInviteService(
	inviteRepo *repository.InviteRepository,
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	catalogRepo *repository.CatalogRepository,
	ttlHours int,
) *InviteService {
	return &InviteService{
		InviteRepo:     inviteRepo,
		UserRepo:       userRepo,
		AssessmentRepo: assessmentRepo,
		CatalogRepo:    catalogRepo,
		TTL:            time.Duration(ttlHours) * time.Hour,
	}
}

type PendingInviteView struct {
	ID            uint      `json:"id"`
	AssessmentID  uint      `json:"assessmentId"`
	ComponentID   uint      `json:"componentId"`
	ComponentName string    `json:"componentName"`
	Level         int       `json:"level"`
	InvitedAt     time.Time `json:"invitedAt"`
}

// Create issues an invite for one developer to sit one assessment. At most
// one pending invite may exist per (developer, assessment) pair: the early
// HasPending check gives the common case a clean error, and the unique index
// over open invites enforces the rule when two creates race past it.
func (s *InviteService) Create(developerID, assessmentID uint) (*model.AssessmentInvite, error) {
	developer, err := s.UserRepo.FindByID(developerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	pending, err := s.InviteRepo.HasPending(developerID, assessmentID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, util.ErrDuplicateInvite
	}

	invite := &model.AssessmentInvite{
		DeveloperID:  developerID,
		AssessmentID: assessmentID,
		Status:       model.InvitePending,
	}
	if err := s.InviteRepo.Create(invite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateInvite
		}
		return nil, err
	}

	s.notifyDeveloper(developer, assessment, invite)
	return invite, nil
}

// PendingForDeveloper lists open invites enriched with the assessment's
// component, for the developer's dashboard.
func (s *InviteService) PendingForDeveloper(developerID uint) ([]PendingInviteView, error) {
	invites, err := s.InviteRepo.ListPendingByDeveloper(developerID)
	if err != nil {
		return nil, err
	}

	views := make([]PendingInviteView, 0, len(invites))
	for _, invite := range invites {
		view := PendingInviteView{
			ID:           invite.ID,
			AssessmentID: invite.AssessmentID,
			InvitedAt:    invite.CreatedAt,
		}
		if assessment, err := s.AssessmentRepo.FindByID(invite.AssessmentID); err == nil {
			view.ComponentID = assessment.ComponentID
			view.Level = assessment.Level
			if component, err := s.CatalogRepo.FindComponentByID(assessment.ComponentID); err == nil {
				view.ComponentName = component.Name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// SweepExpired marks pending invites older than the configured TTL as expired.
// Runs periodically from the app loop.
func (s *InviteService) SweepExpired() (int64, error) {
	cutoff := time.Now().Add(-s.TTL)
	expired, err := s.InviteRepo.ExpireOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logger.Log.Info("expired stale invites", zap.Int64("count", expired))
	}
	return expired, nil
}

// notifyDeveloper stands in for the outbound mail integration. Delivery
// failures must never fail invite creation, so this only logs.
func (s *InviteService) notifyDeveloper(developer *model.User, assessment *model.Assessment, invite *model.AssessmentInvite) {
	componentName := ""
	if component, err := s.CatalogRepo.FindComponentByID(assessment.ComponentID); err == nil {
		componentName = component.Name
	}
	logger.Log.Info("assessment invite notification",
		zap.String("email", developer.Email),
		zap.Uint("inviteId", invite.ID),
		zap.String("component", componentName),
		zap.Int("level", assessment.Level),
	)
}
