package service

import (
	"context"
	"encoding/json"
	"time"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const adminDashboardCacheKey = "dashboard:admin"
const adminDashboardCacheTTL = 60 * time.Second

// DashboardService aggregates read models for the admin and developer views.
// The admin summary is cached in redis for a short window since it scans
// several tables and is hit on every admin page load.
type DashboardService struct {
	UserRepo    *repository.UserRepository
	CatalogRepo *repository.CatalogRepository
	AttemptRepo *repository.AttemptRepository
	SkillRepo   *repository.SkillRepository
	Invites     *InviteService
	Redis       *redis.Client
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	catalogRepo *repository.CatalogRepository,
	attemptRepo *repository.AttemptRepository,
	skillRepo *repository.SkillRepository,
	invites *InviteService,
	rdb *redis.Client,
) *DashboardService {
	return &DashboardService{
		UserRepo:    userRepo,
		CatalogRepo: catalogRepo,
		AttemptRepo: attemptRepo,
		SkillRepo:   skillRepo,
		Invites:     invites,
		Redis:       rdb,
	}
}

type AdminDashboard struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalTeams     int64 `json:"totalTeams"`
	TotalProjects  int64 `json:"totalProjects"`
	PendingReviews int64 `json:"pendingReviews"`
	ActiveAttempts int64 `json:"activeAttempts"`
}

type DeveloperDashboard struct {
	Skills         []SkillSummary        `json:"skills"`
	PendingInvites []PendingInviteView   `json:"pendingInvites"`
	Trajectory     []TrajectoryPoint     `json:"trajectory"`
	RecentAttempts []AttemptHistoryEntry `json:"recentAttempts"`
}

type SkillSummary struct {
	ComponentID   uint       `json:"componentId"`
	ComponentName string     `json:"componentName"`
	CurrentLevel  int        `json:"currentLevel"`
	LastLevelUpAt *time.Time `json:"lastLevelUpAt,omitempty"`
}

type TrajectoryPoint struct {
	ComponentID   uint      `json:"componentId"`
	ComponentName string    `json:"componentName"`
	Level         int       `json:"level"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type AttemptHistoryEntry struct {
	AttemptID      uint                `json:"id"`
	ComponentID    uint                `json:"componentId"`
	ComponentName  string              `json:"componentName"`
	Level          int                 `json:"level"`
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"totalQuestions"`
	Status         model.AttemptStatus `json:"status"`
	Passed         *bool               `json:"passed"`
	StartedAt      time.Time           `json:"startedAt"`
}

// MatrixRow is one developer's levels across every component; components the
// developer never passed appear as level 0.
type MatrixRow struct {
	DeveloperID   uint         `json:"developerId"`
	DeveloperName string       `json:"developerName"`
	Levels        map[uint]int `json:"levels"`
}

type SkillsMatrix struct {
	Components []model.Component `json:"components"`
	Rows       []MatrixRow       `json:"rows"`
}

// Admin returns the admin summary, served from redis when fresh. A cache
// outage degrades to a direct read.
func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, adminDashboardCacheKey).Result(); err == nil {
			var cached AdminDashboard
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	dash := &AdminDashboard{}
	var err error
	if dash.TotalUsers, err = s.UserRepo.Count(); err != nil {
		return nil, err
	}
	if dash.TotalTeams, err = s.CatalogRepo.CountTeams(); err != nil {
		return nil, err
	}
	if dash.TotalProjects, err = s.CatalogRepo.CountProjects(); err != nil {
		return nil, err
	}
	if dash.PendingReviews, err = s.AttemptRepo.CountByStatus(model.AttemptPendingReview); err != nil {
		return nil, err
	}
	if dash.ActiveAttempts, err = s.AttemptRepo.CountByStatus(model.AttemptInProgress); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(dash); err == nil {
			if err := s.Redis.Set(ctx, adminDashboardCacheKey, raw, adminDashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache admin dashboard", zap.Error(err))
			}
		}
	}
	return dash, nil
}

// Developer assembles the self-service view: ledger, open invites, level-up
// timeline and recent attempt history.
func (s *DashboardService) Developer(developerID uint) (*DeveloperDashboard, error) {
	components, err := s.CatalogRepo.ListComponents()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(components))
	for _, c := range components {
		names[c.ID] = c.Name
	}

	skills, err := s.SkillRepo.ListByDeveloper(developerID)
	if err != nil {
		return nil, err
	}
	invites, err := s.Invites.PendingForDeveloper(developerID)
	if err != nil {
		return nil, err
	}
	events, err := s.SkillRepo.TrajectoryByDeveloper(developerID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.AttemptRepo.ListByDeveloper(developerID)
	if err != nil {
		return nil, err
	}

	dash := &DeveloperDashboard{
		Skills:         make([]SkillSummary, 0, len(skills)),
		PendingInvites: invites,
		Trajectory:     make([]TrajectoryPoint, 0, len(events)),
		RecentAttempts: make([]AttemptHistoryEntry, 0, len(attempts)),
	}
	for _, skill := range skills {
		dash.Skills = append(dash.Skills, SkillSummary{
			ComponentID:   skill.ComponentID,
			ComponentName: names[skill.ComponentID],
			CurrentLevel:  skill.CurrentLevel,
			LastLevelUpAt: skill.LastLevelUpAt,
		})
	}
	for _, event := range events {
		dash.Trajectory = append(dash.Trajectory, TrajectoryPoint{
			ComponentID:   event.ComponentID,
			ComponentName: names[event.ComponentID],
			Level:         event.LevelReached,
			OccurredAt:    event.OccurredAt,
		})
	}
	for _, attempt := range attempts {
		dash.RecentAttempts = append(dash.RecentAttempts, AttemptHistoryEntry{
			AttemptID:      attempt.ID,
			ComponentID:    attempt.ComponentID,
			ComponentName:  names[attempt.ComponentID],
			Level:          attempt.Level,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			Status:         attempt.Status,
			Passed:         attempt.Passed,
			StartedAt:      attempt.StartedAt,
		})
	}
	return dash, nil
}

// Matrix builds the full developers-by-components level grid.
func (s *DashboardService) Matrix() (*SkillsMatrix, error) {
	components, err := s.CatalogRepo.ListComponents()
	if err != nil {
		return nil, err
	}
	developers, err := s.UserRepo.ListByRole(model.RoleDeveloper)
	if err != nil {
		return nil, err
	}
	skills, err := s.SkillRepo.ListAll()
	if err != nil {
		return nil, err
	}

	byDeveloper := make(map[uint]map[uint]int, len(developers))
	for _, skill := range skills {
		if byDeveloper[skill.DeveloperID] == nil {
			byDeveloper[skill.DeveloperID] = make(map[uint]int)
		}
		byDeveloper[skill.DeveloperID][skill.ComponentID] = skill.CurrentLevel
	}

	matrix := &SkillsMatrix{
		Components: components,
		Rows:       make([]MatrixRow, 0, len(developers)),
	}
	for _, dev := range developers {
		row := MatrixRow{
			DeveloperID:   dev.ID,
			DeveloperName: dev.FullName,
			Levels:        make(map[uint]int, len(components)),
		}
		for _, c := range components {
			row.Levels[c.ID] = byDeveloper[dev.ID][c.ID]
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix, nil
}
