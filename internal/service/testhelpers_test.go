package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"skillmatrix_backend/internal/config"
	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/pkg/database"
	"skillmatrix_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens an isolated in-memory database. A single connection is
// shared so concurrent transactions serialize the way row locks would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	DB         *gorm.DB
	Users      *repository.UserRepository
	Catalog    *repository.CatalogRepository
	Questions  *repository.QuestionRepository
	Assessment *repository.AssessmentRepository
	Invites    *repository.InviteRepository
	Attempts   *repository.AttemptRepository
	SkillRepo  *repository.SkillRepository

	Skills  *SkillService
	Attempt *AttemptService
	Grading *GradingService
	Invite  *InviteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		DB:         db,
		Users:      repository.NewUserRepository(db),
		Catalog:    repository.NewCatalogRepository(db),
		Questions:  repository.NewQuestionRepository(db),
		Assessment: repository.NewAssessmentRepository(db),
		Invites:    repository.NewInviteRepository(db),
		Attempts:   repository.NewAttemptRepository(db),
		SkillRepo:  repository.NewSkillRepository(db),
	}
	env.Skills = NewSkillService(env.SkillRepo, db)
	env.Attempt = NewAttemptService(env.Attempts, env.Invites, env.Assessment, env.Questions, env.Skills, db)
	env.Grading = NewGradingService(env.Attempts, env.Questions, env.Users, env.Catalog, env.Attempt, db)
	env.Invite = NewInviteService(env.Invites, env.Users, env.Assessment, env.Catalog, 14*24)

	return env
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func (e *testEnv) createDeveloper(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:         email,
		FullName:      "Dev " + email,
		Role:          model.RoleDeveloper,
		EmailVerified: true,
		Active:        true,
	}
	require.NoError(t, e.Users.Create(user))
	return user
}

func (e *testEnv) createComponent(t *testing.T) *model.Component {
	t.Helper()
	team := &model.Team{Name: "Platform"}
	require.NoError(t, e.Catalog.CreateTeam(team))
	project := &model.Project{TeamID: team.ID, Name: "Billing"}
	require.NoError(t, e.Catalog.CreateProject(project))
	component := &model.Component{ProjectID: project.ID, Name: "Invoice API", TechStack: "Go"}
	require.NoError(t, e.Catalog.CreateComponent(component))
	return component
}

// seedMCQ adds n multiple-choice questions at the given difficulty. The
// correct answer for question i is "opt-<i>-a".
func (e *testEnv) seedMCQ(t *testing.T, componentID uint, difficulty, n int) []model.Question {
	t.Helper()
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := model.Question{
			ComponentID:     componentID,
			QuestionText:    fmt.Sprintf("mcq %d at level %d", i, difficulty),
			Type:            model.MultipleChoice,
			DifficultyLevel: difficulty,
			CorrectAnswer:   fmt.Sprintf("opt-%d-a", i),
		}
		q.SetOptions([]string{fmt.Sprintf("opt-%d-a", i), fmt.Sprintf("opt-%d-b", i)})
		require.NoError(t, e.Questions.Create(&q))
		questions = append(questions, q)
	}
	return questions
}

func (e *testEnv) seedFIB(t *testing.T, componentID uint, difficulty, n int) []model.Question {
	t.Helper()
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := model.Question{
			ComponentID:     componentID,
			QuestionText:    fmt.Sprintf("fib %d at level %d", i, difficulty),
			Type:            model.FillInBlank,
			DifficultyLevel: difficulty,
			CorrectAnswer:   fmt.Sprintf("Answer %d", i),
		}
		require.NoError(t, e.Questions.Create(&q))
		questions = append(questions, q)
	}
	return questions
}

func (e *testEnv) createAssessment(t *testing.T, componentID uint, level, passMark, numQuestions int) *model.Assessment {
	t.Helper()
	assessment := &model.Assessment{
		ComponentID:        componentID,
		Level:              level,
		PassMarkPercentage: passMark,
		NumberOfQuestions:  numQuestions,
	}
	require.NoError(t, e.Assessment.Create(assessment))
	return assessment
}

func (e *testEnv) createInvite(t *testing.T, developerID, assessmentID uint) *model.AssessmentInvite {
	t.Helper()
	invite := &model.AssessmentInvite{
		DeveloperID:  developerID,
		AssessmentID: assessmentID,
		Status:       model.InvitePending,
	}
	require.NoError(t, e.Invites.Create(invite))
	return invite
}

// answersFor builds a fully correct submission for the attempt's snapshot.
func (e *testEnv) answersFor(t *testing.T, attemptID uint) []SubmitAnswer {
	t.Helper()
	rows, err := e.Attempts.Questions(attemptID)
	require.NoError(t, err)

	answers := make([]SubmitAnswer, 0, len(rows))
	for _, row := range rows {
		q, err := e.Questions.FindByID(row.QuestionID)
		require.NoError(t, err)
		answers = append(answers, SubmitAnswer{QuestionID: q.ID, Answer: q.CorrectAnswer})
	}
	return answers
}
