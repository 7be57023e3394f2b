package service

import (
	"strings"
	"sync"
	"testing"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartConsumesInviteExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 5)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	result, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)
	assert.Len(t, result.Questions, 3)

	stored, err := env.Invites.FindByID(invite.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InviteConsumed, stored.Status)
	assert.NotNil(t, stored.ConsumedAt)

	_, err = env.Attempt.Start(dev.ID, invite.ID)
	assert.ErrorIs(t, err, util.ErrInviteConsumed)
}

func TestStartWithheldAnswers(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 2, 4)
	assessment := env.createAssessment(t, component.ID, 2, 70, 4)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	result, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	for _, q := range result.Questions {
		assert.Equal(t, 2, q.DifficultyLevel)
		assert.Len(t, q.Options, 2)
		assert.NotZero(t, q.ID)
	}
}

func TestStartRejectsOtherDeveloper(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	other := env.createDeveloper(t, "other@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	_, err := env.Attempt.Start(other.ID, invite.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	stored, err := env.Invites.FindByID(invite.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvitePending, stored.Status)
}

func TestStartMissingInvite(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")

	_, err := env.Attempt.Start(dev.ID, 9999)
	assert.ErrorIs(t, err, util.ErrInviteNotFound)
}

func TestStartInsufficientQuestions(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	questions := env.seedMCQ(t, component.ID, 3, 3)
	assessment := env.createAssessment(t, component.ID, 3, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	// Shrink the bank after the assessment was defined.
	require.NoError(t, env.DB.Delete(&questions[0]).Error)

	_, err := env.Attempt.Start(dev.ID, invite.ID)
	assert.ErrorIs(t, err, util.ErrInsufficientQuestions)
}

func TestStartSamplesExactDifficultyOnly(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	// Plenty of easier questions must not count toward a level 4 assessment.
	env.seedMCQ(t, component.ID, 1, 10)
	env.seedMCQ(t, component.ID, 4, 2)
	assessment := env.createAssessment(t, component.ID, 4, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	_, err := env.Attempt.Start(dev.ID, invite.ID)
	assert.ErrorIs(t, err, util.ErrInsufficientQuestions)
}

func TestConcurrentStartsSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 5)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.Attempt.Start(dev.ID, invite.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, util.ErrInviteConsumed)
		}
	}
	assert.Equal(t, 1, succeeded)

	var attempts int64
	require.NoError(t, env.DB.Model(&model.AssessmentAttempt{}).Count(&attempts).Error)
	assert.EqualValues(t, 1, attempts)
}

func TestSubmitAllCorrectCompletesAndLevelsUp(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 2, 4)
	assessment := env.createAssessment(t, component.ID, 2, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, env.answersFor(t, started.AttemptID))
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, result.Status)
	assert.Equal(t, 3, result.Score)
	require.NotNil(t, result.Passed)
	assert.True(t, *result.Passed)

	level, err := env.Skills.CurrentLevel(dev.ID, component.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	events, err := env.SkillRepo.TrajectoryByDeveloper(dev.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].LevelReached)
}

func TestSubmitFailingScore(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	answers := env.answersFor(t, started.AttemptID)
	answers[0].Answer = "wrong"
	answers[1].Answer = "wrong"

	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, answers)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, result.Status)
	assert.Equal(t, 1, result.Score)
	require.NotNil(t, result.Passed)
	assert.False(t, *result.Passed)

	level, err := env.Skills.CurrentLevel(dev.ID, component.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}

func TestSubmitMultipleChoiceIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 100, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	answers := env.answersFor(t, started.AttemptID)
	answers[0].Answer = strings.ToUpper(answers[0].Answer)

	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, answers)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
	require.NotNil(t, result.Passed)
	assert.False(t, *result.Passed)
}

func TestSubmitFillInBlankLeniency(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedFIB(t, component.ID, 1, 2)
	assessment := env.createAssessment(t, component.ID, 1, 100, 2)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	answers := env.answersFor(t, started.AttemptID)
	// Whitespace and casing differences still auto-grade as correct.
	answers[0].Answer = "  " + strings.ToUpper(answers[0].Answer) + " "
	answers[1].Answer = strings.ToLower(answers[1].Answer)

	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, answers)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, result.Status)
	assert.Equal(t, 2, result.Score)
}

func TestSubmitFillInBlankMismatchGoesToReview(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedFIB(t, component.ID, 1, 2)
	assessment := env.createAssessment(t, component.ID, 1, 70, 2)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	answers := env.answersFor(t, started.AttemptID)
	answers[0].Answer = "a different phrasing"

	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, answers)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptPendingReview, result.Status)
	assert.Equal(t, 1, result.Score)
	assert.Nil(t, result.Passed)

	unreviewed, err := env.Attempts.UnreviewedAnswers(started.AttemptID)
	require.NoError(t, err)
	assert.Len(t, unreviewed, 1)
}

func TestSubmitMissingAnswersCountWrong(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	// Submitting with no answers at all still resolves the attempt.
	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, result.Status)
	assert.Equal(t, 0, result.Score)
	require.NotNil(t, result.Passed)
	assert.False(t, *result.Passed)
}

func TestSubmitTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	_, err = env.Attempt.Submit(dev.ID, started.AttemptID, env.answersFor(t, started.AttemptID))
	require.NoError(t, err)

	_, err = env.Attempt.Submit(dev.ID, started.AttemptID, env.answersFor(t, started.AttemptID))
	assert.ErrorIs(t, err, util.ErrAttemptNotInProgress)
}

func TestQuestionsSnapshotSurvivesBankGrowth(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	before, err := env.Attempt.Questions(dev.ID, started.AttemptID)
	require.NoError(t, err)

	env.seedMCQ(t, component.ID, 1, 10)

	after, err := env.Attempt.Questions(dev.ID, started.AttemptID)
	require.NoError(t, err)
	require.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
}

func TestQuestionsRejectsOtherDeveloper(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	other := env.createDeveloper(t, "other@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 1, 3)
	assessment := env.createAssessment(t, component.ID, 1, 70, 3)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	_, err = env.Attempt.Questions(other.ID, started.AttemptID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
