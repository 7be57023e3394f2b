package service

import (
	"testing"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startPendingAttempt drives an attempt into PENDING_REVIEW with every
// fill-in-blank answer mismatched, and returns the attempt id.
func startPendingAttempt(t *testing.T, env *testEnv, devID uint, componentID uint, numQuestions int) uint {
	t.Helper()
	env.seedFIB(t, componentID, 1, numQuestions)
	assessment := env.createAssessment(t, componentID, 1, 70, numQuestions)
	invite := env.createInvite(t, devID, assessment.ID)

	started, err := env.Attempt.Start(devID, invite.ID)
	require.NoError(t, err)

	answers := env.answersFor(t, started.AttemptID)
	for i := range answers {
		answers[i].Answer = "needs a human eye"
	}
	result, err := env.Attempt.Submit(devID, started.AttemptID, answers)
	require.NoError(t, err)
	require.Equal(t, model.AttemptPendingReview, result.Status)

	return started.AttemptID
}

func TestPendingReviewsListsUngradedAnswers(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	attemptID := startPendingAttempt(t, env, dev.ID, component.ID, 2)

	views, err := env.Grading.PendingReviews()
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, attemptID, view.AttemptID)
	assert.Equal(t, dev.Email, view.DeveloperEmail)
	assert.Equal(t, component.Name, view.ComponentName)
	require.Len(t, view.UnreviewedAnswers, 2)
	for _, answer := range view.UnreviewedAnswers {
		assert.Equal(t, "needs a human eye", answer.GivenAnswer)
		assert.NotEmpty(t, answer.QuestionText)
		assert.NotEmpty(t, answer.CorrectAnswer)
	}
}

func TestGradeLastAnswerFinalizesAttempt(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	attemptID := startPendingAttempt(t, env, dev.ID, component.ID, 2)

	unreviewed, err := env.Attempts.UnreviewedAnswers(attemptID)
	require.NoError(t, err)
	require.Len(t, unreviewed, 2)

	require.NoError(t, env.Grading.Grade(unreviewed[0].ID, true))

	// One answer still ungraded, so the attempt stays in review.
	attempt, err := env.Attempts.FindByID(attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptPendingReview, attempt.Status)
	assert.Equal(t, 1, attempt.Score)

	require.NoError(t, env.Grading.Grade(unreviewed[1].ID, true))

	attempt, err = env.Attempts.FindByID(attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, attempt.Status)
	assert.Equal(t, 2, attempt.Score)
	require.NotNil(t, attempt.Passed)
	assert.True(t, *attempt.Passed)
	assert.NotNil(t, attempt.ResolvedAt)

	level, err := env.Skills.CurrentLevel(dev.ID, component.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, level)
}

func TestGradeIncorrectCanStillPassOverall(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	env.seedMCQ(t, component.ID, 3, 4)
	env.seedFIB(t, component.ID, 3, 1)
	assessment := env.createAssessment(t, component.ID, 3, 70, 5)
	invite := env.createInvite(t, dev.ID, assessment.ID)

	started, err := env.Attempt.Start(dev.ID, invite.ID)
	require.NoError(t, err)

	answers := env.answersFor(t, started.AttemptID)
	for i, a := range answers {
		q, err := env.Questions.FindByID(a.QuestionID)
		require.NoError(t, err)
		if q.Type == model.FillInBlank {
			answers[i].Answer = "close but not quite"
		}
	}
	result, err := env.Attempt.Submit(dev.ID, started.AttemptID, answers)
	require.NoError(t, err)
	require.Equal(t, model.AttemptPendingReview, result.Status)
	require.Equal(t, 4, result.Score)

	unreviewed, err := env.Attempts.UnreviewedAnswers(started.AttemptID)
	require.NoError(t, err)
	require.Len(t, unreviewed, 1)

	// 4/5 clears the 70% mark even with the reviewed answer marked wrong.
	require.NoError(t, env.Grading.Grade(unreviewed[0].ID, false))

	attempt, err := env.Attempts.FindByID(started.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, attempt.Status)
	assert.Equal(t, 4, attempt.Score)
	require.NotNil(t, attempt.Passed)
	assert.True(t, *attempt.Passed)

	level, err := env.Skills.CurrentLevel(dev.ID, component.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, level)
}

func TestGradeIncorrectFailsAttempt(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	attemptID := startPendingAttempt(t, env, dev.ID, component.ID, 2)

	unreviewed, err := env.Attempts.UnreviewedAnswers(attemptID)
	require.NoError(t, err)

	require.NoError(t, env.Grading.Grade(unreviewed[0].ID, false))
	require.NoError(t, env.Grading.Grade(unreviewed[1].ID, false))

	attempt, err := env.Attempts.FindByID(attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, attempt.Status)
	assert.Equal(t, 0, attempt.Score)
	require.NotNil(t, attempt.Passed)
	assert.False(t, *attempt.Passed)

	level, err := env.Skills.CurrentLevel(dev.ID, component.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}

func TestGradeSameAnswerTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	dev := env.createDeveloper(t, "dev@example.com")
	component := env.createComponent(t)
	attemptID := startPendingAttempt(t, env, dev.ID, component.ID, 2)

	unreviewed, err := env.Attempts.UnreviewedAnswers(attemptID)
	require.NoError(t, err)

	require.NoError(t, env.Grading.Grade(unreviewed[0].ID, true))
	err = env.Grading.Grade(unreviewed[0].ID, true)
	assert.ErrorIs(t, err, util.ErrAlreadyGraded)

	// The double grade must not double-count the score.
	attempt, err := env.Attempts.FindByID(attemptID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
}

func TestGradeUnknownAnswer(t *testing.T) {
	env := newTestEnv(t)

	err := env.Grading.Grade(12345, true)
	assert.ErrorIs(t, err, util.ErrAnswerNotFound)
}
