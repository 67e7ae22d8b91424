package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"algoview/internal/models"
	"algoview/internal/store"
)

type stubCatalog struct {
	problems map[string]*models.Problem
}

func (c *stubCatalog) Get(id string) (*models.Problem, bool) {
	problem, ok := c.problems[id]
	return problem, ok
}

type mockReviewer struct {
	reviewFn func(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview
	calls    int
}

func (m *mockReviewer) Review(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview {
	m.calls++
	if m.reviewFn != nil {
		return m.reviewFn(ctx, code, problem, isFinal)
	}
	return &models.CodeReview{
		Feedback:    "looks fine",
		Bugs:        []string{},
		Suggestions: []string{},
		IsFinal:     isFinal,
	}
}

type mockInjector struct {
	injectFn func(ctx context.Context, realtimeSessionID, content string) error
	contents []string
}

func (m *mockInjector) InjectContext(ctx context.Context, realtimeSessionID, content string) error {
	m.contents = append(m.contents, content)
	if m.injectFn != nil {
		return m.injectFn(ctx, realtimeSessionID, content)
	}
	return nil
}

type fixture struct {
	store    *store.SessionStore
	reviewer *mockReviewer
	injector *mockInjector
	orch     *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    store.NewSessionStore(),
		reviewer: &mockReviewer{},
		injector: &mockInjector{},
	}
	catalog := &stubCatalog{problems: map[string]*models.Problem{
		"two-sum": {ID: "two-sum", Title: "Two Sum", Description: "desc"},
	}}
	f.orch = New(f.store, catalog, f.reviewer, f.injector, 5, 1800*time.Second, zap.NewNop())
	return f
}

func TestCodeUpdateBelowThresholdNoReview(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")

	review := f.orch.HandleCodeUpdate(context.Background(), session.SessionID, "x = 1", 3)

	assert.Nil(t, review)
	assert.Zero(t, f.reviewer.calls)

	// code is still stored even when no review triggers
	code, lines := session.CodeSnapshot()
	assert.Equal(t, "x = 1", code)
	assert.Equal(t, 3, lines)
}

func TestCodeUpdateThresholdScenario(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")
	ctx := context.Background()

	// at exactly the threshold a review triggers
	review := f.orch.HandleCodeUpdate(ctx, session.SessionID, "code", 5)
	require.NotNil(t, review)
	assert.Equal(t, 5, review.LineCount)
	assert.Equal(t, 5, session.LastReviewLine)

	// delta 2 < 5: no new review
	review = f.orch.HandleCodeUpdate(ctx, session.SessionID, "more code", 7)
	assert.Nil(t, review)
	assert.Equal(t, 5, session.LastReviewLine)

	// delta 7 >= 5: new review, baseline moves to 12
	review = f.orch.HandleCodeUpdate(ctx, session.SessionID, "even more", 12)
	require.NotNil(t, review)
	assert.Equal(t, 12, session.LastReviewLine)

	assert.Equal(t, 2, f.reviewer.calls)
	assert.Equal(t, 2, session.ReviewCount())
}

func TestLargePasteTriggersExactlyOneReview(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")

	review := f.orch.HandleCodeUpdate(context.Background(), session.SessionID, "pasted", 50)

	require.NotNil(t, review)
	assert.Equal(t, 1, f.reviewer.calls)
	assert.Equal(t, 50, session.LastReviewLine)
	assert.Equal(t, 1, session.ReviewCount())
}

func TestLineCountDecreaseDoesNotResetBaseline(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")
	ctx := context.Background()

	require.NotNil(t, f.orch.HandleCodeUpdate(ctx, session.SessionID, "a", 10))
	assert.Equal(t, 10, session.LastReviewLine)

	// candidate deletes code; baseline stays at 10
	assert.Nil(t, f.orch.HandleCodeUpdate(ctx, session.SessionID, "b", 4))
	assert.Equal(t, 10, session.LastReviewLine)

	// 14 < 10+5: still no review
	assert.Nil(t, f.orch.HandleCodeUpdate(ctx, session.SessionID, "c", 14))

	// 15 crosses relative to the recorded baseline
	require.NotNil(t, f.orch.HandleCodeUpdate(ctx, session.SessionID, "d", 15))
	assert.Equal(t, 15, session.LastReviewLine)
}

func TestCodeUpdateUnknownSessionIsNoOp(t *testing.T) {
	f := newFixture(t)

	review := f.orch.HandleCodeUpdate(context.Background(), "missing", "code", 100)

	assert.Nil(t, review)
	assert.Zero(t, f.reviewer.calls)
}

func TestSessionDeletedMidReviewDiscardsResult(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")

	f.reviewer.reviewFn = func(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview {
		// simulate deletion while the review call is in flight
		f.store.Delete(session.SessionID)
		return &models.CodeReview{Feedback: "late", IsFinal: isFinal}
	}

	review := f.orch.HandleCodeUpdate(context.Background(), session.SessionID, "code", 10)

	assert.Nil(t, review)
	assert.Equal(t, 1, f.reviewer.calls)
	assert.Empty(t, f.injector.contents)
}

func TestReviewInjectedIntoConversation(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")
	session.SetRealtimeSession("rt-123")

	f.reviewer.reviewFn = func(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview {
		return &models.CodeReview{
			Feedback:    "watch the loop bounds",
			Bugs:        []string{"off-by-one"},
			Suggestions: []string{},
			IsFinal:     isFinal,
		}
	}

	require.NotNil(t, f.orch.HandleCodeUpdate(context.Background(), session.SessionID, "code", 6))

	require.Len(t, f.injector.contents, 1)
	assert.Contains(t, f.injector.contents[0], "[CODE REVIEW UPDATE - Line 6]")
	assert.Contains(t, f.injector.contents[0], "watch the loop bounds")
	assert.Contains(t, f.injector.contents[0], "- off-by-one")
}

func TestInjectionFailureDoesNotFailUpdate(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")
	session.SetRealtimeSession("rt-123")

	f.injector.injectFn = func(ctx context.Context, realtimeSessionID, content string) error {
		return errors.New("realtime unavailable")
	}

	review := f.orch.HandleCodeUpdate(context.Background(), session.SessionID, "code", 8)

	require.NotNil(t, review)
	assert.Equal(t, 1, session.ReviewCount(), "review must be kept despite injection failure")
}

func TestNoInjectionWithoutConversation(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")

	require.NotNil(t, f.orch.HandleCodeUpdate(context.Background(), session.SessionID, "code", 6))

	assert.Empty(t, f.injector.contents)
}

func TestCodeCompletion(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")
	session.SetPhase(models.PhaseCoding)
	session.UpdateCode("final code", 9)

	optimal := false
	f.reviewer.reviewFn = func(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview {
		assert.Equal(t, "final code", code)
		assert.True(t, isFinal)
		return &models.CodeReview{
			Feedback:        "works, not optimal",
			Bugs:            []string{},
			Suggestions:     []string{"use a map"},
			IsFinal:         true,
			TimeComplexity:  "O(n^2)",
			SpaceComplexity: "O(1)",
			IsOptimal:       &optimal,
		}
	}

	review := f.orch.HandleCodeCompletion(context.Background(), session.SessionID)

	require.NotNil(t, review)
	assert.True(t, review.IsFinal)
	assert.Equal(t, 9, review.LineCount)
	assert.Equal(t, models.PhaseEvaluation, session.Phase())
	assert.Equal(t, 1, session.ReviewCount())

	// final reviews do not advance the incremental baseline
	assert.Zero(t, session.LastReviewLine)

	final := session.FinalReview()
	require.NotNil(t, final)
	assert.Equal(t, "works, not optimal", final.Feedback)
}

func TestCodeCompletionForcesEvaluationFromAnyPhase(t *testing.T) {
	phases := []models.InterviewPhase{
		models.PhaseIntroduction,
		models.PhasePlanning,
		models.PhaseComplete,
	}

	for _, phase := range phases {
		f := newFixture(t)
		session := f.store.Create("two-sum")
		session.SetPhase(phase)

		require.NotNil(t, f.orch.HandleCodeCompletion(context.Background(), session.SessionID))
		assert.Equal(t, models.PhaseEvaluation, session.Phase(), "from phase %s", phase)
	}
}

func TestCodeCompletionUnknownSessionIsNoOp(t *testing.T) {
	f := newFixture(t)

	assert.Nil(t, f.orch.HandleCodeCompletion(context.Background(), "missing"))
	assert.Zero(t, f.reviewer.calls)
}

func TestReviewsAreAppendOnly(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")
	ctx := context.Background()

	lastLen := 0
	ops := []func(){
		func() { f.orch.HandleCodeUpdate(ctx, session.SessionID, "a", 5) },
		func() { f.orch.HandleCodeUpdate(ctx, session.SessionID, "b", 6) },
		func() { f.orch.HandleCodeUpdate(ctx, session.SessionID, "c", 11) },
		func() { f.orch.HandleCodeCompletion(ctx, session.SessionID) },
		func() { f.orch.HandleCodeUpdate(ctx, session.SessionID, "d", 2) },
	}
	for i, op := range ops {
		op()
		count := session.ReviewCount()
		assert.GreaterOrEqual(t, count, lastLen, "op %d shrank the review log", i)
		lastLen = count
	}
}

func TestTimeTracking(t *testing.T) {
	f := newFixture(t)
	session := f.store.Create("two-sum")

	base := session.StartTime
	f.orch.now = func() time.Time { return base }

	elapsed, ok := f.orch.ElapsedTime(session.SessionID)
	require.True(t, ok)
	assert.Zero(t, elapsed)

	remaining, ok := f.orch.RemainingTime(session.SessionID)
	require.True(t, ok)
	assert.Equal(t, 1800*time.Second, remaining)
	assert.False(t, f.orch.IsTimeExpired(session.SessionID))

	// halfway through
	f.orch.now = func() time.Time { return base.Add(900 * time.Second) }
	remaining, _ = f.orch.RemainingTime(session.SessionID)
	assert.Equal(t, 900*time.Second, remaining)

	// past the budget: clamped at zero and expired
	f.orch.now = func() time.Time { return base.Add(2000 * time.Second) }
	remaining, _ = f.orch.RemainingTime(session.SessionID)
	assert.Equal(t, time.Duration(0), remaining)
	assert.True(t, f.orch.IsTimeExpired(session.SessionID))

	// expiry does not terminate the session
	_, ok = f.store.Get(session.SessionID)
	assert.True(t, ok)
}

func TestTimeTrackingUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, ok := f.orch.ElapsedTime("missing")
	assert.False(t, ok)
	_, ok = f.orch.RemainingTime("missing")
	assert.False(t, ok)
	assert.False(t, f.orch.IsTimeExpired("missing"))
}
