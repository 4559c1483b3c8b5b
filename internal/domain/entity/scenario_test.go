package entity

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"not loaded", &NotLoadedError{Page: PageCart, Marker: ".cart_list"}, KindNotLoaded},
		{"not loaded wrapping timeout", &NotLoadedError{Page: PageCart, Err: context.DeadlineExceeded}, KindNotLoaded},
		{"mismatch", Mismatch("total", "$1.00", "$2.00"), KindAssertionMismatch},
		{"rejected", &AuthenticationRejected{Username: "u"}, KindAuthenticationRejected},
		{"transient", Transient("click", errors.New("detached")), KindTransientUI},
		{"timeout", fmt.Errorf("wait: %w", context.DeadlineExceeded), KindTimeout},
		{"other", errors.New("boom"), KindInternal},
		{"staged", &StageError{Stage: PageLogin, Operation: "open", Err: Mismatch("a", "b", "c")}, KindAssertionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestNewOutcome_Passed(t *testing.T) {
	o := NewOutcome("complete-purchase", EngineRod, nil, time.Second)

	assert.True(t, o.Passed())
	assert.Empty(t, o.Kind)
	assert.Empty(t, o.Error)
	assert.Equal(t, time.Second, o.Duration)
}

func TestNewOutcome_StagedMismatch(t *testing.T) {
	err := &StageError{
		Stage:     PageConfirmation,
		Operation: "verify_pricing",
		Err:       Mismatch("total", "Total: $19.42", "Total: $19.47"),
	}

	o := NewOutcome("complete-purchase", EngineChromium, err, time.Second)

	assert.False(t, o.Passed())
	assert.Equal(t, PageConfirmation, o.Stage)
	assert.Equal(t, "verify_pricing", o.Operation)
	assert.Equal(t, KindAssertionMismatch, o.Kind)
	assert.Equal(t, "Total: $19.42", o.Expected)
	assert.Equal(t, "Total: $19.47", o.Actual)
	assert.Contains(t, o.Error, "confirmation.verify_pricing")
}

func TestStageError_Unwraps(t *testing.T) {
	inner := &AuthenticationRejected{Username: "locked_out_user", Message: "locked"}
	err := &StageError{Stage: PageLogin, Operation: "authenticate", Err: inner}

	var rejected *AuthenticationRejected
	assert.True(t, errors.As(err, &rejected))
	assert.ErrorIs(t, err, ErrAuthenticationRejected)
}

func TestSummarize(t *testing.T) {
	outcomes := []ScenarioOutcome{
		{Status: StatusPassed},
		{Status: StatusFailed},
		{Status: StatusPassed},
	}

	s := Summarize(outcomes, time.Minute)
	assert.Equal(t, RunSummary{Total: 3, Passed: 2, Failed: 1, Duration: time.Minute}, s)

	r := &RunResult{Summary: s}
	assert.True(t, r.Failed())
	assert.False(t, (&RunResult{Summary: Summarize(nil, 0)}).Failed())
}

func TestScenarioInfo_HasTag(t *testing.T) {
	info := ScenarioInfo{Name: "sort-by-price", Tags: []Tag{TagSmoke}}
	assert.True(t, info.HasTag(TagSmoke))
	assert.False(t, info.HasTag(TagRegression))
}
