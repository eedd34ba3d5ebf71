package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycleHooksMerge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{
		OnPhaseEnter: func(context.Context, *PhaseEvent) { calls = append(calls, "a") },
	}
	b := LifecycleHooks{
		OnPhaseEnter: func(context.Context, *PhaseEvent) { calls = append(calls, "b") },
		OnResult:     func(context.Context, *ResultEvent) { calls = append(calls, "b-result") },
	}

	merged := a.Merge(b)
	merged.OnPhaseEnter(context.Background(), &PhaseEvent{})
	merged.OnResult(context.Background(), &ResultEvent{})

	assert.Equal(t, []string{"a", "b", "b-result"}, calls)
	assert.Nil(t, merged.OnLine)
}
