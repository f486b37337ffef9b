package rewrite_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/rewritekit/pkg/rewrite"
)

// recordingEmitter captures emitted lines for assertion.
type recordingEmitter struct {
	lines []string
}

func (e *recordingEmitter) Emit(s string) { e.lines = append(e.lines, s) }
func (e *recordingEmitter) Emitf(format string, args ...any) {
	e.lines = append(e.lines, fmt.Sprintf(format, args...))
}

func TestDebugEmitsMessageAndSubject(t *testing.T) {
	e := &recordingEmitter{}
	s := rewrite.Debug("visiting", e)

	result, ok := s.Apply(41)
	require.True(t, ok)
	assert.Equal(t, 41, result)
	require.Len(t, e.lines, 1)
	assert.Contains(t, e.lines[0], "visiting")
	assert.Contains(t, e.lines[0], "41")
}

func TestLogReportsBothOutcomes(t *testing.T) {
	e := &recordingEmitter{}
	inc := rewrite.Rule(func(n int) (rewrite.Term, bool) { return n + 1, true })

	result, ok := rewrite.Log(inc, "inc", e).Apply(1)
	require.True(t, ok)
	assert.Equal(t, 2, result)
	require.Len(t, e.lines, 1)
	assert.Contains(t, e.lines[0], "inc")
	assert.Contains(t, e.lines[0], "2") // result term appears on success

	_, ok = rewrite.Log(inc, "inc", e).Apply("wrong type")
	assert.False(t, ok)
	require.Len(t, e.lines, 2)
	assert.Contains(t, e.lines[1], "fail")
}

func TestLogFailOnlyReportsFailure(t *testing.T) {
	e := &recordingEmitter{}
	inc := rewrite.Rule(func(n int) (rewrite.Term, bool) { return n + 1, true })
	s := rewrite.LogFail(inc, "inc", e)

	_, ok := s.Apply(1)
	require.True(t, ok)
	assert.Empty(t, e.lines)

	_, ok = s.Apply("wrong type")
	assert.False(t, ok)
	require.Len(t, e.lines, 1)
	assert.Contains(t, e.lines[0], "fail")
}

func TestMemoCachesFailuresToo(t *testing.T) {
	calls := 0
	s := rewrite.Memo(rewrite.FromFunc(func(rewrite.Term) (rewrite.Term, bool) {
		calls++
		return nil, false
	}))

	_, ok := s.Apply(7)
	assert.False(t, ok)
	_, ok = s.Apply(7)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}
