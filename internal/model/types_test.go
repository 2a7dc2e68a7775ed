package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombination_Key(t *testing.T) {
	tests := []struct {
		name string
		c    Combination
		want string
	}{
		{
			name: "single dimension",
			c:    Combination{"FormatVariation": "json"},
			want: "FormatVariation:json",
		},
		{
			name: "pairs sorted lexicographically",
			c:    Combination{"TemporalDynamics": "static", "FormatVariation": "xml"},
			want: "FormatVariation:xml|TemporalDynamics:static",
		},
		{
			name: "empty combination",
			c:    Combination{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Key())
		})
	}
}

func TestCombination_KeyOrderIndependent(t *testing.T) {
	// Built in different insertion orders, same assignments.
	a := Combination{}
	a["FormatVariation"] = "json"
	a["StructuralArchitecture"] = "hierarchical"
	a["ModelOrchestration"] = "single"

	b := Combination{}
	b["ModelOrchestration"] = "single"
	b["StructuralArchitecture"] = "hierarchical"
	b["FormatVariation"] = "json"

	assert.Equal(t, a.Key(), b.Key())
}

func TestCombination_String(t *testing.T) {
	c := Combination{"FormatVariation": "json"}
	assert.Contains(t, c.String(), "json")
	assert.Contains(t, c.String(), "Format Variation")
}

func TestCombination_Clone(t *testing.T) {
	orig := Combination{"FormatVariation": "json"}
	clone := orig.Clone()
	clone["FormatVariation"] = "xml"

	assert.Equal(t, "FormatVariation:json", orig.Key())
	assert.Equal(t, "FormatVariation:xml", clone.Key())
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusRunning.Terminal())
	assert.True(t, StatusPassed.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusSkipped.Terminal())
	assert.True(t, StatusError.Terminal())
}

func TestAllStatuses(t *testing.T) {
	statuses := AllStatuses()
	assert.Len(t, statuses, 6)
	assert.Contains(t, statuses, StatusSkipped)
}

func TestTestResult_String(t *testing.T) {
	r := &TestResult{
		Combination: Combination{"FormatVariation": "json"},
		Status:      StatusError,
		Duration:    123 * time.Millisecond,
		Message:     "boom",
	}

	s := r.String()
	assert.Contains(t, s, "[ERROR]")
	assert.Contains(t, s, "(0.123s)")
	assert.Contains(t, s, "Error: boom")
}

func TestTestSuite_Lifecycle(t *testing.T) {
	start := time.Now()
	suite := NewTestSuite("lifecycle", start)

	require.NotEmpty(t, suite.ID)
	assert.Equal(t, "lifecycle", suite.Name)
	assert.False(t, suite.Complete())
	assert.True(t, suite.EndTime().IsZero())

	suite.AddResult(&TestResult{Status: StatusPassed})
	suite.AddResult(&TestResult{Status: StatusFailed})
	assert.Equal(t, 2, suite.Len())

	end := start.Add(5 * time.Second)
	suite.MarkComplete(end)
	assert.True(t, suite.Complete())
	assert.Equal(t, end, suite.EndTime())

	// The completion transition happens exactly once.
	suite.MarkComplete(end.Add(time.Hour))
	assert.Equal(t, end, suite.EndTime())
}

func TestTestSuite_ConcurrentAppend(t *testing.T) {
	suite := NewTestSuite("concurrent", time.Now())

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suite.AddResult(&TestResult{Status: StatusPassed})
		}()
	}
	wg.Wait()

	assert.Equal(t, n, suite.Len())
}

func TestTestSuite_ResultsReturnsCopy(t *testing.T) {
	suite := NewTestSuite("copy", time.Now())
	suite.AddResult(&TestResult{Status: StatusPassed})

	results := suite.Results()
	results[0] = nil

	require.Len(t, suite.Results(), 1)
	assert.NotNil(t, suite.Results()[0])
}

func TestNewTestSuite_UniqueIDs(t *testing.T) {
	a := NewTestSuite("a", time.Now())
	b := NewTestSuite("b", time.Now())
	assert.NotEqual(t, a.ID, b.ID)
}
