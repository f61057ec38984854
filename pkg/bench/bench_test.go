package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAllSuccesses(t *testing.T) {
	result := Run(10, func() bool { return true })
	assert.Equal(t, 10, result.Iterations)
	assert.Equal(t, 10, result.Successes)
	assert.Equal(t, 1.0, result.SuccessRate)
	assert.GreaterOrEqual(t, result.MaxMS, result.MinMS)
	assert.GreaterOrEqual(t, result.AvgMS, 0.0)
	assert.GreaterOrEqual(t, result.Throughput, 0.0)
}

func TestRunMixedResults(t *testing.T) {
	calls := 0
	result := Run(4, func() bool {
		calls++
		return calls%2 == 0
	})
	assert.Equal(t, 4, result.Iterations)
	assert.Equal(t, 2, result.Successes)
	assert.Equal(t, 0.5, result.SuccessRate)
}

func TestRunZeroIterations(t *testing.T) {
	result := Run(0, func() bool { return true })
	assert.Equal(t, Result{}, result)
}
