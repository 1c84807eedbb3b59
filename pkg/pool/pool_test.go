package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {

	t.Run("ReturnsResultOfEveryJob", func(t *testing.T) {

		ctx := context.Background()
		p, err := NewPool(ctx, DefaultConfig(4, func(ctx context.Context, job int) (int, error) {
			return job * 2, nil
		}))
		assert.Nil(t, err)

		// act
		p.SendJobs(1, 2, 3, 4, 5)
		sum := 0
		for result := range p.Close() {
			sum += result
		}

		assert.Equal(t, 30, sum)
		assert.Equal(t, 0, len(p.Errors()))
	})

	t.Run("CollectsErrorsOfFailedJobs", func(t *testing.T) {

		ctx := context.Background()
		failure := errors.New("odd job")
		p, err := NewPool(ctx, DefaultConfig(3, func(ctx context.Context, job int) (int, error) {
			if job%2 == 1 {
				return 0, failure
			}
			return job, nil
		}))
		assert.Nil(t, err)

		// act
		p.SendJobs(1, 2, 3, 4)
		results := 0
		for range p.Close() {
			results++
		}
		jobErrors := p.Errors()

		assert.Equal(t, 2, results)
		assert.Equal(t, 2, len(jobErrors))
		for _, jobErr := range jobErrors {
			assert.True(t, errors.Is(jobErr, failure))
		}
	})

	t.Run("RetriesFailedJobsUpToMaxRetry", func(t *testing.T) {

		ctx := context.Background()
		var attempts int32
		p, err := NewPool(ctx, NewConfig(1, 10, 10, 2, false, func(ctx context.Context, job string) (string, error) {
			if atomic.AddInt32(&attempts, 1) < 3 {
				return "", errors.New("flaky")
			}
			return job, nil
		}))
		assert.Nil(t, err)

		// act
		p.SendJobs("flush")
		results := []string{}
		for result := range p.Close() {
			results = append(results, result)
		}

		assert.Equal(t, []string{"flush"}, results)
		assert.Equal(t, 0, len(p.Errors()))
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("RecoversPanickingJobWhenHandlePanicIsSet", func(t *testing.T) {

		ctx := context.Background()
		p, err := NewPool(ctx, NewConfig(1, 10, 10, 0, true, func(ctx context.Context, job int) (int, error) {
			if job == 0 {
				panic("boom")
			}
			return job, nil
		}))
		assert.Nil(t, err)

		// act
		p.SendJobs(0, 1)
		results := 0
		for range p.Close() {
			results++
		}

		assert.Equal(t, 1, results)
		assert.Equal(t, 1, len(p.Errors()))
	})

	t.Run("ReturnsErrorForInvalidConfig", func(t *testing.T) {

		// act
		_, err := NewPool(context.Background(), DefaultConfig[int, int](0, nil))

		assert.NotNil(t, err)
	})
}

func TestResults(t *testing.T) {

	t.Run("CanBeDrainedWhileJobsAreSentConcurrently", func(t *testing.T) {

		ctx := context.Background()
		p, err := NewPool(ctx, NewConfig(2, 1, 1, 0, false, func(ctx context.Context, job int) (int, error) {
			return job, nil
		}))
		assert.Nil(t, err)

		// act
		go func() {
			p.SendJobs(1, 2, 3, 4, 5, 6, 7, 8)
			p.Close()
		}()
		count := 0
		for range p.Results() {
			count++
		}

		assert.Equal(t, 8, count)
	})
}
