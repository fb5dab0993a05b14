package polling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func TestFixedIntervalStrategy(t *testing.T) {
	strategy := NewFixedIntervalStrategy(30 * time.Second)

	assert.Equal(t, 30*time.Second, strategy.NextInterval(true))
	assert.Equal(t, 30*time.Second, strategy.NextInterval(false))

	strategy.Reset()
	assert.Equal(t, 30*time.Second, strategy.NextInterval(false))
}

func TestExponentialBackoffStrategy(t *testing.T) {
	t.Run("실패가 누적되면 간격이 지수적으로 증가", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 2.0, testLogger())

		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 20*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 40*time.Second, strategy.NextInterval(false))
	})

	t.Run("최대 간격을 넘지 않음", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 25*time.Second, 2.0, testLogger())

		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 20*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 25*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 25*time.Second, strategy.NextInterval(false))
	})

	t.Run("성공하면 기본 간격으로 복귀", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 2.0, testLogger())

		strategy.NextInterval(false)
		strategy.NextInterval(false)

		assert.Equal(t, 10*time.Second, strategy.NextInterval(true))
		// 리셋 후 첫 실패는 다시 기본 간격부터 시작합니다
		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
	})

	t.Run("1 이하 배수는 기본값으로 보정", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 0.5, testLogger())

		strategy.NextInterval(false)
		assert.Equal(t, 20*time.Second, strategy.NextInterval(false))
	})

	t.Run("Reset은 백오프 카운터를 초기화", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 2.0, testLogger())

		strategy.NextInterval(false)
		strategy.NextInterval(false)
		strategy.Reset()

		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
	})
}

func TestPollingController_Start(t *testing.T) {
	t.Run("컨텍스트 취소 시 종료", func(t *testing.T) {
		controller := NewPollingController(NewFixedIntervalStrategy(10*time.Millisecond), testLogger())

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		executed := 0
		err := controller.Start(ctx, func(ctx context.Context) error {
			executed++
			return nil
		})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Greater(t, executed, 0)
	})

	t.Run("패스 실패해도 폴링은 계속", func(t *testing.T) {
		controller := NewPollingController(NewFixedIntervalStrategy(10*time.Millisecond), testLogger())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		executed := 0
		taskErr := errors.New("pass failed")

		done := make(chan error, 1)
		go func() {
			done <- controller.Start(ctx, func(ctx context.Context) error {
				executed++
				if executed >= 3 {
					cancel()
				}
				return taskErr
			})
		}()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("폴링 컨트롤러가 종료되지 않음")
		}

		require.GreaterOrEqual(t, executed, 3)
	})
}
