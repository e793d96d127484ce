package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/lintconf/pkg/pattern"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		rateLimit int
		timeout   time.Duration
		setup     func(*testing.T) []Task
		validate  func(*testing.T, []Result)
		wantErr   bool
	}{
		{
			name:    "glob evaluation per file",
			workers: 4,
			setup: func(t *testing.T) []Task {
				glob, err := pattern.CompileGlob("*/test/*")
				require.NoError(t, err)
				files := []string{
					"/p/src/main/App.kt", "/p/src/test/AppTest.kt",
					"/p/src/main/Util.kt", "/p/src/test/UtilTest.kt",
				}
				tasks := make([]Task, len(files))
				for i, f := range files {
					i, f := i, f
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{ID: i, Data: glob.Match(f)}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				require.Len(t, results, 4)
				var matched []bool
				for _, r := range results {
					matched = append(matched, r.Data.(bool))
				}
				assert.Equal(t, []bool{false, true, false, true}, matched)
			},
		},
		{
			name:    "results keep submission order",
			workers: 4,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 6)
				for i := 0; i < 6; i++ {
					i := i
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							// later tasks finish first
							time.Sleep(time.Duration(6-i) * 10 * time.Millisecond)
							return Result{ID: i, Data: i}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				require.Len(t, results, 6)
				for i, r := range results {
					assert.Equal(t, i, r.ID)
				}
			},
		},
		{
			name:      "rate limited processing",
			workers:   4,
			rateLimit: 10,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 5)
				for i := 0; i < 5; i++ {
					i := i
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{ID: i, Data: i}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				assert.Len(t, results, 5)
			},
		},
		{
			name:    "error handling",
			workers: 2,
			setup: func(t *testing.T) []Task {
				return []Task{
					{
						ID: 1,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{}, errors.New("planned error")
						},
					},
				}
			},
			wantErr: true,
		},
		{
			name:    "context cancellation",
			workers: 2,
			timeout: 200 * time.Millisecond,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 5)
				for i := 0; i < 5; i++ {
					i := i
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							select {
							case <-ctx.Done():
								return Result{}, ctx.Err()
							case <-time.After(2 * time.Second):
								return Result{ID: i, Data: i}, nil
							}
						},
					}
				}
				return tasks
			},
			wantErr: true,
		},
		{
			name:    "concurrent execution",
			workers: 4,
			setup: func(t *testing.T) []Task {
				var concurrent atomic.Int32
				tasks := make([]Task, 8)

				for i := 0; i < 8; i++ {
					i := i
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							current := concurrent.Add(1)
							time.Sleep(50 * time.Millisecond)
							concurrent.Add(-1)
							return Result{ID: i, Data: current}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				require.Len(t, results, 8)
				for _, r := range results {
					assert.LessOrEqual(t, r.Data.(int32), int32(4))
				}
			},
		},
		{
			name:    "more tasks than the queue holds",
			workers: 1,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 50)
				for i := range tasks {
					i := i
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{ID: i}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				assert.Len(t, results, 50)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(Config{
				Workers:   tt.workers,
				RateLimit: tt.rateLimit,
			})
			require.NoError(t, err)

			timeout := tt.timeout
			if timeout == 0 {
				timeout = 5 * time.Second
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			require.NoError(t, pool.Start(ctx))
			defer pool.Stop()

			for _, task := range tt.setup(t) {
				require.NoError(t, pool.Submit(task))
			}

			results, err := pool.Wait()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, results)
		})
	}
}

func TestPoolConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Workers:   4,
				RateLimit: 10,
			},
		},
		{
			name:    "zero workers",
			config:  Config{Workers: 0},
			wantErr: true,
		},
		{
			name:    "negative workers",
			config:  Config{Workers: -1},
			wantErr: true,
		},
		{
			name: "negative rate limit",
			config: Config{
				Workers:   1,
				RateLimit: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, pool)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, pool)
			}
		})
	}
}

func TestPoolLifecycleErrors(t *testing.T) {
	pool, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)

	assert.Error(t, pool.Submit(Task{ID: 1}), "submit before start")
	_, err = pool.Wait()
	assert.Error(t, err, "wait before start")

	require.NoError(t, pool.Start(context.Background()))
	assert.Error(t, pool.Start(context.Background()), "double start")

	_, err = pool.Wait()
	require.NoError(t, err)
	assert.Error(t, pool.Submit(Task{ID: 2}), "submit after wait")

	assert.NoError(t, pool.Stop())
	assert.NoError(t, pool.Stop(), "stop is idempotent")
}

func TestPoolStats(t *testing.T) {
	tests := []struct {
		name           string
		workers        int
		expectedStats  func(Stats) bool
		expectedStatus Status
		setup          func(Pool) error
	}{
		{
			name:    "initial stats",
			workers: 4,
			expectedStats: func(s Stats) bool {
				return s.ActiveWorkers == 0 &&
					s.CompletedTasks == 0 &&
					s.FailedTasks == 0 &&
					s.QueuedTasks == 0
			},
			expectedStatus: StatusIdle,
		},
		{
			name:    "processing stats",
			workers: 2,
			expectedStats: func(s Stats) bool {
				return s.ActiveWorkers > 0 &&
					s.QueuedTasks > 0 &&
					s.Status == StatusProcessing
			},
			expectedStatus: StatusProcessing,
			setup: func(p Pool) error {
				for i := 0; i < 4; i++ {
					err := p.Submit(Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							time.Sleep(200 * time.Millisecond)
							return Result{}, nil
						},
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name:    "completed stats",
			workers: 2,
			expectedStats: func(s Stats) bool {
				return s.CompletedTasks == 2 &&
					s.FailedTasks == 0 &&
					s.QueuedTasks == 0
			},
			expectedStatus: StatusIdle,
			setup: func(p Pool) error {
				for i := 0; i < 2; i++ {
					err := p.Submit(Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{}, nil
						},
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name:    "failed tasks stats",
			workers: 2,
			expectedStats: func(s Stats) bool {
				return s.FailedTasks == 1 && s.CompletedTasks == 0
			},
			expectedStatus: StatusIdle,
			setup: func(p Pool) error {
				return p.Submit(Task{
					ID: 1,
					Execute: func(ctx context.Context) (Result, error) {
						return Result{}, errors.New("planned error")
					},
				})
			},
		},
		{
			name:    "shutdown stats",
			workers: 2,
			expectedStats: func(s Stats) bool {
				return s.Status == StatusStopped && s.ActiveWorkers == 0
			},
			expectedStatus: StatusStopped,
			setup: func(p Pool) error {
				return p.Stop()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(Config{Workers: tt.workers})
			require.NoError(t, err)

			require.NoError(t, pool.Start(context.Background()))
			defer pool.Stop()

			if tt.setup != nil {
				require.NoError(t, tt.setup(pool))
				time.Sleep(50 * time.Millisecond)
			}

			stats := pool.GetStats()
			assert.True(t, tt.expectedStats(stats), "Stats validation failed: %+v", stats)
			assert.Equal(t, tt.expectedStatus, stats.Status)
		})
	}
}

func TestStatsUptime(t *testing.T) {
	pool, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)

	assert.Zero(t, pool.GetStats().Uptime)

	require.NoError(t, pool.Start(context.Background()))
	defer pool.Stop()

	time.Sleep(100 * time.Millisecond)

	stats := pool.GetStats()
	assert.GreaterOrEqual(t, stats.Uptime, 100*time.Millisecond)
}

func TestStatsConcurrency(t *testing.T) {
	pool, err := NewPool(Config{Workers: 4})
	require.NoError(t, err)

	require.NoError(t, pool.Start(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			_ = pool.GetStats()
		}()

		go func(id int) {
			defer wg.Done()
			_ = pool.Submit(Task{
				ID: id,
				Execute: func(ctx context.Context) (Result, error) {
					time.Sleep(10 * time.Millisecond)
					return Result{ID: id}, nil
				},
			})
		}(i)
	}

	wg.Wait()

	results, err := pool.Wait()
	require.NoError(t, err)
	assert.Len(t, results, 10)
}

func TestStatusTransitions(t *testing.T) {
	pool, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, StatusStopped, pool.GetStats().Status)

	require.NoError(t, pool.Start(context.Background()))
	assert.Equal(t, StatusIdle, pool.GetStats().Status)

	err = pool.Submit(Task{
		ID: 1,
		Execute: func(ctx context.Context) (Result, error) {
			time.Sleep(100 * time.Millisecond)
			return Result{}, nil
		},
	})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StatusProcessing, pool.GetStats().Status)

	require.NoError(t, pool.Stop())
	assert.Equal(t, StatusStopped, pool.GetStats().Status)
}

func TestMap(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
		lengths, stats, err := Map(context.Background(), Config{Workers: 3}, words,
			func(ctx context.Context, w string) (int, error) {
				return len(w), nil
			})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 4, 5, 5, 7}, lengths)
		assert.Equal(t, 5, stats.CompletedTasks)
		assert.Zero(t, stats.FailedTasks)
		assert.Zero(t, stats.QueuedTasks)
		assert.Equal(t, StatusShuttingDown, stats.Status)
	})

	t.Run("empty input", func(t *testing.T) {
		out, _, err := Map(context.Background(), Config{Workers: 2}, []int(nil),
			func(ctx context.Context, i int) (int, error) { return i, nil })
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("propagates failures", func(t *testing.T) {
		_, stats, err := Map(context.Background(), Config{Workers: 2}, []int{1, 2, 3},
			func(ctx context.Context, i int) (int, error) {
				if i == 2 {
					return 0, errors.New("two")
				}
				return i, nil
			})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "task 1 failed: two")
		assert.Equal(t, 1, stats.FailedTasks)
		assert.Equal(t, 2, stats.CompletedTasks)
	})

	t.Run("reports a stalled shutdown", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, _, err := Map(ctx, Config{Workers: 1}, make([]int, 10),
			func(ctx context.Context, i int) (int, error) {
				cancel()
				// ignores cancellation and outlives the shutdown grace period
				time.Sleep(time.Second)
				return i, nil
			})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shutting down")
		assert.Contains(t, err.Error(), "failed to stop pool: shutdown timed out")
	})

	t.Run("invalid config", func(t *testing.T) {
		_, _, err := Map(context.Background(), Config{}, []int{1},
			func(ctx context.Context, i int) (int, error) { return i, nil })
		assert.Error(t, err)
	})
}

func TestStopReleasesBlockedSubmit(t *testing.T) {
	pool, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))

	release := make(chan struct{})
	defer close(release)
	slow := Task{
		ID: 0,
		Execute: func(ctx context.Context) (Result, error) {
			<-release
			return Result{}, nil
		},
	}

	// one task occupies the worker and two fill the queue
	for i := 0; i < 3; i++ {
		require.NoError(t, pool.Submit(slow))
	}

	submitted := make(chan error, 1)
	go func() {
		submitted <- pool.Submit(slow)
	}()
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan error, 1)
	go func() {
		stopped <- pool.Stop()
	}()

	select {
	case err := <-submitted:
		assert.ErrorContains(t, err, "shutting down")
	case <-time.After(time.Second):
		t.Fatal("blocked submit was not released by stop")
	}

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop stalled behind a blocked submit")
	}
	assert.Equal(t, StatusStopped, pool.GetStats().Status)
}
