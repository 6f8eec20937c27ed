// Package testutil provides shared helpers for tests: Redis setup, a fake
// clinic API server and a controllable clock.
package testutil

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTestRedisDB keeps test data away from DB 0, which local tooling tends to use.
const defaultTestRedisDB = 9

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// envBool parses common truthy values from env vars.
func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
}

// redisCandidates lists the addresses probed for a test Redis, in order.
// REDIS_ADDR pins a single address (CI).
func redisCandidates() []string {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		return []string{addr}
	}
	return []string{"localhost:6379", "redis:6379"}
}

func testRedisDB(t TestingTB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(v)
	if err != nil || db < 0 {
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
		return defaultTestRedisDB
	}
	return db
}

func dialRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(err, client.Close())
	}
	return client, nil
}

// SetupTestRedis returns a client on an emptied test DB, closed and flushed when
// the test ends. The test is skipped when no Redis answers, unless
// TEST_REQUIRE_REDIS (or TEST_REQUIRE_INFRA) is set, in which case it fails.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	db := testRedisDB(t)
	var errs []error
	for _, addr := range redisCandidates() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		client, err := dialRedis(ctx, addr, db)
		if err != nil {
			cancel()
			errs = append(errs, err)
			continue
		}
		if err := client.FlushDB(ctx).Err(); err != nil {
			t.Logf("flush test redis db %d at %s: %v", db, addr, err)
		}
		cancel()

		if tc, ok := any(t).(interface{ Cleanup(func()) }); ok {
			tc.Cleanup(func() {
				cctx, ccancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer ccancel()
				_ = client.FlushDB(cctx).Err()
				if cerr := client.Close(); cerr != nil {
					t.Logf("close test redis client: %v", cerr)
				}
			})
		}
		return client
	}

	if envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") {
		t.Fatalf("redis not available for testing: %v", errors.Join(errs...))
	}
	t.Skip("redis not available for testing")
	return nil
}
