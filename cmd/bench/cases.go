package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client

	// bookingID is set by the booking flow case and read by the persistence checks.
	bookingID string
	sessionID string
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

type chatReply struct {
	Response string `json:"response"`
	Intent   string `json:"intent"`
	Data     *struct {
		BookingID string `json:"booking_id"`
	} `json:"data"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{Name: "Env: Postgres connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.db == nil {
				return Result{Status: StatusSkip, Note: "no dsn"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.db.Ping(ctx); err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Env: Redis connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.redis == nil {
				return Result{Status: StatusSkip, Note: "no redis addr"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.redis.Ping(ctx).Err(); err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Migration: apply", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.ApplyMigration || r.db == nil {
				return Result{Status: StatusSkip, Note: "apply-migration=false or no dsn"}
			}
			sql, err := os.ReadFile(r.cfg.MigrationPath)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			for _, s := range splitSQL(string(sql)) {
				if _, err := r.db.Exec(ctx, s); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Migration: tables exist", Run: func(ctx context.Context, r *Runner) Result {
			if r.db == nil {
				return Result{Status: StatusSkip, Note: "no dsn"}
			}
			tables, err := extractTables(r.cfg.MigrationPath)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			for _, t := range tables {
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)", t,
				).Scan(&exists)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if !exists {
					return Result{Status: StatusFail, Note: "missing table: " + t}
				}
			}
			return Result{Status: StatusPass}
		}},

		statusCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK),
		statusCase("API: restaurants by cuisine", http.MethodGet, base+"/api/restaurants?cuisine=italian", nil, http.StatusOK),
		statusCase("API: chat without session_id -> 400", http.MethodPost, base+"/api/chat", map[string]string{"message": "hi"}, http.StatusBadRequest),
		statusCase("API: unknown booking -> 404", http.MethodGet, base+"/api/bookings/00000000", nil, http.StatusNotFound),

		{Name: "Dialogue: multi-turn booking", Run: func(ctx context.Context, r *Runner) Result {
			r.sessionID = "bench-" + uuid.NewString()
			start := time.Now()
			turns := []string{
				"I want to book a table",
				"The Golden Spoon tomorrow at 7pm",
				"4 people",
			}
			var last chatReply
			for _, msg := range turns {
				reply, err := r.chat(ctx, base, r.sessionID, msg)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				last = reply
			}
			if last.Data == nil || last.Data.BookingID == "" {
				return Result{Status: StatusFail, Latency: time.Since(start), Note: "no booking id: " + last.Response}
			}
			r.bookingID = last.Data.BookingID
			return Result{Status: StatusPass, Latency: time.Since(start), Note: "booking=" + r.bookingID}
		}},
		{Name: "Dialogue: booking lookup", Run: func(ctx context.Context, r *Runner) Result {
			if r.bookingID == "" {
				return Result{Status: StatusSkip, Note: "no booking from previous case"}
			}
			return statusCase("", http.MethodGet, base+"/api/bookings/"+r.bookingID, nil, http.StatusOK).Run(ctx, r)
		}},
		{Name: "Persistence: booking row", Run: func(ctx context.Context, r *Runner) Result {
			if r.db == nil || r.bookingID == "" {
				return Result{Status: StatusSkip, Note: "no dsn or booking"}
			}
			var party int
			err := r.db.QueryRow(ctx, "SELECT party_size FROM bookings WHERE id=$1", r.bookingID).Scan(&party)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			if party != 4 {
				return Result{Status: StatusFail, Note: fmt.Sprintf("party_size=%d", party)}
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Persistence: session in redis", Run: func(ctx context.Context, r *Runner) Result {
			if r.redis == nil || r.sessionID == "" {
				return Result{Status: StatusSkip, Note: "no redis or session"}
			}
			key := "foodiespot:session:" + r.sessionID
			n, err := r.redis.Exists(ctx, key).Result()
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			if n == 0 {
				return Result{Status: StatusFail, Note: "session key missing"}
			}
			ttl, err := r.redis.TTL(ctx, key).Result()
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: StatusPass, Note: "ttl=" + ttl.String()}
		}},
		{Name: "Concurrency: one session, parallel turns", Run: func(ctx context.Context, r *Runner) Result {
			return r.concurrentTurns(ctx, base)
		}},
		{Name: "Perf: chat throughput", Run: func(ctx context.Context, r *Runner) Result {
			return r.perfLoad(ctx, base)
		}},
	}
}

func statusCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			resp, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			latency := time.Since(start)
			if resp.StatusCode != want {
				return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, want)}
			}
			return Result{Status: StatusPass, Latency: latency}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.httpc.Do(req)
}

func (r *Runner) chat(ctx context.Context, base, sessionID, message string) (chatReply, error) {
	var out chatReply
	resp, err := r.do(ctx, http.MethodPost, base+"/api/chat", map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("chat %q: status=%d", message, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// concurrentTurns sends a half-finished booking and then fires the remaining
// details in parallel. Turns on one session are serialized, so exactly one of
// them completes the booking.
func (r *Runner) concurrentTurns(ctx context.Context, base string) Result {
	sid := "bench-" + uuid.NewString()
	if _, err := r.chat(ctx, base, sid, "book a table at Taco Libre tomorrow at 6pm"); err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
		errs      []error
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := r.chat(ctx, base, sid, "2 people")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if reply.Data != nil && reply.Data.BookingID != "" {
				confirmed++
			}
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		return Result{Status: StatusFail, Note: errors.Join(errs...).Error()}
	}
	if confirmed != 1 {
		return Result{Status: StatusFail, Note: fmt.Sprintf("confirmed=%d", confirmed)}
	}
	return Result{Status: StatusPass, Note: fmt.Sprintf("clients=%d confirmed=1", r.cfg.Concurrency)}
}

func (r *Runner) perfLoad(ctx context.Context, base string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sid := "bench-" + uuid.NewString()
			for time.Now().Before(end) && ctx.Err() == nil {
				if _, err := r.chat(ctx, base, sid, "what do you recommend for italian food?"); err != nil {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
