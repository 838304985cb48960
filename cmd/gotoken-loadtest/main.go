package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goToken "github.com/MrEthical07/goToken"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const defaultSecret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWYwMTIzNDU2Nzg5YWJjZGVmMDEyMzQ1Njc4OWFiY2RlZg=="

func main() {
	var (
		subjects    = flag.Int("subjects", 10000, "number of distinct subjects to issue tokens for")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (issue + validate)")
		tamperPct   = flag.Int("tamper-pct", 5, "percentage of validations that use a tampered token")
		audit       = flag.Bool("audit", false, "stream audit events to redis during the run")
		redisAddr   = flag.String("redis-addr", "", "redis address for audit; if empty, REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	if *subjects <= 0 || *concurrency <= 0 || *ops <= 0 || *tamperPct < 0 || *tamperPct > 100 {
		fmt.Fprintln(os.Stderr, "subjects, concurrency, and ops must be > 0; tamper-pct must be 0..100")
		os.Exit(2)
	}

	cfg, err := goToken.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = defaultSecret
	}
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	cfg.Audit.Enabled = *audit

	builder := goToken.New().WithConfig(cfg)

	if *audit {
		client, cleanup, err := auditClient(*redisAddr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()
		builder = builder.WithRedis(client)
	}

	engine, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	fmt.Printf("algorithm %s, %d subjects, %d workers\n", engine.Algorithm(), *subjects, *concurrency)

	names := make([]string, *subjects)
	for i := range names {
		names[i] = fmt.Sprintf("user-%d", i)
	}

	tokens := make([]string, *subjects)
	issueStats := runIssuePhase(engine, names, tokens, *ops, *concurrency)
	if *ops < len(tokens) {
		tokens = tokens[:*ops]
	}
	validateStats := runValidatePhase(engine, tokens, *ops, *concurrency, *tamperPct)

	fmt.Println("---- results ----")
	printStats("issue", issueStats)
	printStats("validate", validateStats)

	snap := engine.MetricsSnapshot()
	fmt.Printf("validate success=%d signature_mismatch=%d audit_dropped=%d\n",
		snap.Counters[goToken.MetricValidateSuccess],
		snap.Counters[goToken.MetricRejectSignatureMismatch],
		engine.AuditDropped(),
	)
}

func auditClient(addr string) (redis.UniversalClient, func(), error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("start miniredis: %w", err)
		}
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{mr.Addr()},
		})
		fmt.Printf("using miniredis at %s\n", mr.Addr())
		return client, func() {
			_ = client.Close()
			mr.Close()
		}, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{addr},
	})
	fmt.Printf("using redis at %s\n", addr)
	return client, func() { _ = client.Close() }, nil
}

// runIssuePhase issues ops tokens, cycling through names. The last token
// issued for each name is kept in tokens for the validate phase.
func runIssuePhase(engine *goToken.Engine, names, tokens []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := i % len(names)
				t0 := time.Now()
				token, err := engine.Issue(names[idx])
				d := time.Since(t0)

				mu.Lock()
				if err != nil {
					failures++
				} else {
					tokens[idx] = token
				}
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runValidatePhase(engine *goToken.Engine, tokens []string, ops, concurrency, tamperPct int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				token := tokens[r.Intn(len(tokens))]
				tampered := r.Intn(100) < tamperPct
				if tampered {
					token = tamper(token)
				}

				t0 := time.Now()
				res := engine.Validate(token)
				d := time.Since(t0)
				if res.Valid() == tampered {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

// tamper replaces the first signature character.
func tamper(token string) string {
	for i := len(token) - 1; i >= 0; i-- {
		if token[i] != '.' {
			continue
		}
		if i+1 >= len(token) {
			return token
		}
		replacement := byte('A')
		if token[i+1] == 'A' {
			replacement = 'B'
		}
		return token[:i+1] + string(replacement) + token[i+2:]
	}
	return token
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
