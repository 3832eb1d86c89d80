package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/haukened/rr-query/internal/dns/common/clock"
	"github.com/haukened/rr-query/internal/dns/common/log"
	"github.com/haukened/rr-query/internal/dns/common/rrdata"
	"github.com/haukened/rr-query/internal/dns/config"
	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/gateways/upstream"
	"github.com/haukened/rr-query/internal/dns/gateways/wire"
	"github.com/haukened/rr-query/internal/dns/repos/answercache"
	"github.com/haukened/rr-query/internal/dns/repos/answercache/bloom"
	"github.com/haukened/rr-query/internal/dns/repos/answercache/bolt"
	"github.com/haukened/rr-query/internal/dns/repos/answercache/lru"
	"github.com/haukened/rr-query/internal/dns/services/lookup"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "rr-query"
)

var errUsage = errors.New("usage: " + appName + " NAME [TYPE [CLASS]]")

// Application holds the wired components of a single lookup run.
type Application struct {
	config *config.AppConfig
	lookup *lookup.Service
	cache  answercache.Repository
}

// request is one parsed command line.
type request struct {
	name   string
	rrtype domain.RRType
	class  domain.RRClass
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one lookup and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}

	// Configure global logging
	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "Logging configuration error: %v\n", err)
		return 2
	}

	req, err := parseArgs(args, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	app, err := buildApplication(cfg)
	if err != nil {
		log.Error(map[string]any{"error": err.Error()}, "Failed to build application")
		return 1
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl-C abandons the in-flight lookup
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info(map[string]any{"signal": sig.String()}, "Lookup interrupted")
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	resp, err := app.lookup.Lookup(ctx, req.name, req.rrtype, req.class)
	if err != nil {
		fmt.Fprintf(stderr, ";; lookup %s %s %s failed: %v\n", req.name, req.class, typeString(req.rrtype), err)
		if errors.Is(err, domain.ErrCompressedName) {
			fmt.Fprintln(stderr, ";; compressed response not supported: the upstream server used name compression")
		}
		return 1
	}
	printMessage(stdout, resp)
	fmt.Fprintf(stdout, "\n;; Query time: %d msec\n", time.Since(start).Milliseconds())
	return 0
}

// parseArgs reads NAME [TYPE [CLASS]], falling back to the configured
// type and class.
func parseArgs(args []string, cfg *config.AppConfig) (request, error) {
	if len(args) < 1 || len(args) > 3 || args[0] == "" {
		return request{}, errUsage
	}
	typ, class := cfg.QueryType, cfg.QueryClass
	if len(args) > 1 {
		typ = args[1]
	}
	if len(args) > 2 {
		class = args[2]
	}
	rrtype, err := domain.ParseRRType(typ)
	if err != nil {
		return request{}, err
	}
	rrclass, err := domain.ParseRRClass(class)
	if err != nil {
		return request{}, err
	}
	return request{name: args[0], rrtype: rrtype, class: rrclass}, nil
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	// Create shared clock for consistent time across all components
	clk := &clock.RealClock{}

	// Initialize logger (already configured globally)
	logger := log.GetLogger()

	builder := wire.NewQueryBuilder(wire.BuilderOptions{Logger: logger})

	client, err := upstream.NewResolver(upstream.Options{
		Servers:  cfg.Servers,
		Timeout:  cfg.Timeout,
		Parallel: cfg.Parallel,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	log.Debug(map[string]any{
		"servers":  cfg.Servers,
		"timeout":  cfg.Timeout.String(),
		"parallel": cfg.Parallel,
	}, "Upstream DNS client configured")

	cache, err := buildCache(cfg, clk, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build answer cache: %w", err)
	}

	opts := lookup.Options{
		Builder:  builder,
		Upstream: client,
		Clock:    clk,
		Logger:   logger,
	}
	if cache != nil {
		opts.Cache = cache
	}
	svc, err := lookup.NewService(opts)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, fmt.Errorf("failed to create lookup service: %w", err)
	}

	return &Application{config: cfg, lookup: svc, cache: cache}, nil
}

// buildCache returns nil when caching is disabled.
func buildCache(cfg *config.AppConfig, clk clock.Clock, logger log.Logger) (answercache.Repository, error) {
	if cfg.DisableCache {
		log.Debug(map[string]any{"disabled": true}, "DNS answer caching disabled")
		return nil, nil
	}

	mem, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	var store answercache.Store
	if cfg.CacheDB != "" {
		store, err = bolt.New(cfg.CacheDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache db %s: %w", cfg.CacheDB, err)
		}
	}

	repo, err := answercache.NewRepository(answercache.Options{
		Store:   store,
		Cache:   mem,
		Factory: bloom.NewFactory(),
		FPRate:  cfg.CacheFPRate,
		Clock:   clk,
		Logger:  logger,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}

	log.Debug(map[string]any{
		"size": cfg.CacheSize,
		"db":   cfg.CacheDB,
	}, "DNS answer cache configured")
	return repo, nil
}

// Close releases the answer cache, if any.
func (app *Application) Close() {
	if app.cache == nil {
		return
	}
	stats := app.cache.Stats()
	log.Debug(map[string]any{
		"hits":          stats.Hits,
		"misses":        stats.Misses,
		"bloom_rejects": stats.BloomRejects,
		"expired":       stats.Expired,
	}, "Answer cache stats")
	if err := app.cache.Close(); err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Error closing answer cache")
	}
}

// printMessage writes m in a dig-like layout.
func printMessage(w io.Writer, m domain.Message) {
	h := m.Header
	fmt.Fprintf(w, ";; ->>HEADER<<- opcode: %s, status: %s, id: %d\n", opcodeString(h.Opcode()), m.RCode(), h.ID)
	fmt.Fprintf(w, ";; flags: %s; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		flagString(h), h.QDCount, h.ANCount, h.NSCount, h.ARCount)

	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	if len(m.Questions) > 0 {
		fmt.Fprint(tw, "\n;; QUESTION SECTION:\n")
		for _, q := range m.Questions {
			fmt.Fprintf(tw, ";%s\t%s\t%s\n", q.Name, classString(q.Class), typeString(q.Type))
		}
	}
	for _, sec := range []struct {
		title   string
		records []domain.ResourceRecord
	}{
		{"ANSWER", m.Answers},
		{"AUTHORITY", m.Authority},
		{"ADDITIONAL", m.Additional},
	} {
		if len(sec.records) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n;; %s SECTION:\n", sec.title)
		for _, rr := range sec.records {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", rr.Name, rr.TTL, classString(rr.Class), typeString(rr.Type), rdataString(rr))
		}
	}
	_ = tw.Flush()
}

// rdataString falls back to the generic form when rdata cannot be
// presented, for example when it holds a compressed name.
func rdataString(rr domain.ResourceRecord) string {
	s, err := rrdata.Decode(rr.Type, rr.Data)
	if err != nil {
		return rrdata.DecodeUnknown(rr.Data)
	}
	return s
}

func flagString(h domain.Header) string {
	var flags []string
	if h.IsResponse() {
		flags = append(flags, "qr")
	}
	if h.Authoritative() {
		flags = append(flags, "aa")
	}
	if h.Truncated() {
		flags = append(flags, "tc")
	}
	if h.RecursionDesired() {
		flags = append(flags, "rd")
	}
	if h.RecursionAvailable() {
		flags = append(flags, "ra")
	}
	return strings.Join(flags, " ")
}

func opcodeString(op uint8) string {
	switch op {
	case 0:
		return "QUERY"
	case 1:
		return "IQUERY"
	case 2:
		return "STATUS"
	case 4:
		return "NOTIFY"
	case 5:
		return "UPDATE"
	default:
		return fmt.Sprintf("OPCODE%d", op)
	}
}

// typeString prefers the RFC 3597 form over "UNKNOWN(n)" for output.
func typeString(t domain.RRType) string {
	if t.Known() {
		return t.String()
	}
	return fmt.Sprintf("TYPE%d", t.Code())
}

func classString(c domain.RRClass) string {
	if c.Known() {
		return c.String()
	}
	return fmt.Sprintf("CLASS%d", c.Code())
}
