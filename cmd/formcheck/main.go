// formcheck validates one submission against a named form and prints the outcome as JSON.
//
//	echo '{"amount":"120.5"}' | go run ./cmd/formcheck -form withdrawal
//	echo '{"amount":"900"}' | go run ./cmd/formcheck -form loan_request -user <id>
//
// Forms that consult account state need DATABASE_URL. account_verification with -user confirms
// the code against the one issued by -issue-code (shared across runs only with REDIS_ADDR).
// Exit status: 0 accepted, 1 rejected, 2 error.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mpesa-forms/backend/internal/config"
	"mpesa-forms/backend/internal/db"
	"mpesa-forms/backend/internal/forms"
	"mpesa-forms/backend/internal/logger"
	"mpesa-forms/backend/internal/lookup"
	mpesarepo "mpesa-forms/backend/internal/mpesa/repository"
	savingsrepo "mpesa-forms/backend/internal/savings/repository"
	"mpesa-forms/backend/internal/security"
	otelsetup "mpesa-forms/backend/internal/telemetry/otel"
	userrepo "mpesa-forms/backend/internal/user/repository"
	"mpesa-forms/backend/internal/verification"
)

const (
	exitAccepted = 0
	exitRejected = 1
	exitError    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	formName := flag.String("form", "", "Form to validate (see -list)")
	userID := flag.String("user", "", "Acting user id")
	list := flag.Bool("list", false, "List available forms and exit")
	issue := flag.Bool("issue-code", false, "Issue a verification code for -user and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return exitError
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return exitError
	}
	defer log.Sync()

	ctx := context.Background()
	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.OTLPInsecure)
	if err != nil {
		log.Error("telemetry setup failed", "error", err)
		return exitError
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	tiers, err := cfg.Tiers()
	if err != nil {
		log.Error("loan tiers", "error", err)
		return exitError
	}
	hasher := security.NewHasher(cfg.BcryptCost)
	deps := forms.Deps{Creds: hasher, Tiers: tiers}

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("db open failed", "error", err)
			return exitError
		}
		defer conn.Close()
		accounts := newAccounts(conn)
		deps.Accounts, deps.Savings, deps.Users, deps.Passwords = accounts, accounts, accounts, accounts
	}

	codes, closeCodes, err := newCodeStore(ctx, cfg.RedisAddr)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		return exitError
	}
	defer closeCodes()
	verifier := verification.NewService(codes, cfg.CodeTTL(), cfg.VerificationReturnToClient, nil, log)

	registry := forms.NewRegistry(deps)
	switch {
	case *list:
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
		return exitAccepted
	case *issue:
		issued, err := verifier.Issue(ctx, *userID)
		if err != nil {
			log.Error("issue code failed", "error", err)
			return exitError
		}
		return printJSON(issued)
	}

	raw, err := readValues(os.Stdin)
	if err != nil {
		log.Error("read submission", "error", err)
		return exitError
	}
	fc := forms.Context{UserID: *userID}

	var res result
	if *formName == forms.FormAccountVerification && *userID != "" {
		res = confirmCode(ctx, verifier, *userID, raw)
	} else {
		res = check(ctx, registry, *formName, raw, fc)
	}
	if res.Error != "" {
		log.Error("validation failed", "form", *formName, "error", res.Error)
	}
	if code := printJSON(res); code != exitAccepted {
		return code
	}
	return res.exitCode()
}

func newAccounts(conn *sql.DB) *lookup.Accounts {
	return lookup.NewAccounts(
		userrepo.NewPostgresRepository(conn),
		mpesarepo.NewPostgresRepository(conn),
		savingsrepo.NewPostgresRepository(conn),
	)
}

// newCodeStore returns a Redis-backed store when addr is set, otherwise an in-memory one.
func newCodeStore(ctx context.Context, addr string) (verification.Store, func(), error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return verification.NewMemoryStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return verification.NewRedisStore(client), func() { _ = client.Close() }, nil
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		return exitError
	}
	return exitAccepted
}
