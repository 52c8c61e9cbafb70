package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/clanworld/internal/config"
	"github.com/l1jgo/clanworld/internal/core/event"
	coresys "github.com/l1jgo/clanworld/internal/core/system"
	"github.com/l1jgo/clanworld/internal/data"
	"github.com/l1jgo/clanworld/internal/persist"
	"github.com/l1jgo/clanworld/internal/report"
	"github.com/l1jgo/clanworld/internal/scripting"
	"github.com/l1jgo/clanworld/internal/system"
	"github.com/l1jgo/clanworld/internal/world"
)

// errUnmet is returned when a scenario step did not meet its expectation.
var errUnmet = errors.New("scenario expectations not met")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(scenario string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              clanworld  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      clans · areas · groups simulator     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mScenario:\033[0m %s\n\n", scenario)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label, value string) {
	dotsLen := 42 - len(label) - len(value)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printFail(msg string) {
	fmt.Printf("  \033[31m✗\033[0m %s\n", msg)
}

// ── Simulation ─────────────────────────────────────────────────────

func run() error {
	configFlag := flag.String("config", "", "config file (default $CLANWORLD_CONFIG or "+config.DefaultPath+")")
	scenarioFlag := flag.String("scenario", "", "scenario file, overrides [simulation] scenario")
	scriptFlag := flag.String("script", "", "Lua script, overrides [simulation] script")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(config.Path(*configFlag))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *scenarioFlag != "" {
		cfg.Simulation.Scenario = *scenarioFlag
	}
	if *scriptFlag != "" {
		cfg.Simulation.Script = *scriptFlag
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printBanner(cfg.Simulation.Scenario)

	// 3. Load scenario
	printSection("Scenario")
	sc, err := data.LoadScenario(cfg.Simulation.Scenario)
	if err != nil {
		return err
	}
	steps := sc.Expand()
	printStat("Clans", fmt.Sprint(len(sc.Clans)))
	printStat("Areas", fmt.Sprint(len(sc.Areas)))
	printStat("Groups", fmt.Sprint(len(sc.Groups)))
	printStat("Steps", fmt.Sprint(len(steps)))
	fmt.Println()

	// 4. Build world and systems
	bus := event.NewBus()
	w := world.NewWorld(bus, log)

	out, err := report.NewWriter(cfg.Report.Encoding, os.Stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	scenario := system.NewScenarioSystem(w, steps, log)
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(scenario)
	runner.Register(system.NewReportSystem(scenario, out, log))

	// 5. Optional journal
	var journal *system.JournalSystem
	if cfg.Journal.Enabled {
		printSection("Journal")
		var closeDB func()
		journal, closeDB, err = openJournal(ctx, cfg.Journal, bus, log)
		if err != nil {
			return err
		}
		defer closeDB()
		runner.Register(journal)
		fmt.Println()
	}

	// 6. Run scenario, one step per tick
	printSection("Run")
	start := time.Now()
	for !scenario.Done() {
		if err := ctx.Err(); err != nil {
			log.Info("interrupted", zap.Uint64("tick", runner.Ticks()))
			return err
		}
		runner.Tick()
	}

	// 7. Optional script, then drain events and journal batches
	if cfg.Simulation.Script != "" {
		engine := scripting.NewEngine(w, log)
		err := engine.RunFile(cfg.Simulation.Script)
		engine.Close()
		if err != nil {
			return err
		}
		printOK("script " + cfg.Simulation.Script)
	}
	runner.TickPhase(coresys.PhaseDispatch)
	runner.TickPhase(coresys.PhaseReport)
	if journal != nil {
		if err := journal.Flush(ctx); err != nil {
			log.Error("final journal flush failed", zap.Int("pending", journal.Pending()), zap.Error(err))
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	fmt.Println()

	// 8. Summary
	printSection("Summary")
	for _, r := range scenario.Results() {
		if !r.Passed {
			printFail(fmt.Sprintf("step %d %s: got %s, want %s", r.Index, r.Step, orOK(r.Code), orOK(r.Step.Expect)))
		}
	}
	stats := w.Stats()
	printStat("Ticks", fmt.Sprint(runner.Ticks()))
	printStat("Elapsed", time.Since(start).Round(time.Millisecond).String())
	printOK(report.Summary(stats))
	fmt.Println()

	if n := scenario.Failures(); n > 0 {
		return fmt.Errorf("%d of %d steps: %w", n, len(steps), errUnmet)
	}
	return nil
}

func orOK(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}

// openJournal connects, migrates and returns the persist-phase system plus
// a func that closes the pool.
func openJournal(ctx context.Context, cfg config.JournalConfig, bus *event.Bus, log *zap.Logger) (*system.JournalSystem, func(), error) {
	cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(cctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("journal database: %w", err)
	}
	printOK("PostgreSQL connected")

	if err := persist.RunMigrations(cctx, db.Pool); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")

	runID := uuid.NewString()
	printStat("Run", runID)
	repo := persist.NewJournalRepo(db, runID)
	return system.NewJournalSystem(bus, repo, cfg.BatchSize, cfg.FlushTimeout, log), db.Close, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
