package system

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/instance"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/storage"
	"github.com/julianstephens/journeyline/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Repair problems that can be fixed without losing data."`
}

// checkResult is one diagnostic outcome. A warning does not fail doctor.
type checkResult struct {
	err     error
	warning string
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, res checkResult) {
		switch {
		case res.err != nil:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", res.err)
			logger.Warn("Doctor check failed", "check", name, "error", res.err)
			hasError = true
		case res.warning != "":
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %s\n", res.warning)
		default:
			ctx.Printf("✓ %s: OK\n", name)
		}
	}
	skip := func(name string) {
		ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", name)
	}

	reachable := checkStoreReachable(ctx)
	report("Storage reachable", reachable)

	if reachable.err == nil {
		report("Schema version", checkSchemaVersion(ctx))
		report("Migrations complete", checkMigrationsComplete(ctx))
	} else {
		skip("Schema version")
		skip("Migrations complete")
	}

	report("Knowledge base", checkKnowledgeBase(ctx))

	if reachable.err == nil {
		report("Profile validation", cmd.checkProfiles(ctx))
	} else {
		skip("Profile validation")
	}

	report("Clock", checkClock(ctx.Clock()))
	report("Other journeyline processes", checkProcesses(ctx))

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) checkResult {
	if err := ctx.Store.Load(); err != nil {
		return checkResult{err: fmt.Errorf("failed to load storage: %w", err)}
	}
	if inspector, ok := ctx.Store.(storage.SchemaInspector); ok {
		if err := inspector.Ping(); err != nil {
			return checkResult{err: err}
		}
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return checkResult{err: fmt.Errorf("failed to read settings: %w", err)}
	}
	return checkResult{}
}

func checkSchemaVersion(ctx *cli.Context) checkResult {
	inspector, ok := ctx.Store.(storage.SchemaInspector)
	if !ok {
		return checkResult{}
	}
	current, latest, err := inspector.SchemaVersion()
	if err != nil {
		return checkResult{err: err}
	}
	if current > latest {
		return checkResult{err: fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)}
	}
	return checkResult{}
}

func checkMigrationsComplete(ctx *cli.Context) checkResult {
	inspector, ok := ctx.Store.(storage.SchemaInspector)
	if !ok {
		return checkResult{}
	}
	current, latest, err := inspector.SchemaVersion()
	if err != nil {
		return checkResult{err: err}
	}
	if current < latest {
		return checkResult{err: fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'journeyline migrate')", current, latest)}
	}
	return checkResult{}
}

// checkKnowledgeBase reports content that loaded but was shadowed.
func checkKnowledgeBase(ctx *cli.Context) checkResult {
	if ctx.KB == nil {
		return checkResult{err: fmt.Errorf("knowledge base not loaded")}
	}
	if overridden := ctx.KB.OverriddenFacts(); len(overridden) > 0 {
		return checkResult{warning: fmt.Sprintf("duplicate jurisdiction facts, last entry used: %s", strings.Join(overridden, ", "))}
	}
	return checkResult{}
}

func (cmd *DoctorCmd) checkProfiles(ctx *cli.Context) checkResult {
	ids, err := ctx.Store.ListProfiles()
	if err != nil {
		return checkResult{err: fmt.Errorf("failed to list profiles: %w", err)}
	}

	v := validation.New(ctx.KB)
	var errs, warnings []string
	for _, id := range ids {
		p, found, err := ctx.Store.LoadProfile(id)
		if err != nil {
			return checkResult{err: fmt.Errorf("failed to load profile %s: %w", id, err)}
		}
		if !found {
			continue
		}

		result := v.ValidateProfile(p, ctx.Clock())
		if cmd.Fix && result.HasConflicts() {
			fixed, actions := validation.AutoFix(result.Conflicts, p)
			if len(actions) > 0 {
				if err := ctx.Store.SaveProfile(id, fixed); err != nil {
					return checkResult{err: fmt.Errorf("failed to save repaired profile %s: %w", id, err)}
				}
				for _, a := range actions {
					ctx.Printf("   fixed %s: %s\n", id, a.Action)
				}
				result = v.ValidateProfile(fixed, ctx.Clock())
			}
		}

		for _, c := range result.Conflicts {
			line := fmt.Sprintf("%s: %s", id, c.Description)
			if c.Severity == validation.SeverityError {
				errs = append(errs, line)
			} else {
				warnings = append(warnings, line)
			}
		}
	}

	if len(errs) > 0 {
		return checkResult{err: fmt.Errorf("%d problem(s):\n     %s", len(errs), strings.Join(errs, "\n     "))}
	}
	if len(warnings) > 0 {
		return checkResult{warning: strings.Join(warnings, "\n   ")}
	}
	return checkResult{}
}

func checkClock(now time.Time) checkResult {
	if now.Year() < 2020 || now.Year() > 2100 {
		return checkResult{err: fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))}
	}
	return checkResult{}
}

func checkProcesses(ctx *cli.Context) checkResult {
	if !storage.IsPostgresConnString(ctx.Store.GetConfigPath()) {
		holder, live, err := instance.Check(filepath.Dir(ctx.Store.GetConfigPath()))
		if err != nil {
			return checkResult{warning: fmt.Sprintf("unreadable lockfile: %v", err)}
		}
		if live {
			return checkResult{warning: fmt.Sprintf("an interactive session (pid %d) has held this store since %s", holder.PID, holder.Started.Format(time.Kitchen))}
		}
	}

	procs, err := instance.OtherProcesses()
	if err != nil {
		return checkResult{warning: err.Error()}
	}
	if len(procs) > 0 {
		pids := make([]string, len(procs))
		for i, p := range procs {
			pids[i] = fmt.Sprint(p.Pid())
		}
		return checkResult{warning: fmt.Sprintf("other journeyline processes running (pid %s); concurrent writers overwrite each other", strings.Join(pids, ", "))}
	}
	return checkResult{}
}
