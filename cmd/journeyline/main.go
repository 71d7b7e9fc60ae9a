package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/cli/ask"
	"github.com/julianstephens/journeyline/internal/cli/journal"
	"github.com/julianstephens/journeyline/internal/cli/library"
	"github.com/julianstephens/journeyline/internal/cli/progress"
	"github.com/julianstephens/journeyline/internal/cli/system"
	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/keyring"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/storage"
	"github.com/julianstephens/journeyline/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.db for SQLite, .json for a flat file) or PostgreSQL connection string. Falls back to $JOURNEYLINE_DB_CONNECTION, the OS keyring, then ~/.config/journeyline/journeyline.db. Credentials must NOT be embedded in PostgreSQL connection strings." type:"string"`
	User    string `help:"Profile to act on (defaults to the one created by init)." env:"JOURNEYLINE_USER"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize journeyline storage and start a journey."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the connection string stored in the OS keyring."`

	Status   progress.StatusCmd   `cmd:"" help:"Show where you are in your journey."`
	Profile  progress.ProfileCmd  `cmd:"" help:"Show or change your journey profile."`
	Stage    progress.StageCmd    `cmd:"" help:"List stages or move to another one."`
	Timeline progress.TimelineCmd `cmd:"" help:"Show the projected timeline."`
	Tasks    progress.TasksCmd    `cmd:"" help:"Work through a stage checklist."`
	Today    progress.TodayCmd    `cmd:"" help:"Show today's guidance."`
	Estimate progress.EstimateCmd `cmd:"" help:"Estimate carrier compensation."`

	Ask      ask.AskCmd           `cmd:"" help:"Ask a question about surrogacy."`
	Law      ask.LawCmd           `cmd:"" help:"Show surrogacy law notes for a state."`
	Articles library.ArticlesCmd  `cmd:"" help:"Browse the article library."`
	Hard     library.HardCmd      `cmd:"" help:"Support for difficult moments."`
	Mood     journal.MoodCmd      `cmd:"" help:"Log and review moods."`
	Journal  journal.JournalCmd   `cmd:"" help:"Write and read journal entries."`
}

// commands that load the store themselves, or never need it
var skipLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"doctor":  true,
	"tui":     true,
}

func main() {
	loadEnvFiles()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Journey progression and guidance for gestational surrogacy"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config, source := keyring.ResolveConnection(CLI.Config, os.Getenv(constants.EnvDBConnection))

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(config)}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Resolved storage", "source", source, "backend", storage.Describe(config))

	store, err := storage.Open(config)
	if err != nil {
		apperrors.Fatal(err)
	}

	kb, err := knowledge.Default()
	if err != nil {
		apperrors.Fatalf("knowledge base is invalid: %v", err)
	}

	saver := storage.NewAsyncSaver(store)
	appCtx, err := cli.NewContext(store, kb, saver)
	if err != nil {
		saver.Close()
		apperrors.Fatal(err)
	}
	appCtx.UserID = CLI.User

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !skipLoad[command[0]] {
		if err := store.Load(); err != nil {
			saver.Close()
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	saver.Close()
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close storage", "error", err)
	}
	apperrors.Fatal(err)
}

// loadEnvFiles reads .env from the working directory, then from the default
// config directory. Earlier files win; missing files are ignored.
func loadEnvFiles() {
	paths := []string{constants.EnvFileName}
	if dir, err := utils.ExpandPath(filepath.Dir(constants.DefaultConfigPath)); err == nil {
		paths = append(paths, filepath.Join(dir, constants.EnvFileName))
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// configDir is where logs live: next to a file store, or the default
// config directory for PostgreSQL.
func configDir(config string) string {
	base := constants.DefaultConfigPath
	if !storage.IsPostgresConnString(config) {
		base = config
	}
	path, err := utils.ExpandPath(base)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}
