package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/storage"
)

type InitCmd struct {
	Force       bool   `help:"Force reset by deleting existing storage before initialization."`
	Source      string `help:"Source database path or connection string to copy profiles from."`
	Interactive bool   `short:"i" help:"Start a journey with an interactive form."`
	Role        string `help:"Start a journey as carrier (gc) or intended-parent (ip)."`
	State       string `help:"Your state."`
	OtherState  string `help:"The other party's state, if known."`
	Stage       string `help:"Stage to start at (defaults to the first stage)."`
	Name        string `help:"Your name."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized journeyline storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying profiles from: %s\n", storage.Describe(c.Source))
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	onboarding, ok, err := c.onboarding(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	p, err := s.Begin(onboarding)
	if err != nil {
		return err
	}
	stage, _ := ctx.Engine.Stage(p.Role, p.Stage)
	ctx.Printf("Journey started: %s, %s, stage %q\n", p.Role, p.Jurisdiction, stage.Name)
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if storage.IsPostgresConnString(ctx.Store.GetConfigPath()) {
		return apperrors.NewUserError("--force is not supported for PostgreSQL", "drop the journeyline schema manually")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		logger.Info("Deleted existing storage", "path", dbPath)
		ctx.Printf("Deleted existing storage at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}

// copyFrom copies settings and every profile from the source store.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	src, err := storage.Open(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	ctx.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Migrating profiles...")
	ids, err := src.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles in source: %w", err)
	}
	for _, id := range ids {
		p, found, err := src.LoadProfile(id)
		if err != nil {
			return fmt.Errorf("failed to load profile %s: %w", id, err)
		}
		if !found {
			continue
		}
		if err := ctx.Store.SaveProfile(id, p); err != nil {
			return fmt.Errorf("failed to save profile %s: %w", id, err)
		}
	}
	ctx.Printf("    Migrated %d profiles\n", len(ids))
	return nil
}

// onboarding collects the journey start from flags or the interactive form.
// ok is false when neither was given.
func (c *InitCmd) onboarding(ctx *cli.Context) (journey.Onboarding, bool, error) {
	if c.Interactive {
		o, err := runOnboardingForm(ctx)
		return o, err == nil, err
	}
	if c.Role == "" {
		return journey.Onboarding{}, false, nil
	}
	role, ok := constants.ParseRole(c.Role)
	if !ok {
		return journey.Onboarding{}, false, apperrors.NewUserError(
			fmt.Sprintf("unknown role %q", c.Role),
			"use carrier (gc) or intended-parent (ip)",
		)
	}
	return journey.Onboarding{
		Role:         role,
		Jurisdiction: ctx.Jurisdiction(c.State),
		Counterpart:  ctx.Jurisdiction(c.OtherState),
		Stage:        c.Stage,
		Name:         c.Name,
	}, true, nil
}

func runOnboardingForm(ctx *cli.Context) (journey.Onboarding, error) {
	var (
		role        string
		state       string
		counterpart = constants.UnknownJurisdiction
		stageID     string
		name        string
	)

	roleOptions := []huh.Option[string]{
		huh.NewOption("I'm a gestational carrier", string(constants.RoleCarrier)),
		huh.NewOption("I'm an intended parent", string(constants.RoleIntendedParent)),
	}
	states := ctx.KB.Jurisdictions()
	counterpartOptions := append([]huh.Option[string]{huh.NewOption("Not sure yet", constants.UnknownJurisdiction)}, huh.NewOptions(states...)...)

	first := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What should we call you?").Value(&name),
			huh.NewSelect[string]().Title("Your role").Options(roleOptions...).Value(&role),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Your state").Options(huh.NewOptions(states...)...).Height(8).Value(&state),
			huh.NewSelect[string]().Title("The other party's state").Options(counterpartOptions...).Height(8).Value(&counterpart),
		),
	)
	if err := first.Run(); err != nil {
		return journey.Onboarding{}, err
	}

	stages, err := ctx.Engine.StagesFor(constants.Role(role))
	if err != nil {
		return journey.Onboarding{}, err
	}
	stageOptions := make([]huh.Option[string], len(stages))
	for i, s := range stages {
		stageOptions[i] = huh.NewOption(s.Name, s.ID)
	}
	second := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Where are you in the journey?").Options(stageOptions...).Value(&stageID),
	))
	if err := second.Run(); err != nil {
		return journey.Onboarding{}, err
	}

	return journey.Onboarding{
		Role:         constants.Role(role),
		Jurisdiction: state,
		Counterpart:  counterpart,
		Stage:        stageID,
		Name:         name,
	}, nil
}
