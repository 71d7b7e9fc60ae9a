package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/keyring"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
	"github.com/julianstephens/journeyline/internal/storage"
)

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer, func()) {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("knowledge.Default() failed: %v", err)
	}
	saver := storage.NewAsyncSaver(store)
	ctx, err := cli.NewContext(store, kb, saver)
	if err != nil {
		t.Fatalf("NewContext() failed: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Now = func() time.Time { return testNow }

	cleanup := func() {
		saver.Close()
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func setupTestInitDB(t *testing.T) (*cli.Context, string, *bytes.Buffer, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	ctx, out, cleanup := setupTestContext(t, store)
	return ctx, dbPath, out, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}

	// A second init keeps the same store
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed: %v", err)
	}
}

func TestInitCmd_StartsJourneyFromFlags(t *testing.T) {
	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Role: "gc", State: "California", Stage: "legal", Name: "Ana"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if !strings.Contains(out.String(), "Journey started") {
		t.Errorf("output missing confirmation:\n%s", out.String())
	}

	s, err := ctx.Session()
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	p := s.Profile()
	if p.Role != constants.RoleCarrier || p.Stage != "legal" || p.Counterpart != constants.UnknownJurisdiction {
		t.Errorf("profile = %+v", p)
	}
	if !p.StartDate.Equal(testNow) {
		t.Errorf("StartDate = %v, want %v", p.StartDate, testNow)
	}
}

func TestInitCmd_RejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		cmd  InitCmd
	}{
		{"unknown role", InitCmd{Role: "doula", State: "Texas"}},
		{"unknown state", InitCmd{Role: "ip", State: "Atlantis"}},
		{"unknown stage", InitCmd{Role: "ip", State: "Texas", Stage: "orbit"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _, cleanup := setupTestInitDB(t)
			defer cleanup()

			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	before, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database missing after force init: %v", err)
	}
	after, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if after.CurrentUser == before.CurrentUser {
		t.Error("force init kept the old user id")
	}
}

func TestInitCmd_ForceRefusesSameSource(t *testing.T) {
	ctx, dbPath, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected an error when source and destination are the same")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "old.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("source Init() failed: %v", err)
	}
	settings, _ := src.GetSettings()
	start := testNow.AddDate(0, -1, 0)
	if err := src.SaveProfile(settings.CurrentUser, models.UserProfile{
		Role:         constants.RoleIntendedParent,
		Jurisdiction: "Texas",
		Stage:        "match",
		StartDate:    &start,
	}); err != nil {
		t.Fatalf("source SaveProfile() failed: %v", err)
	}

	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	if !strings.Contains(out.String(), "Migrated 1 profiles") {
		t.Errorf("output:\n%s", out.String())
	}

	got, err := storage.RequireProfile(ctx.Store, settings.CurrentUser)
	if err != nil {
		t.Fatalf("profile not copied: %v", err)
	}
	if got.Jurisdiction != "Texas" {
		t.Errorf("copied profile = %+v", got)
	}
	dest, _ := ctx.Store.GetSettings()
	if dest.CurrentUser != settings.CurrentUser {
		t.Errorf("current user = %q, want %q", dest.CurrentUser, settings.CurrentUser)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestMigrateCmd_JSONStore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "j.json"))
	ctx, out, cleanup := setupTestContext(t, store)
	defer cleanup()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "no schema") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Role: "carrier", State: "California"}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	ctx.Saver.(*storage.AsyncSaver).Flush()

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on a healthy store: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ Profile validation: OK") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestDoctorCmd_NotInitialized(t *testing.T) {
	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when storage is missing")
	}
	if !strings.Contains(out.String(), "SKIPPED") {
		t.Errorf("dependent checks were not skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_ReportsBrokenProfile(t *testing.T) {
	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := testNow.AddDate(0, 0, -10)
	if err := ctx.Store.SaveProfile("broken", models.UserProfile{
		Role:         constants.RoleCarrier,
		Jurisdiction: "California",
		Stage:        "orbit",
		StartDate:    &start,
	}); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on an unknown stage")
	}
	if !strings.Contains(out.String(), "orbit") {
		t.Errorf("output does not name the bad stage:\n%s", out.String())
	}
}

func TestDoctorCmd_FixSortsJournal(t *testing.T) {
	ctx, _, out, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := testNow.AddDate(0, 0, -10)
	if err := ctx.Store.SaveProfile("u1", models.UserProfile{
		Role:         constants.RoleCarrier,
		Jurisdiction: "California",
		Counterpart:  constants.UnknownJurisdiction,
		Stage:        "research",
		StartDate:    &start,
		Journal: []models.JournalEntry{
			{ID: "b", Text: "second", At: start.Add(2 * time.Hour)},
			{ID: "a", Text: "first", At: start.Add(time.Hour)},
		},
	}); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}

	if err := (&DoctorCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("doctor --fix failed: %v\n%s", err, out.String())
	}
	p, err := storage.RequireProfile(ctx.Store, "u1")
	if err != nil {
		t.Fatalf("RequireProfile() failed: %v", err)
	}
	if p.Journal[0].ID != "a" {
		t.Errorf("journal not sorted: %+v", p.Journal)
	}
}

func TestCheckClock(t *testing.T) {
	if res := checkClock(testNow); res.err != nil {
		t.Errorf("checkClock(%v) = %v", testNow, res.err)
	}
	if res := checkClock(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)); res.err == nil {
		t.Error("checkClock() accepted 1999")
	}
}

func TestKeyringCommands(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteConnectionString() }()

	tests := []struct {
		name      string
		connStr   string
		wantError bool
	}{
		{name: "postgres URL", connStr: "postgres://journey@localhost:5432/journeyline?sslmode=disable"},
		{name: "postgresql URL", connStr: "postgresql://journey@localhost:5432/journeyline"},
		{name: "DSN", connStr: "host=localhost port=5432 dbname=journeyline user=journey"},
		{name: "not postgres", connStr: "not-a-valid-connection-string", wantError: true},
		{name: "embedded password warns", connStr: "postgres://journey:pw@localhost:5432/journeyline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			ctx := &cli.Context{Out: out}

			err := (&KeyringSetCmd{ConnectionString: tt.connStr}).Run(ctx)
			if (err != nil) != tt.wantError {
				t.Fatalf("KeyringSetCmd.Run() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil {
				return
			}

			stored, err := keyring.GetConnectionString()
			if err != nil || stored != tt.connStr {
				t.Errorf("stored = %q, %v; want %q", stored, err, tt.connStr)
			}

			out.Reset()
			if err := (&KeyringGetCmd{}).Run(ctx); err != nil {
				t.Fatalf("KeyringGetCmd.Run() failed: %v", err)
			}
			if strings.Contains(out.String(), ":pw@") {
				t.Errorf("password printed:\n%s", out.String())
			}
		})
	}
}

func TestKeyringDeleteAndStatus(t *testing.T) {
	gokeyring.MockInit()
	out := &bytes.Buffer{}
	ctx := &cli.Context{Out: out}

	if err := (&KeyringDeleteCmd{}).Run(ctx); err == nil {
		t.Error("deleting a missing entry should fail")
	}
	if err := keyring.SetConnectionString("postgres://journey@db/journeyline"); err != nil {
		t.Fatal(err)
	}
	if err := (&KeyringStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("KeyringStatusCmd.Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Connection string is stored") {
		t.Errorf("output:\n%s", out.String())
	}
	if err := (&KeyringDeleteCmd{}).Run(ctx); err != nil {
		t.Errorf("KeyringDeleteCmd.Run() failed: %v", err)
	}
	if err := (&KeyringGetCmd{}).Run(ctx); err == nil {
		t.Error("get after delete should fail")
	}
}
