package knowledge

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/julianstephens/journeyline/internal/constants"
)

func loadDefault(t *testing.T) *Base {
	t.Helper()
	kb, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return kb
}

func TestDefault_StagesPerRole(t *testing.T) {
	kb := loadDefault(t)

	for _, role := range constants.Roles {
		t.Run(string(role), func(t *testing.T) {
			stages, ok := kb.Stages(role)
			if !ok || len(stages) == 0 {
				t.Fatalf("Stages(%s) returned no stages", role)
			}
			seen := map[string]bool{}
			for _, s := range stages {
				if seen[s.ID] {
					t.Errorf("duplicate stage id %q", s.ID)
				}
				seen[s.ID] = true
				if s.Weeks <= 0 {
					t.Errorf("stage %q has non-positive weeks %d", s.ID, s.Weeks)
				}
			}
			if stages[0].ID != "research" || stages[len(stages)-1].ID != "post" {
				t.Errorf("unexpected stage order: first=%q last=%q", stages[0].ID, stages[len(stages)-1].ID)
			}
		})
	}
}

func TestDefault_StagesAreCopies(t *testing.T) {
	kb := loadDefault(t)

	stages, _ := kb.Stages(constants.RoleCarrier)
	stages[0].Name = "mutated"

	again, _ := kb.Stages(constants.RoleCarrier)
	if again[0].Name == "mutated" {
		t.Error("Stages() exposes internal slice")
	}
}

func TestDefault_UnknownRole(t *testing.T) {
	kb := loadDefault(t)
	if _, ok := kb.Stages("donor"); ok {
		t.Error("expected no stages for undefined role")
	}
}

func TestDefault_LastFactWins(t *testing.T) {
	kb := loadDefault(t)

	f, ok := kb.Fact("Michigan")
	if !ok {
		t.Fatal("expected a fact for Michigan")
	}
	if !strings.HasPrefix(f.Notes, "Despite old anti-surrogacy statute") {
		t.Errorf("Michigan notes = %q, want the later entry", f.Notes)
	}

	overridden := kb.OverriddenFacts()
	if len(overridden) != 1 || overridden[0] != "Michigan" {
		t.Errorf("OverriddenFacts() = %v, want [Michigan]", overridden)
	}
}

func TestDefault_Lookups(t *testing.T) {
	kb := loadDefault(t)

	tests := []struct {
		name string
		ok   bool
	}{
		{"California fact", func() bool { _, ok := kb.Fact("California"); return ok }()},
		{"Wyoming fact is absent", func() bool { _, ok := kb.Fact("Wyoming"); return !ok }()},
		{"Wyoming is selectable", kb.IsJurisdiction("Wyoming")},
		{"DC is selectable", kb.IsJurisdiction("DC")},
		{"Atlantis is not selectable", !kb.IsJurisdiction("Atlantis")},
		{"legal reminder", func() bool { r, ok := kb.Reminder("legal"); return ok && r.Urgent }()},
		{"missing reminder", func() bool { _, ok := kb.Reminder("nope"); return !ok }()},
		{"escrow article", func() bool { _, ok := kb.Article("escrow"); return ok }()},
		{"missing article", func() bool { _, ok := kb.Article("nope"); return !ok }()},
		{"carrier guide", func() bool { _, ok := kb.Guide(constants.RoleCarrier, "legal"); return ok }()},
		{"Louisiana badge", func() bool { s, ok := kb.Badge("Louisiana"); return ok && s == "Restrictive" }()},
		{"state law answer", func() bool { _, ok := kb.Answer("state_law", "intro"); return ok }()},
		{"missing answer", func() bool { _, ok := kb.Answer("state_law", "nope"); return !ok }()},
		{"case-insensitive jurisdiction", func() bool { j, ok := kb.LookupJurisdiction(" new york "); return ok && j == "New York" }()},
		{"unknown jurisdiction lookup", func() bool { _, ok := kb.LookupJurisdiction("Atlantis"); return !ok }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.ok {
				t.Errorf("%s: lookup did not behave as expected", tt.name)
			}
		})
	}
}

func TestDefault_Articles(t *testing.T) {
	kb := loadDefault(t)

	articles := kb.Articles()
	if len(articles) != 13 {
		t.Fatalf("len(Articles()) = %d, want 13", len(articles))
	}
	for _, a := range articles {
		if a.ReadMinutes() < 1 {
			t.Errorf("article %s has read time %d", a.ID, a.ReadMinutes())
		}
	}

	want := []string{"Financial", "Legal", "Medical", "Wellness"}
	got := kb.Categories()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestDefault_FocusAtMostTwo(t *testing.T) {
	kb := loadDefault(t)
	for _, role := range constants.Roles {
		stages, _ := kb.Stages(role)
		for _, s := range stages {
			if n := len(kb.Focus(role, s.ID)); n > 2 {
				t.Errorf("Focus(%s, %s) has %d items", role, s.ID, n)
			}
		}
	}
}

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		"stages.yaml": {Data: []byte(`
carrier:
  - id: a
    name: A
    duration: "2 weeks"
    weeks: 2
    tasks: ["one"]
intended-parent:
  - id: a
    name: A
    duration: "2 weeks"
    weeks: 2
    tasks: ["one"]
`)},
		"guidance.yaml": {Data: []byte(`
reminders:
  a: {title: T, description: D}
focus: {}
guides: {}
hard_moments: {}
`)},
		"jurisdictions.yaml": {Data: []byte(`
jurisdictions: [Nevada]
badges: {}
facts:
  - {jurisdiction: Nevada, favorability: favorable, prebirth: true, notes: N}
`)},
		"articles.yaml": {Data: []byte(`
articles:
  - {id: x, title: X, category: Legal}
`)},
		"articles/x.md": {Data: []byte("# X\n\nbody text\n")},
		"answers.yaml":  {Data: []byte("topics:\n  t:\n    all: hello\n")},
	}
}

func TestLoad_Minimal(t *testing.T) {
	kb, err := Load(minimalFS())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if stages, ok := kb.Stages(constants.RoleIntendedParent); !ok || len(stages) != 1 {
		t.Errorf("unexpected stages: %v", stages)
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{
			name: "duplicate stage id",
			file: "stages.yaml",
			content: `
carrier:
  - {id: a, name: A, duration: d, weeks: 1, tasks: [x]}
  - {id: a, name: B, duration: d, weeks: 1, tasks: [x]}
intended-parent:
  - {id: a, name: A, duration: d, weeks: 1, tasks: [x]}
`,
			wantMsg: "duplicate stage id",
		},
		{
			name: "zero weeks",
			file: "stages.yaml",
			content: `
carrier:
  - {id: a, name: A, duration: d, weeks: 0, tasks: [x]}
intended-parent:
  - {id: a, name: A, duration: d, weeks: 1, tasks: [x]}
`,
			wantMsg: "Weeks",
		},
		{
			name: "missing role",
			file: "stages.yaml",
			content: `
carrier:
  - {id: a, name: A, duration: d, weeks: 1, tasks: [x]}
`,
			wantMsg: "no stages defined for role intended-parent",
		},
		{
			name: "unknown role key",
			file: "stages.yaml",
			content: `
donor:
  - {id: a, name: A, duration: d, weeks: 1, tasks: [x]}
`,
			wantMsg: "unknown role key",
		},
		{
			name: "dangling article reference",
			file: "guidance.yaml",
			content: `
reminders: {}
focus:
  carrier:
    a: [{title: T, description: D, article: missing}]
guides: {}
hard_moments: {}
`,
			wantMsg: "unknown article",
		},
		{
			name:    "bad favorability",
			file:    "jurisdictions.yaml",
			content: "jurisdictions: [Nevada]\nfacts:\n  - {jurisdiction: Nevada, favorability: great, notes: N}\n",
			wantMsg: "Favorability",
		},
		{
			name:    "malformed yaml",
			file:    "answers.yaml",
			content: "topics: [",
			wantMsg: "failed to parse answers.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := minimalFS()
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.content)}

			_, err := Load(fsys)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidContent) {
				t.Errorf("error %v does not wrap ErrInvalidContent", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingArticleBody(t *testing.T) {
	fsys := minimalFS()
	delete(fsys, "articles/x.md")

	if _, err := Load(fsys); err == nil || !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("Load() error = %v, want ErrInvalidContent", err)
	}
}
