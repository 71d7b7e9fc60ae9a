// Package knowledge holds the static reference tables the journey engine reads:
// stage templates, guidance, jurisdiction facts, articles and canned answers.
// Tables are loaded once from embedded YAML, validated, and never mutated.
package knowledge

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/models"
)

//go:embed content
var contentFS embed.FS

// Content file names, relative to the content root
const (
	stagesFile        = "stages.yaml"
	guidanceFile      = "guidance.yaml"
	jurisdictionsFile = "jurisdictions.yaml"
	articlesFile      = "articles.yaml"
	answersFile       = "answers.yaml"
	articlesDir       = "articles"
)

// Base is the loaded, validated knowledge base
type Base struct {
	stages        map[constants.Role][]models.Stage
	reminders     map[string]models.Reminder
	focus         map[constants.Role]map[string][]models.FocusItem
	guides        map[constants.Role]map[string]models.DailyGuide
	hardMoments   map[constants.Role][]models.HardMoment
	articles      []models.Article
	articleIndex  map[string]int
	facts         map[string]models.JurisdictionFact
	overridden    []string
	jurisdictions []string
	badges        map[string]string
	answers       map[string]map[string]string
}

type guidanceDoc struct {
	Reminders   map[string]models.Reminder               `yaml:"reminders"`
	Focus       map[string]map[string][]models.FocusItem `yaml:"focus"`
	Guides      map[string]map[string]models.DailyGuide  `yaml:"guides"`
	HardMoments map[string][]models.HardMoment           `yaml:"hard_moments"`
}

type jurisdictionsDoc struct {
	Jurisdictions []string                  `yaml:"jurisdictions"`
	Badges        map[string]string         `yaml:"badges"`
	Facts         []models.JurisdictionFact `yaml:"facts"`
}

type articlesDoc struct {
	Articles []models.Article `yaml:"articles"`
}

type answersDoc struct {
	Topics map[string]map[string]string `yaml:"topics"`
}

var (
	defaultOnce sync.Once
	defaultBase *Base
	defaultErr  error
)

// Default returns the knowledge base built from the embedded content.
// It is loaded on first use and shared afterwards.
func Default() (*Base, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(contentFS, "content")
		if err != nil {
			defaultErr = fmt.Errorf("failed to access embedded content: %w", err)
			return
		}
		defaultBase, defaultErr = Load(sub)
	})
	return defaultBase, defaultErr
}

// Load reads and validates every table from fsys.
func Load(fsys fs.FS) (*Base, error) {
	b := &Base{}

	var rawStages map[string][]models.Stage
	if err := decode(fsys, stagesFile, &rawStages); err != nil {
		return nil, err
	}
	stages, err := byRole(rawStages)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContent, stagesFile, err)
	}
	b.stages = stages

	var guidance guidanceDoc
	if err := decode(fsys, guidanceFile, &guidance); err != nil {
		return nil, err
	}
	b.reminders = guidance.Reminders
	if b.focus, err = byRole(guidance.Focus); err != nil {
		return nil, fmt.Errorf("%w: %s focus: %v", ErrInvalidContent, guidanceFile, err)
	}
	if b.guides, err = byRole(guidance.Guides); err != nil {
		return nil, fmt.Errorf("%w: %s guides: %v", ErrInvalidContent, guidanceFile, err)
	}
	if b.hardMoments, err = byRole(guidance.HardMoments); err != nil {
		return nil, fmt.Errorf("%w: %s hard moments: %v", ErrInvalidContent, guidanceFile, err)
	}

	var juris jurisdictionsDoc
	if err := decode(fsys, jurisdictionsFile, &juris); err != nil {
		return nil, err
	}
	b.jurisdictions = juris.Jurisdictions
	b.badges = juris.Badges
	b.facts = make(map[string]models.JurisdictionFact, len(juris.Facts))
	for _, f := range juris.Facts {
		// Later entries replace earlier ones
		if _, seen := b.facts[f.Jurisdiction]; seen {
			b.overridden = append(b.overridden, f.Jurisdiction)
			logger.Warn("Jurisdiction fact defined more than once; last entry wins", "jurisdiction", f.Jurisdiction)
		}
		b.facts[f.Jurisdiction] = f
	}

	var arts articlesDoc
	if err := decode(fsys, articlesFile, &arts); err != nil {
		return nil, err
	}
	b.articleIndex = make(map[string]int, len(arts.Articles))
	for _, a := range arts.Articles {
		body, err := fs.ReadFile(fsys, path.Join(articlesDir, a.ID+".md"))
		if err != nil {
			return nil, fmt.Errorf("%w: article %q has no body: %v", ErrInvalidContent, a.ID, err)
		}
		a.Body = string(body)
		if _, dup := b.articleIndex[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate article id %q", ErrInvalidContent, a.ID)
		}
		b.articleIndex[a.ID] = len(b.articles)
		b.articles = append(b.articles, a)
	}

	var answers answersDoc
	if err := decode(fsys, answersFile, &answers); err != nil {
		return nil, err
	}
	b.answers = answers.Topics

	if err := b.validate(); err != nil {
		return nil, err
	}

	logger.Debug("Knowledge base loaded",
		"articles", len(b.articles),
		"facts", len(b.facts),
		"topics", len(b.answers))
	return b, nil
}

func decode(fsys fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", ErrInvalidContent, name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidContent, name, err)
	}
	return nil
}

// byRole re-keys a role-indexed table, rejecting names that are not roles.
func byRole[T any](in map[string]T) (map[constants.Role]T, error) {
	out := make(map[constants.Role]T, len(in))
	for name, v := range in {
		role, ok := constants.ParseRole(name)
		if !ok || string(role) != name {
			return nil, fmt.Errorf("unknown role key %q", name)
		}
		out[role] = v
	}
	return out, nil
}

// Stages returns a copy of the ordered stage list for role.
func (b *Base) Stages(role constants.Role) ([]models.Stage, bool) {
	stages, ok := b.stages[role]
	if !ok {
		return nil, false
	}
	return append([]models.Stage(nil), stages...), true
}

// Reminder returns the reminder configured for a stage.
func (b *Base) Reminder(stageID string) (models.Reminder, bool) {
	r, ok := b.reminders[stageID]
	return r, ok
}

// Focus returns the focus items for a role and stage, possibly none.
func (b *Base) Focus(role constants.Role, stageID string) []models.FocusItem {
	return append([]models.FocusItem(nil), b.focus[role][stageID]...)
}

// Guide returns the daily guide for a role and stage.
func (b *Base) Guide(role constants.Role, stageID string) (models.DailyGuide, bool) {
	g, ok := b.guides[role][stageID]
	return g, ok
}

// HardMoments returns the support entries for a role in display order.
func (b *Base) HardMoments(role constants.Role) []models.HardMoment {
	return append([]models.HardMoment(nil), b.hardMoments[role]...)
}

// Article looks up an article by id.
func (b *Base) Article(id string) (models.Article, bool) {
	i, ok := b.articleIndex[id]
	if !ok {
		return models.Article{}, false
	}
	return b.articles[i], true
}

// Articles returns all articles in index order.
func (b *Base) Articles() []models.Article {
	return append([]models.Article(nil), b.articles...)
}

// Categories returns the distinct article categories, sorted.
func (b *Base) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range b.articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Fact returns the curated law fact for a jurisdiction. Absence is normal.
func (b *Base) Fact(jurisdiction string) (models.JurisdictionFact, bool) {
	f, ok := b.facts[jurisdiction]
	return f, ok
}

// OverriddenFacts lists jurisdictions whose fact was defined more than once.
func (b *Base) OverriddenFacts() []string {
	return append([]string(nil), b.overridden...)
}

// Jurisdictions returns the selectable jurisdiction names in display order.
func (b *Base) Jurisdictions() []string {
	return append([]string(nil), b.jurisdictions...)
}

// IsJurisdiction reports whether name is a selectable jurisdiction.
func (b *Base) IsJurisdiction(name string) bool {
	for _, j := range b.jurisdictions {
		if j == name {
			return true
		}
	}
	return false
}

// LookupJurisdiction matches name case-insensitively and returns the
// canonical spelling.
func (b *Base) LookupJurisdiction(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, j := range b.jurisdictions {
		if strings.EqualFold(j, name) {
			return j, true
		}
	}
	return "", false
}

// Badge returns the short display status for a jurisdiction, if curated.
func (b *Base) Badge(jurisdiction string) (string, bool) {
	s, ok := b.badges[jurisdiction]
	return s, ok
}

// Answer returns the answer template for a topic variant.
func (b *Base) Answer(topic, variant string) (string, bool) {
	s, ok := b.answers[topic][variant]
	return s, ok
}

// AnswerTopics returns the topic ids that have answer templates, sorted.
func (b *Base) AnswerTopics() []string {
	out := make([]string, 0, len(b.answers))
	for topic := range b.answers {
		out = append(out, topic)
	}
	sort.Strings(out)
	return out
}

// AnswerVariants returns the variant names of a topic, sorted.
func (b *Base) AnswerVariants(topic string) []string {
	variants := b.answers[topic]
	out := make([]string, 0, len(variants))
	for v := range variants {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
