// Package router answers free-text questions about a surrogacy journey.
//
// A question is lowercased and checked against an ordered list of rules.
// The first rule whose predicate matches synthesizes the answer from the
// knowledge base's answer templates and the asker's profile. Questions no
// rule recognizes get the fallback answer, which lists the topics the
// router knows about.
package router

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/models"
)

// FallbackTopic is reported by Classify when no rule matches
const FallbackTopic = "fallback"

// Predicate reports whether a normalized question belongs to a topic
type Predicate func(q string) bool

// Synthesizer builds the answer for a matched topic
type Synthesizer func(c *Context) string

// Rule pairs a topic predicate with the synthesizer that answers it
type Rule struct {
	Topic      string
	Match      Predicate
	Synthesize Synthesizer
}

// TemplateData is the profile view answer templates are rendered with
type TemplateData struct {
	Jurisdiction      string
	Counterpart       string
	HasCounterpart    bool
	IsCarrier         bool
	JurisdictionNotes string
	CounterpartNotes  string
	StageNote         string
}

// Router answers questions with an ordered rule list
type Router struct {
	kb        *knowledge.Base
	rules     []Rule
	templates map[string]*template.Template
}

// New creates a router with the default rule order.
func New(kb *knowledge.Base) (*Router, error) {
	return NewWithRules(kb, DefaultRules())
}

// NewWithRules creates a router that evaluates rules in the given order.
// Every answer template is parsed and executed once here so a broken
// template fails at startup instead of mid-conversation.
func NewWithRules(kb *knowledge.Base, rules []Rule) (*Router, error) {
	r := &Router{
		kb:        kb,
		rules:     append([]Rule(nil), rules...),
		templates: make(map[string]*template.Template),
	}
	sample := TemplateData{Jurisdiction: "X", Counterpart: "Y", JurisdictionNotes: "n", CounterpartNotes: "n", StageNote: "s"}
	for _, topic := range kb.AnswerTopics() {
		for _, variant := range kb.AnswerVariants(topic) {
			text, _ := kb.Answer(topic, variant)
			name := key(topic, variant)
			tmpl, err := template.New(name).Parse(text)
			if err != nil {
				return nil, fmt.Errorf("failed to parse answer %s: %w", name, err)
			}
			if err := tmpl.Execute(&bytes.Buffer{}, sample); err != nil {
				return nil, fmt.Errorf("failed to render answer %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	for _, rule := range r.rules {
		if rule.Match == nil || rule.Synthesize == nil {
			return nil, fmt.Errorf("rule %q is incomplete", rule.Topic)
		}
		if len(kb.AnswerVariants(rule.Topic)) == 0 {
			return nil, fmt.Errorf("rule %q has no answer templates", rule.Topic)
		}
	}
	if len(kb.AnswerVariants(FallbackTopic)) == 0 {
		return nil, fmt.Errorf("no fallback answer templates")
	}
	return r, nil
}

// Rules returns a copy of the rule list in evaluation order.
func (r *Router) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Classify returns the topic a question routes to.
func (r *Router) Classify(text string) string {
	if rule, ok := r.match(normalize(text)); ok {
		return rule.Topic
	}
	return FallbackTopic
}

// Answer returns the personalized answer to a question. Empty or
// unrecognized questions get the fallback answer.
func (r *Router) Answer(text string, p models.UserProfile) string {
	q := normalize(text)
	c := r.newContext(q, p)
	if rule, ok := r.match(q); ok {
		logger.Debug("routed question", "topic", rule.Topic)
		if out := rule.Synthesize(c); out != "" {
			return out
		}
	}
	return fallback(c)
}

func (r *Router) match(q string) (Rule, bool) {
	if q == "" {
		return Rule{}, false
	}
	for _, rule := range r.rules {
		if rule.Match(q) {
			return rule, true
		}
	}
	return Rule{}, false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func key(topic, variant string) string {
	return topic + "/" + variant
}

// Context carries one question through a synthesizer
type Context struct {
	Query   string
	Profile models.UserProfile
	Data    TemplateData

	router *Router
}

func (r *Router) newContext(q string, p models.UserProfile) *Context {
	data := TemplateData{
		Jurisdiction:   p.Jurisdiction,
		Counterpart:    p.Counterpart,
		HasCounterpart: p.HasCounterpart(),
		IsCarrier:      p.Role == constants.RoleCarrier,
	}
	if data.Jurisdiction == "" {
		data.Jurisdiction = "your state"
	}
	if f, ok := r.kb.Fact(p.Jurisdiction); ok {
		data.JurisdictionNotes = f.Notes
	}
	if f, ok := r.kb.Fact(p.Counterpart); ok && data.HasCounterpart {
		data.CounterpartNotes = f.Notes
	}
	return &Context{Query: q, Profile: p, Data: data, router: r}
}

// Fact returns the law fact for the asker's jurisdiction.
func (c *Context) Fact() (models.JurisdictionFact, bool) {
	return c.router.kb.Fact(c.Profile.Jurisdiction)
}

// CounterpartFact returns the law fact for the other party's jurisdiction.
func (c *Context) CounterpartFact() (models.JurisdictionFact, bool) {
	if !c.Data.HasCounterpart {
		return models.JurisdictionFact{}, false
	}
	return c.router.kb.Fact(c.Profile.Counterpart)
}

// Has reports whether a topic defines a variant.
func (c *Context) Has(topic, variant string) bool {
	_, ok := c.router.templates[key(topic, variant)]
	return ok
}

// Section renders one answer template. Missing variants render empty.
func (c *Context) Section(topic, variant string) string {
	tmpl, ok := c.router.templates[key(topic, variant)]
	if !ok {
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, c.Data); err != nil {
		logger.Error("failed to render answer", "topic", topic, "variant", variant, "error", err)
		return ""
	}
	return buf.String()
}

// RoleSection renders the asker's role variant of a topic, falling back to
// the variant shared by all roles.
func (c *Context) RoleSection(topic string) string {
	role := string(constants.RoleIntendedParent)
	if c.Data.IsCarrier {
		role = string(constants.RoleCarrier)
	}
	if c.Has(topic, role) {
		return c.Section(topic, role)
	}
	return c.Section(topic, "all")
}

// join concatenates non-empty sections with blank lines between them.
func join(sections ...string) string {
	out := sections[:0:0]
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}
