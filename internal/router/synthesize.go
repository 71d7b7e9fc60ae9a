package router

import (
	"strings"

	"github.com/julianstephens/journeyline/internal/constants"
)

// Jurisdictions where carrier compensation runs above the national range
var highCostJurisdictions = map[string]bool{
	"California": true,
	"New York":   true,
	"Illinois":   true,
}

const maxFallbackTopics = 6

// fallbackTopics are suggested unless the question already mentions them
var fallbackTopics = []struct {
	variant string
	implied []string
}{
	{"topic_laws", []string{"state", "law"}},
	{"topic_costs", []string{"cost", "pay", "money"}},
	{"topic_requirements", []string{"require", "screen", "qualify"}},
	{"topic_contracts", []string{"contract", "legal"}},
	{"topic_escrow", []string{"escrow"}},
	{"topic_medical", []string{"transfer", "medic"}},
	{"topic_timeline", []string{"time", "long"}},
	{"topic_relationship", []string{"relationship", "communicate"}},
}

func byRole(topic string) Synthesizer {
	return func(c *Context) string {
		return c.RoleSection(topic)
	}
}

func stateLaw(c *Context) string {
	fact, ok := c.Fact()
	if !ok {
		return c.Section("state_law", "unknown")
	}
	sections := []string{
		c.Section("state_law", "intro"),
		c.Section("state_law", string(fact.Favorability)),
	}
	if _, ok := c.CounterpartFact(); ok {
		sections = append(sections, c.Section("state_law", "counterpart"))
	}
	sections = append(sections, c.Section("state_law", "attorney"))
	return join(sections...)
}

func preBirth(c *Context) string {
	fact, ok := c.Fact()
	switch {
	case !ok:
		return c.Section("prebirth", "unknown")
	case fact.PreBirth:
		return c.Section("prebirth", "prebirth")
	default:
		return c.Section("prebirth", "postbirth")
	}
}

func compensation(c *Context) string {
	if !c.Data.IsCarrier {
		return c.Section("compensation", string(constants.RoleIntendedParent))
	}
	sections := []string{c.Section("compensation", "carrier_base")}
	if highCostJurisdictions[c.Profile.Jurisdiction] {
		sections = append(sections, c.Section("compensation", "carrier_high_cost"))
	}
	sections = append(sections,
		c.Section("compensation", "carrier_extras"),
		c.Section("compensation", "carrier_taxes"),
	)
	return join(sections...)
}

func timeline(c *Context) string {
	overview := c.Section("timeline", "overview")
	stage := c.Profile.Stage
	if stage == "" || stage == "overview" || stage == "current" || !c.Has("timeline", stage) {
		return overview
	}
	c.Data.StageNote = c.Section("timeline", stage)
	return join(overview, c.Section("timeline", "current"))
}

func fallback(c *Context) string {
	var topics []string
	for _, t := range fallbackTopics {
		if len(topics) == maxFallbackTopics {
			break
		}
		if Any(t.implied...)(c.Query) {
			continue
		}
		topics = append(topics, c.Section(FallbackTopic, t.variant))
	}
	return join(
		c.Section(FallbackTopic, "intro"),
		strings.Join(topics, "\n"),
		c.Section(FallbackTopic, "examples"),
		c.Section(FallbackTopic, "closing"),
	)
}
