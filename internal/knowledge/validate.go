package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/journeyline/internal/constants"
)

// ErrInvalidContent marks a malformed knowledge table. It is a startup
// configuration error.
var ErrInvalidContent = errors.New("invalid knowledge base content")

var validate = validator.New()

func (b *Base) validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for _, role := range constants.Roles {
		stages, ok := b.stages[role]
		if !ok || len(stages) == 0 {
			add("no stages defined for role %s", role)
			continue
		}
		seen := map[string]bool{}
		for i, s := range stages {
			if err := validate.Struct(s); err != nil {
				add("stage %d of %s: %v", i, role, err)
			}
			if seen[s.ID] {
				add("duplicate stage id %q for role %s", s.ID, role)
			}
			seen[s.ID] = true
			for _, a := range s.Articles {
				b.checkArticle(add, "stage "+s.ID, a)
			}
		}
		for stageID, items := range b.focus[role] {
			if !seen[stageID] {
				add("focus for unknown stage %q of %s", stageID, role)
			}
			if len(items) > 2 {
				add("focus for %s/%s has %d items, at most 2 allowed", role, stageID, len(items))
			}
			for _, it := range items {
				if err := validate.Struct(it); err != nil {
					add("focus %s/%s: %v", role, stageID, err)
				}
				b.checkArticle(add, "focus "+stageID, it.ArticleID)
			}
		}
		for stageID, g := range b.guides[role] {
			if !seen[stageID] {
				add("guide for unknown stage %q of %s", stageID, role)
			}
			if err := validate.Struct(g); err != nil {
				add("guide %s/%s: %v", role, stageID, err)
			}
			b.checkArticle(add, "guide "+stageID, g.ArticleID)
		}
		for _, h := range b.hardMoments[role] {
			if err := validate.Struct(h); err != nil {
				add("hard moment %s/%s: %v", role, h.ID, err)
			}
		}
	}

	for stageID, r := range b.reminders {
		if err := validate.Struct(r); err != nil {
			add("reminder %s: %v", stageID, err)
		}
	}

	for _, a := range b.articles {
		if err := validate.Struct(a); err != nil {
			add("article %s: %v", a.ID, err)
		}
	}

	for name, f := range b.facts {
		if err := validate.Struct(f); err != nil {
			add("fact %s: %v", name, err)
		}
		if !b.IsJurisdiction(name) {
			add("fact for unknown jurisdiction %q", name)
		}
	}
	for name := range b.badges {
		if !b.IsJurisdiction(name) {
			add("badge for unknown jurisdiction %q", name)
		}
	}

	if len(b.answers) == 0 {
		add("no answer topics defined")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidContent, strings.Join(problems, "\n  "))
	}
	return nil
}

func (b *Base) checkArticle(add func(string, ...interface{}), where, id string) {
	if id == "" {
		return
	}
	if _, ok := b.articleIndex[id]; !ok {
		add("%s references unknown article %q", where, id)
	}
}
