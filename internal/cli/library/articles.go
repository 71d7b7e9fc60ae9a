package library

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/journeyline/internal/cli"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/models"
)

const wrapWidth = 80

type ArticlesCmd struct {
	List ArticlesListCmd `cmd:"" default:"1" help:"List articles."`
	Show ArticlesShowCmd `cmd:"" help:"Read an article."`
}

type ArticlesListCmd struct {
	Category string `help:"Only show one category (Medical, Legal, Financial, Wellness)." short:"c"`
}

func (c *ArticlesListCmd) Run(ctx *cli.Context) error {
	filter := strings.TrimSpace(c.Category)
	if filter != "" {
		known := false
		for _, cat := range ctx.KB.Categories() {
			if strings.EqualFold(cat, filter) {
				filter, known = cat, true
				break
			}
		}
		if !known {
			return apperrors.NewUserError(
				fmt.Sprintf("unknown category %q", c.Category),
				"use one of "+strings.Join(ctx.KB.Categories(), ", "),
			)
		}
	}

	byCategory := map[string][]models.Article{}
	for _, a := range ctx.KB.Articles() {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	first := true
	for _, cat := range ctx.KB.Categories() {
		if filter != "" && cat != filter {
			continue
		}
		if !first {
			ctx.Println()
		}
		first = false
		ctx.Println(cat)
		for _, a := range byCategory[cat] {
			ctx.Printf("  %-14s %s (%d min)\n", a.ID, a.Title, a.ReadMinutes())
		}
	}
	return nil
}

type ArticlesShowCmd struct {
	ID    string `arg:"" help:"Article id."`
	Plain bool   `help:"Print markdown without terminal styling."`
}

func (c *ArticlesShowCmd) Run(ctx *cli.Context) error {
	a, ok := ctx.KB.Article(c.ID)
	if !ok {
		return apperrors.NewUserError(fmt.Sprintf("no article %q", c.ID), "see 'journeyline articles list'")
	}

	ctx.Printf("%s · %s · %d min read\n", a.Title, a.Category, a.ReadMinutes())
	out, err := render(a.Body, c.Plain)
	if err != nil {
		return fmt.Errorf("render article: %w", err)
	}
	ctx.Println(out)
	return nil
}

func render(markdown string, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrapWidth))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
