// Package journal holds the mood log and free-text journal commands.
package journal

import (
	"strings"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/journey"
)

type MoodCmd struct {
	Log  MoodLogCmd  `cmd:"" help:"Record how you feel right now."`
	List MoodListCmd `cmd:"" default:"1" help:"Show recent moods."`
}

type MoodLogCmd struct {
	Label string `arg:"" help:"Great, Good, Okay, Hard or Struggling."`
}

func (c *MoodLogCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	entry, err := s.LogMood(c.Label)
	if err != nil {
		return err
	}
	ctx.Printf("Logged %s at %s\n", entry.Mood, entry.At.Format(constants.TimestampFormat))
	if entry.Mood == constants.MoodHard || entry.Mood == constants.MoodStruggling {
		ctx.Println("Rough day. 'journeyline hard' has support for difficult moments.")
	}
	return nil
}

type MoodListCmd struct {
	Limit int `help:"How many entries to show (0 for all)." default:"10"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	moods := journey.RecentMoods(s.Profile(), c.Limit)
	if len(moods) == 0 {
		ctx.Println("No moods logged yet.")
		return nil
	}
	for _, m := range moods {
		ctx.Printf("%s  %s\n", m.At.Format(constants.TimestampFormat), m.Mood)
	}
	return nil
}

type JournalCmd struct {
	Add  JournalAddCmd  `cmd:"" help:"Write a journal entry."`
	List JournalListCmd `cmd:"" default:"1" help:"Show recent entries."`
}

type JournalAddCmd struct {
	Text []string `arg:"" help:"Entry text."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	text := strings.Join(c.Text, " ")
	if strings.TrimSpace(text) == "" {
		return apperrors.NewUserError("journal entry is empty", "write something after the command")
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	entry, err := s.AddJournal(text)
	if err != nil {
		return err
	}
	ctx.Printf("Saved entry from %s\n", entry.At.Format(constants.TimestampFormat))
	return nil
}

type JournalListCmd struct {
	Limit int `help:"How many entries to show (0 for all)." default:"4"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	entries := journey.RecentJournal(s.Profile(), c.Limit)
	if len(entries) == 0 {
		ctx.Println("Your journal is empty.")
		return nil
	}
	for i, e := range entries {
		if i > 0 {
			ctx.Println()
		}
		ctx.Println(e.At.Format(constants.TimestampFormat))
		ctx.Println(e.Text)
	}
	return nil
}
