// Package journey implements the stage model, timeline projection and
// progress tracking over a UserProfile. Every operation is pure: profiles
// are taken by value and an updated copy is returned.
package journey

import (
	"fmt"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
)

// UnknownRoleError is returned when a role has no stage list
type UnknownRoleError struct {
	Role constants.Role
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q (expected %q or %q)", e.Role, constants.RoleCarrier, constants.RoleIntendedParent)
}

// Engine answers stage questions against one knowledge base
type Engine struct {
	kb *knowledge.Base
}

// New creates an engine over kb.
func New(kb *knowledge.Base) *Engine {
	return &Engine{kb: kb}
}

// Knowledge returns the knowledge base the engine reads from.
func (e *Engine) Knowledge() *knowledge.Base {
	return e.kb
}

// StagesFor returns the ordered stages for role.
func (e *Engine) StagesFor(role constants.Role) ([]models.Stage, error) {
	stages, ok := e.kb.Stages(role)
	if !ok {
		return nil, &UnknownRoleError{Role: role}
	}
	return stages, nil
}

// Stage looks up one stage of a role by id.
func (e *Engine) Stage(role constants.Role, id string) (models.Stage, bool) {
	stages, ok := e.kb.Stages(role)
	if !ok {
		return models.Stage{}, false
	}
	if i := indexOf(stages, id); i >= 0 {
		return stages[i], true
	}
	return models.Stage{}, false
}

// CurrentStageIndex returns the position of the profile's stage, or -1 when
// the stage is unset, unknown, or the role is undefined.
func (e *Engine) CurrentStageIndex(p models.UserProfile) int {
	stages, ok := e.kb.Stages(p.Role)
	if !ok {
		return -1
	}
	return indexOf(stages, p.Stage)
}

// ProgressPercent returns how far through the stage list the profile is,
// in the range 0..100. The value is not rounded.
func (e *Engine) ProgressPercent(p models.UserProfile) float64 {
	stages, ok := e.kb.Stages(p.Role)
	if !ok {
		return 0
	}
	return Progress(indexOf(stages, p.Stage), len(stages))
}

// Progress converts a stage index into a percentage of a list of n stages.
// Lists shorter than two stages and the -1 index yield 0.
func Progress(index, n int) float64 {
	if n < 2 || index < 0 {
		return 0
	}
	if index > n-1 {
		index = n - 1
	}
	return float64(index) / float64(n-1) * 100
}

func indexOf(stages []models.Stage, id string) int {
	if id == "" {
		return -1
	}
	for i, s := range stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}
