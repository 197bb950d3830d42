// Package scoping implements the tournament row filter that partitions all
// administrative data: a non-superuser staff account sees and mutates only
// records of the single tournament pinned on its profile, and an unpinned
// account sees nothing at all.
package scoping

import (
	"core/apperr"

	"gorm.io/gorm"
)

// Scoped is implemented by every entity carrying a tournament field.
type Scoped interface {
	GetTournamentID() uint
	SetTournamentID(uint)
}

// Deriver is implemented by entities whose tournament follows from a parent
// relation (a participant inherits its team's tournament). For superusers the
// derivation replaces manual input; for staff the derived value is checked
// against the pinned tournament by the owning service.
type Deriver interface {
	DeriveTournamentID(tx *gorm.DB) (uint, error)
}

// Rule describes how one entity type hangs off a tournament: either a direct
// column, or an alias path of JOINs for entities without one. Refs lists the
// reference fields whose pickers are restricted to the record's tournament.
type Rule struct {
	Table  string
	Column string   // direct tournament column, empty when aliased
	Joins  []string // JOIN clauses reaching the aliased column
	Alias  string   // qualified tournament column after Joins
	Refs   []string
}

// Registry is the startup-built table of scoping rules, one per entity type.
// It is constructed once in NewRegistry and never mutated afterwards.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry builds the rule table for every tournament-scoped entity.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]Rule{
		// The tournament itself scopes on its own primary key: a pinned
		// account sees exactly one row here.
		"tournaments": {Table: "tournaments", Column: "id"},
		"rounds":      {Table: "tournament_rounds", Column: "tournament_id"},
		"teams":       {Table: "teams", Column: "tournament_id"},
		"participants": {
			Table: "participants", Column: "tournament_id",
			Refs: []string{"team"},
		},
		"leaders": {
			Table: "leaders", Column: "tournament_id",
			Refs: []string{"team"},
		},
		"jurors":   {Table: "jurors", Column: "tournament_id"},
		"rooms":    {Table: "rooms", Column: "tournament_id"},
		"problems": {Table: "problems", Column: "tournament_id"},
		"fights": {
			Table: "fights", Column: "tournament_id",
			Refs: []string{"round", "room", "team1", "team2", "team3", "team4", "jury"},
		},
		// Stages, refusals and marks have no tournament column of their own;
		// they reach one through the owning fight.
		"fight_stages": {
			Table: "fight_stages",
			Joins: []string{"JOIN fights ON fights.id = fight_stages.fight_id"},
			Alias: "fights.tournament_id",
			Refs:  []string{"fight", "problem", "reporter", "opponent", "reviewer"},
		},
		"refusals": {
			Table: "refusals",
			Joins: []string{
				"JOIN fight_stages ON fight_stages.id = refusals.fight_stage_id",
				"JOIN fights ON fights.id = fight_stages.fight_id",
			},
			Alias: "fights.tournament_id",
			Refs:  []string{"fight_stage", "problem"},
		},
		"juror_points": {
			Table: "juror_points",
			Joins: []string{
				"JOIN fight_stages ON fight_stages.id = juror_points.fight_stage_id",
				"JOIN fights ON fights.id = fight_stages.fight_id",
			},
			Alias: "fights.tournament_id",
			Refs:  []string{"fight_stage", "juror"},
		},
	}}
}

// Rule returns the scoping rule for an entity key. Unknown keys panic: every
// scoped entity must be declared at startup.
func (reg *Registry) Rule(entity string) Rule {
	rule, ok := reg.rules[entity]
	if !ok {
		panic("scoping: no rule registered for entity " + entity)
	}
	return rule
}

// Filter narrows a query to the caller's visible set. Superusers pass
// through unfiltered; unpinned staff match nothing.
func (r Rule) Filter(db *gorm.DB, caller Caller) *gorm.DB {
	if caller.Superuser {
		return db
	}
	if caller.Tournament == nil {
		return db.Where("1 = 0")
	}
	if len(r.Joins) > 0 {
		for _, join := range r.Joins {
			db = db.Joins(join)
		}
		return db.Where(r.Alias+" = ?", *caller.Tournament)
	}
	return db.Where(r.Table+"."+r.Column+" = ?", *caller.Tournament)
}

// Stamp fixes the tournament field of a record about to be saved. Staff
// writes are force-pinned to the caller's tournament, whatever the request
// carried; superuser writes honor the submitted value unless the entity
// derives its tournament from a parent. Unpinned staff writes are rejected.
func Stamp(tx *gorm.DB, caller Caller, obj Scoped) error {
	if caller.Superuser {
		if d, ok := obj.(Deriver); ok {
			id, err := d.DeriveTournamentID(tx)
			if err != nil {
				return err
			}
			obj.SetTournamentID(id)
		}
		return nil
	}
	if caller.Tournament == nil {
		return apperr.ErrNoTournament
	}
	obj.SetTournamentID(*caller.Tournament)
	return nil
}
