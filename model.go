/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"slices"
)

type Role string

const (
	PartnerA Role = "Partner A"
	PartnerB Role = "Partner B"
	Both     Role = "Both"
)

// Other returns the opposite partner role. Both has no opposite.
func (r Role) Other() Role {
	switch r {
	case PartnerA:
		return PartnerB
	case PartnerB:
		return PartnerA
	default:
		return r
	}
}

func (r *Role) UnmarshalText(b []byte) error {
	switch v := Role(b); v {
	case PartnerA, PartnerB, Both:
		*r = v
		return nil
	default:
		return fmt.Errorf("unknown role %q", string(b))
	}
}

type Gender string

const (
	Male      Gender = "M"
	Female    Gender = "F"
	NonBinary Gender = "NB"
)

var genders = []Gender{Male, Female, NonBinary}

func (g Gender) Valid() bool {
	return slices.Contains(genders, g)
}

func (g *Gender) UnmarshalText(b []byte) error {
	if v := Gender(b); v.Valid() {
		*g = v
		return nil
	}
	return fmt.Errorf("unknown gender %q", string(b))
}

// Score is one partner's stance on a preference topic.
type Score string

const (
	Yes   Score = "YES"
	Maybe Score = "MAYBE"
	No    Score = "NO"
)

func (s Score) Valid() bool {
	return s == Yes || s == Maybe || s == No
}

func (s *Score) UnmarshalText(b []byte) error {
	if v := Score(b); v.Valid() {
		*s = v
		return nil
	}
	return fmt.Errorf("unknown preference score %q", string(b))
}

// Level is the game's intensity tier.
type Level string

const (
	LevelSpark  Level = "Spark"
	LevelWarmup Level = "Warmup"
	LevelHeat   Level = "Heat"
)

var levels = []Level{LevelSpark, LevelWarmup, LevelHeat}

func (l Level) Valid() bool {
	return slices.Contains(levels, l)
}

// Rank orders levels from 0 (Spark) upwards; unknown levels rank -1.
func (l Level) Rank() int {
	return slices.Index(levels, l)
}

// Next returns the following tier. Heat and unknown levels stay put.
func (l Level) Next() Level {
	i := l.Rank()
	if i < 0 || i == len(levels)-1 {
		return l
	}
	return levels[i+1]
}

func (l *Level) UnmarshalText(b []byte) error {
	if v := Level(b); v.Valid() {
		*l = v
		return nil
	}
	return fmt.Errorf("unknown level %q", string(b))
}

// UserSession is one partner's profile. Field order matches the sync payload.
type UserSession struct {
	Name        string           `json:"name"`
	Gender      Gender           `json:"gender"`
	Preferences map[string]Score `json:"preferences"`
	Inventory   []string         `json:"inventory"`
	Role        Role             `json:"role"`
}

func (u UserSession) clone() UserSession {
	out := u
	if u.Preferences != nil {
		out.Preferences = make(map[string]Score, len(u.Preferences))
		for k, v := range u.Preferences {
			out.Preferences[k] = v
		}
	}
	if u.Inventory != nil {
		out.Inventory = slices.Clone(u.Inventory)
	}
	return out
}

func (u UserSession) Has(item string) bool {
	return slices.Contains(u.Inventory, item)
}

type GameCard struct {
	ID          string   `json:"id"`
	Level       Level    `json:"level"`
	Instruction string   `json:"instruction"`
	Target      Role     `json:"target"`
	Duration    int      `json:"duration,omitempty"` // seconds
	Tags        []string `json:"tags,omitempty"`
}

type InventoryItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type Topic struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// RoomState is the locally held view of both partners.
type RoomState struct {
	ID          string       `json:"id"`
	Level       Level        `json:"level"`
	ActiveTurn  Role         `json:"activeTurn"`
	PartnerA    *UserSession `json:"partnerA,omitempty"`
	PartnerB    *UserSession `json:"partnerB,omitempty"`
	CurrentCard *GameCard    `json:"currentCard,omitempty"`
	IsSyncing   bool         `json:"isSyncing"`
}

func (r RoomState) clone() RoomState {
	out := r
	if r.PartnerA != nil {
		a := r.PartnerA.clone()
		out.PartnerA = &a
	}
	if r.PartnerB != nil {
		b := r.PartnerB.clone()
		out.PartnerB = &b
	}
	if r.CurrentCard != nil {
		c := *r.CurrentCard
		c.Tags = slices.Clone(r.CurrentCard.Tags)
		out.CurrentCard = &c
	}
	return out
}

// Partner returns the profile held for role, or nil.
func (r *RoomState) Partner(role Role) *UserSession {
	switch role {
	case PartnerA:
		return r.PartnerA
	case PartnerB:
		return r.PartnerB
	default:
		return nil
	}
}
