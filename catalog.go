package main

import (
	"slices"
)

var inventory = []InventoryItem{
	{ID: "blindfold", Label: "Blindfold", Icon: "🙈"},
	{ID: "feather", Label: "Feather", Icon: "🪶"},
	{ID: "massage-oil", Label: "Massage oil", Icon: "🧴"},
	{ID: "candles", Label: "Candles", Icon: "🕯️"},
	{ID: "silk-scarf", Label: "Silk scarf", Icon: "🧣"},
	{ID: "ice", Label: "Ice cubes", Icon: "🧊"},
	{ID: "music", Label: "Playlist", Icon: "🎵"},
	{ID: "wine", Label: "Wine", Icon: "🍷"},
}

var topics = []Topic{
	{Key: "compliments", Label: "Compliments and sweet talk"},
	{Key: "massage", Label: "Slow massage"},
	{Key: "dancing", Label: "Private dance"},
	{Key: "roleplay", Label: "Role play"},
	{Key: "sensory", Label: "Sensory play"},
	{Key: "bondage", Label: "Light restraint"},
}

var deck = []GameCard{
	{ID: "spark-compliment", Level: LevelSpark, Target: Both, Duration: 60,
		Instruction: "Take turns naming three things you find irresistible about each other.",
		Tags:        []string{"compliments"}},
	{ID: "spark-memory", Level: LevelSpark, Target: PartnerA,
		Instruction: "Describe the moment you first felt drawn to your partner."},
	{ID: "spark-question", Level: LevelSpark, Target: PartnerB,
		Instruction: "Ask your partner one question you have always wanted to ask."},
	{ID: "spark-toast", Level: LevelSpark, Target: Both,
		Instruction: "Pour a glass and toast to tonight.",
		Tags:        []string{"wine"}},
	{ID: "warmup-massage", Level: LevelWarmup, Target: PartnerA, Duration: 180,
		Instruction: "Give your partner a slow shoulder massage.",
		Tags:        []string{"massage", "massage-oil"}},
	{ID: "warmup-dance", Level: LevelWarmup, Target: PartnerB, Duration: 120,
		Instruction: "Put on a song and dance just for your partner.",
		Tags:        []string{"dancing", "music"}},
	{ID: "warmup-feather", Level: LevelWarmup, Target: Both, Duration: 90,
		Instruction: "Trace a feather along your partner's arms, then swap.",
		Tags:        []string{"sensory", "feather"}},
	{ID: "warmup-candles", Level: LevelWarmup, Target: Both,
		Instruction: "Light the candles and dim everything else.",
		Tags:        []string{"candles"}},
	{ID: "heat-blindfold", Level: LevelHeat, Target: PartnerA, Duration: 300,
		Instruction: "Blindfold your partner and guide them only with your voice.",
		Tags:        []string{"sensory", "blindfold"}},
	{ID: "heat-scarf", Level: LevelHeat, Target: PartnerB, Duration: 300,
		Instruction: "Loosely tie your partner's wrists with the scarf. Either of you can stop at any time.",
		Tags:        []string{"bondage", "silk-scarf"}},
	{ID: "heat-ice", Level: LevelHeat, Target: Both, Duration: 120,
		Instruction: "Take turns tracing an ice cube wherever your partner allows.",
		Tags:        []string{"sensory", "ice"}},
	{ID: "heat-scene", Level: LevelHeat, Target: Both, Duration: 600,
		Instruction: "Agree on a scene together and play it out.",
		Tags:        []string{"roleplay"}},
}

// Inventory returns a copy of the item catalog.
func Inventory() []InventoryItem {
	return slices.Clone(inventory)
}

func Topics() []Topic {
	return slices.Clone(topics)
}

func Deck() []GameCard {
	out := make([]GameCard, len(deck))
	for i, c := range deck {
		c.Tags = slices.Clone(c.Tags)
		out[i] = c
	}
	return out
}

func lookupItem(id string) (InventoryItem, bool) {
	for _, item := range inventory {
		if item.ID == id {
			return item, true
		}
	}
	return InventoryItem{}, false
}

func lookupTopic(key string) (Topic, bool) {
	for _, t := range topics {
		if t.Key == key {
			return t, true
		}
	}
	return Topic{}, false
}
