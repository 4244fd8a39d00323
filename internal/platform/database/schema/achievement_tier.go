package schema

// AchievementTierTable represents the 'achievement.tier' table
type AchievementTierTable struct {
	Table         string
	ID            string
	AchievementID string
	Difficulty    string
	Criteria      string
	Rarity        string
	UpdatedAt     string
}

// AchievementTier is the schema definition for achievement.tier
var AchievementTier = AchievementTierTable{
	Table:         "achievement.tier",
	ID:            "id",
	AchievementID: "achievementid",
	Difficulty:    "difficulty",
	Criteria:      "criteria",
	Rarity:        "rarity",
	UpdatedAt:     "updatedat",
}

func (t AchievementTierTable) Columns() []string {
	return []string{t.ID, t.AchievementID, t.Difficulty, t.Criteria, t.Rarity, t.UpdatedAt}
}
