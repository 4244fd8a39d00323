package schema

// UserProgressTable represents the 'achievement.userprogress' table.
// (userid, tierid) is unique; achievementid is denormalised for reads.
type UserProgressTable struct {
	Table            string
	ID               string
	UserID           string
	AchievementID    string
	TierID           string
	Count            string
	Progress         string
	Completed        string
	CompletedAt      string
	LastCalculatedAt string
}

// UserProgress is the schema definition for achievement.userprogress
var UserProgress = UserProgressTable{
	Table:            "achievement.userprogress",
	ID:               "id",
	UserID:           "userid",
	AchievementID:    "achievementid",
	TierID:           "tierid",
	Count:            "count",
	Progress:         "progress",
	Completed:        "completed",
	CompletedAt:      "completedat",
	LastCalculatedAt: "lastcalculatedat",
}

func (t UserProgressTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.AchievementID, t.TierID, t.Count, t.Progress,
		t.Completed, t.CompletedAt, t.LastCalculatedAt,
	}
}
