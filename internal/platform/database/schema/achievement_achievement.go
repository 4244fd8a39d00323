package schema

// AchievementTable represents the 'achievement.achievement' table
type AchievementTable struct {
	Table       string
	ID          string
	CodeName    string
	Name        string
	Description string
	Domain      string
	CreatedAt   string
	UpdatedAt   string
}

// Achievement is the schema definition for achievement.achievement
var Achievement = AchievementTable{
	Table:       "achievement.achievement",
	ID:          "id",
	CodeName:    "codename",
	Name:        "name",
	Description: "description",
	Domain:      "domain",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t AchievementTable) Columns() []string {
	return []string{t.ID, t.CodeName, t.Name, t.Description, t.Domain, t.CreatedAt, t.UpdatedAt}
}
