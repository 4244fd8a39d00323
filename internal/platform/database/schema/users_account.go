package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table      string
	ID         string
	Username   string
	IsActive   string
	LastSeenAt string
	CreatedAt  string
	DeletedAt  string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:      "users.account",
	ID:         "id",
	Username:   "username",
	IsActive:   "isactive",
	LastSeenAt: "lastseenat",
	CreatedAt:  "createdat",
	DeletedAt:  "deletedat",
}
