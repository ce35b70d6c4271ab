package schema

// UsersAccountTable represents the 'users.account' table (staff members)
type UsersAccountTable struct {
	Table        string
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	Name:         "name",
	PasswordHash: "passwordhash",
	Role:         "role",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
