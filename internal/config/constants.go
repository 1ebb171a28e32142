package config

// DefaultDatabasePath is the default path for the application database.
const DefaultDatabasePath = "./readshelf.db"

// DefaultBcryptCost is the default bcrypt cost factor for password hashing.
const DefaultBcryptCost = 12
