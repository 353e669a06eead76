package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB (pool or
// transaction) is stored in the request context.
const DBContextKey = contextKey("db")
