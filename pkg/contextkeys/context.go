package contextkeys

type contextKey string

// DBContextKey is the gin key under which DBMiddleware stores the
// request-scoped *gorm.DB.
const DBContextKey = contextKey("db")
