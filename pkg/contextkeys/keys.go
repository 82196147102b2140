package contextkeys

type contextKey string

const (
	UserIDKey             contextKey = "UserID"
	RolIDKey              contextKey = "RolID"
	UserPermissionsMapKey contextKey = "userPermissionsMap"
)
