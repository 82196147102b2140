package utils

import (
	"context"

	"gestion-system/pkg/contextkeys"
	apperrors "gestion-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetRolIDFromCtx(ctx context.Context) (uint64, error) {
	rolID, ok := ctx.Value(contextkeys.RolIDKey).(uint64)
	if !ok || rolID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return rolID, nil
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	perms, ok := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
	if !ok {
		return nil, apperrors.ErrForbidden
	}
	return perms, nil
}
