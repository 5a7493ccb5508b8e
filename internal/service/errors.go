package service

import (
	"errors"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/validation"
)

// Client-facing messages.
const (
	MsgInvalidCredentials   = "Invalid email or password"
	MsgEmailRegistered      = "Email already registered"
	MsgStoreEmailRegistered = "Store email already registered"
	MsgStoreFieldsRequired  = "Name, email, and address are required"
	MsgCurrentPasswordWrong = "Current password is incorrect"
	MsgUserNotFound         = "User not found"
	MsgStoreNotFound        = "Store not found"
	MsgStoreIDRequired      = "Store ID is required"
	MsgInvalidOwner         = "Owner must be an existing store owner"
	MsgInvalidSortField     = "Invalid sort field"
	MsgInvalidSortOrder     = "Invalid sort order"
)

// invalid converts a failed field check into a validation error. It returns
// an untyped nil when v is nil so callers can test the result against nil.
func invalid(v *validation.Error) error {
	if v == nil {
		return nil
	}
	return apperror.Validation(v.Message)
}

func sortError(err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidSortField):
		return apperror.Validation(MsgInvalidSortField)
	case errors.Is(err, repository.ErrInvalidSortOrder):
		return apperror.Validation(MsgInvalidSortOrder)
	default:
		return apperror.Internal(err)
	}
}
