package apperrors

import "errors"

var ErrPermissionDenied = errors.New("store rejected the write under access rules")
var ErrUnavailable = errors.New("store is unavailable")
var ErrNotFound = errors.New("record not found")
var ErrValidation = errors.New("request failed validation")
var ErrSoldOut = errors.New("slot has no remaining capacity")
var ErrEmptyMood = errors.New("mood is empty")
