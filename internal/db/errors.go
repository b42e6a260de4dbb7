package db

import "errors"

// Missing-precondition errors returned by updates
var (
	ErrBrandNotFound        = errors.New("brand not found")
	ErrGuidelineNotFound    = errors.New("brand guideline not found")
	ErrInstructionsNotFound = errors.New("brand instructions not found")
	ErrAssetNotFound        = errors.New("asset not found")
	ErrAdminExists          = errors.New("admin with this email already exists")
)
