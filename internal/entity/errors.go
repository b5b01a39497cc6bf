package entity

import "errors"

var (
	ErrLeadNotFound    = errors.New("lead not found")
	ErrDuplicateLeadID = errors.New("lead id already exists")
)
