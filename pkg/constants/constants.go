package constants

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance for DTO struct tags.
var Validate = validator.New(validator.WithRequiredStructEnabled())

type contextKey int

const (
	PoolKey contextKey = iota
	TxKey
	LoggerKey
	ActorKey
)
