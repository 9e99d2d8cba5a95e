package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey    ContextKey = "app"
	PoolKey   ContextKey = "pool"
	TxKey     ContextKey = "tx"
	UserKey   ContextKey = "user"
	ParamsKey ContextKey = "params"
	LoggerKey ContextKey = "logger"
)

// Validate is the shared validator instance. DTO Ok() methods use it so that
// struct tags are parsed once per process.
var Validate = validator.New(validator.WithRequiredStructEnabled())
