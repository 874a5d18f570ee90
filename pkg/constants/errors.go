package constants

import "errors"

// Errors
var (
	ErrNoAPIKey        = errors.New("api key not set")
	ErrNoDBURL         = errors.New("database url not set")
	ErrInvalidDBURL    = errors.New("database url is not a valid http(s) url")
	ErrConnectionInUse = errors.New("connection name already registered")
	ErrNoConnection    = errors.New("no connection registered under that name")
	ErrNoCursor        = errors.New("previous response carries no pagination cursor")
)
