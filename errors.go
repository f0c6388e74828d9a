package kaboom

import "errors"

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrSceneNotFound    = errors.New("scene not found")
	ErrInvalidComponent = errors.New("invalid component")
	ErrDecode           = errors.New("decode failed")
	ErrTooManyTags      = errors.New("too many distinct tags")
	ErrNoActiveScene    = errors.New("no active scene")
)
