package slug

import "errors"

var (
	ErrInvalidConfig         = errors.New("slug: invalid configuration")
	ErrUnknownTransliterator = errors.New("slug: unknown transliterator")
)
