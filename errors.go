package bcf

import "errors"

var (
	ErrArchive            = errors.New("bcf: invalid archive")
	ErrUnsupportedInput   = errors.New("bcf: unsupported input")
	ErrUnsupportedVersion = errors.New("bcf: unsupported version")
	ErrParse              = errors.New("bcf: invalid XML")
	ErrSchemaMismatch     = errors.New("bcf: schema mismatch")
	ErrMissingEntry       = errors.New("bcf: missing entry")
	ErrDuplicatePath      = errors.New("bcf: duplicate path")
	ErrLimitExceeded      = errors.New("bcf: limit exceeded")
	ErrValidation         = errors.New("bcf: validation failed")
)
