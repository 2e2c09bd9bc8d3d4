package certificate

import "errors"

// Template resolution errors
var (
	ErrTemplateNotFound           = errors.New("certificate template not found")
	ErrUnsupportedTemplateVersion = errors.New("certificate template version not supported")
)
