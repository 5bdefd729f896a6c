package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExecution     = errors.New("execution error")

	ErrDownload     = errors.New("download failed")
	ErrCorpusFormat = errors.New("malformed corpus")
	ErrEmptyCorpus  = errors.New("empty corpus")
	ErrCredential   = errors.New("missing credentials")
	ErrPublish      = errors.New("publish failed")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"

	KindDownload     ErrorKind = "download"
	KindCorpusFormat ErrorKind = "corpus_format"
	KindEmptyCorpus  ErrorKind = "empty_corpus"
	KindCredential   ErrorKind = "credential"
	KindPublish      ErrorKind = "publish"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:      ErrNotFound,
	KindInvalidConfig: ErrInvalidConfig,
	KindExecution:     ErrExecution,
	KindDownload:      ErrDownload,
	KindCorpusFormat:  ErrCorpusFormat,
	KindEmptyCorpus:   ErrEmptyCorpus,
	KindCredential:    ErrCredential,
	KindPublish:       ErrPublish,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or URL
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrEmptyCorpus) match on kind even when the
// wrapped cause is a plain error.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
