package domain

import "fmt"

// SourceFailure reports a failed fetch of a single listing source
type SourceFailure struct {
	Source string
	Err    error
}

func (e *SourceFailure) Error() string { return fmt.Sprintf("source %s: %v", e.Source, e.Err) }
func (e *SourceFailure) Unwrap() error { return e.Err }

// StorageFailure reports an unreachable or failing store
type StorageFailure struct {
	Op  string
	Err error
}

func (e *StorageFailure) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }
func (e *StorageFailure) Unwrap() error { return e.Err }

// MintFailure reports a failed affiliate link mint
type MintFailure struct {
	URL string
	Err error
}

func (e *MintFailure) Error() string { return fmt.Sprintf("mint %s: %v", e.URL, e.Err) }
func (e *MintFailure) Unwrap() error { return e.Err }

// PublishFailure reports a failed outbound send
type PublishFailure struct {
	Target Target
	Err    error
}

func (e *PublishFailure) Error() string { return fmt.Sprintf("publish to %s: %v", e.Target, e.Err) }
func (e *PublishFailure) Unwrap() error { return e.Err }

// ConfigFailure reports a malformed or unreadable list file
type ConfigFailure struct {
	Path string
	Err  error
}

func (e *ConfigFailure) Error() string { return fmt.Sprintf("config %s: %v", e.Path, e.Err) }
func (e *ConfigFailure) Unwrap() error { return e.Err }
