package domain

import "errors"

var (
	// ErrUnknownCommand is returned when a code action names no registered handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidArgument is returned when a code action carries the wrong argument type.
	ErrInvalidArgument = errors.New("invalid command argument")
	// ErrApplyFailed is returned when the edit sink rejects a batch of edits.
	ErrApplyFailed = errors.New("could not apply edits")
	// ErrActionOutOfRange is returned when a requested action index does not exist.
	ErrActionOutOfRange = errors.New("no such code action")
)

var (
	// ErrNoAction is returned when an action is requested where none applies.
	ErrNoAction = errors.New("no code action available")
	// ErrPositionOutOfRange is returned when a cursor lies outside the document.
	ErrPositionOutOfRange = errors.New("position outside document")
	// ErrProjectNotFound is returned when no .csproj exists above a path.
	ErrProjectNotFound = errors.New("no project file found")
)
