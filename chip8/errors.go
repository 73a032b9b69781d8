package chip8

import (
	"errors"
)

var (
	/// ErrProgramTooLarge is returned by Load when the image does not fit
	/// in the program region.
	///
	ErrProgramTooLarge = errors.New("program too large")

	/// ErrStackOverflow is returned when pushing onto a full call stack.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned when popping an empty call stack.
	///
	ErrStackUnderflow = errors.New("stack empty")

	/// ErrRunning is returned by Clock operations that require it stopped.
	///
	ErrRunning = errors.New("clock is running")
)
