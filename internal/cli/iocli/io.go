// Package iocli abstracts the terminal for the command line front end.
package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal of a CLI command.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput prints prompt and reads one line, without the line break
	ReadInput(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
