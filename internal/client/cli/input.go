package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

func prompt(w io.Writer, text, hint string) error {
	_, err := fmt.Fprintf(w, "%s%s\n%s", Info.Sprint(text), hint, Prompt.Sprint("> "))
	return err
}

// readLine returns one line without its line ending. A final line without a
// newline is returned as is; io.EOF is reported only when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText prompts on w and reads a single trimmed line from reader.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, text string, w io.Writer) (string, error) {
	if err := prompt(w, text, ""); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
// The caller should wipe the returned slice when done.
func GetPassword(w io.Writer) ([]byte, error) {
	if err := prompt(w, "Enter password", ""); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// GetMultiline reads lines until an empty one (or EOF) and joins them with
// '\n'. Used for story descriptions.
func GetMultiline(reader *bufio.Reader, text string, w io.Writer) (string, error) {
	if err := prompt(w, text, " (empty line to finish)"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := readLine(reader)
		if err != nil || line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
