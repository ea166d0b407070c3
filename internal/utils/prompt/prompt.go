// Package prompt asks the user yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"vidgrab/internal/logging"
)

// ErrCancelled is returned when the context ends before the user answers.
var ErrCancelled = errors.New("operation canceled during input")

// Confirm prints question and waits for a y/n answer. Anything but "y" or "yes" is a no.
//
// The read happens on its own goroutine so a cancelled context returns at once.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, question string) (bool, error) {
	logging.D(3, "Entering confirm dialogue...")

	if _, err := fmt.Fprintf(out, "%s [y/N]: ", question); err != nil {
		return false, err
	}

	type answer struct {
		text string
		err  error
	}
	answerChan := make(chan answer, 1)
	go func() {
		text, err := bufio.NewReader(in).ReadString('\n')
		answerChan <- answer{text: text, err: err}
	}()

	select {
	case a := <-answerChan:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, a.err
		}
		switch strings.ToLower(strings.TrimSpace(a.text)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}

	case <-ctx.Done():
		fmt.Fprintln(out)
		return false, ErrCancelled
	}
}
