package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// ConfirmFunc asks the user a yes/no question and reports their answer.
// Tests supply a canned implementation.
type ConfirmFunc func(question string) bool

// StdinConfirm prompts on stdout and reads the answer from stdin.
func StdinConfirm(question string) bool {
	return askYesNo(os.Stdin, os.Stdout, question)
}

// askYesNo asks until the answer parses as yes or no. A closed input
// stream counts as no, so a non-interactive run never overwrites.
func askYesNo(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/n]\n", question)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes", "1", "true", "on":
			return true
		case "n", "no", "0", "false", "off":
			return false
		}
		fmt.Fprintln(w, "Please respond with 'y' or 'n'.")
	}
	return false
}

// prettyPrint renders the table to w in aligned columns.
func prettyPrint(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
