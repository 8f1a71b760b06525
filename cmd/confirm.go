package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks the user to confirm an irreversible action.
func confirm(r io.Reader, w io.Writer, what string) bool {
	fmt.Fprintf(w, "%s 계속하시겠습니까? [y/N] ", what)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		fmt.Fprintln(w, "취소되었습니다.")
		return false
	}
}
