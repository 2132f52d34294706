package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef is a 1-based position in the task list as last printed.
type TaskRef struct {
	TaskNum int
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task reference at the start of args.
// Accepted forms: "3" and "#3". It returns the reference and the remaining args.
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	raw := strings.TrimPrefix(args[0], "#")
	if !isAllDigits(raw) {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", args[0])
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return TaskRef{TaskNum: num}, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
