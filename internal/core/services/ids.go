package services

import (
	"fmt"
	"strconv"
	"strings"
)

// nextSequentialID returns prefix followed by one more than the highest
// numeric suffix among ids carrying that prefix, zero-padded to width.
// Freed numbers are never reused while a higher one exists.
func nextSequentialID(prefix string, width int, ids []string) string {
	highest := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}
