// Package display writes sequences one element per line.
package display

import (
	"fmt"
	"io"
)

// Print writes every element of s to w in order, one per line.
func Print[E any](w io.Writer, s []E) error {
	for i, e := range s {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return fmt.Errorf("display: write element %d: %w", i, err)
		}
	}
	return nil
}
