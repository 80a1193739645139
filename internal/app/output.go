package app

import (
	"fmt"
	"io"
)

// WriteResult prints the counts in the fixed two-line format,
// followed by a token line when withTokens is set.
func WriteResult(w io.Writer, result Result, withTokens bool) error {
	if _, err := fmt.Fprintf(w, "num_words : %d\nnum_chars : %d\n", result.Words, result.Chars); err != nil {
		return fmt.Errorf("failed to write counts: %w", err)
	}
	if !withTokens {
		return nil
	}
	if _, err := fmt.Fprintf(w, "num_tokens : %d\n", result.Tokens); err != nil {
		return fmt.Errorf("failed to write token count: %w", err)
	}
	return nil
}
