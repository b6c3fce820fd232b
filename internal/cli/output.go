// Package cli provides output formatting for the kotae command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kotae-ai/kotae/internal/models"
)

// OutputFormat is the format for answer output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteChatAnswer writes a chat answer to w in the given format.
func WriteChatAnswer(w io.Writer, resp *models.ChatResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		writeChatAnswerText(w, resp)
		return nil
	}
}

func writeChatAnswerText(w io.Writer, resp *models.ChatResponse) {
	fmt.Fprintf(w, "\n%s\n", resp.Message)
	if len(resp.Sources) > 0 {
		fmt.Fprintf(w, "\nSources: %s\n", strings.Join(resp.Sources, ", "))
	}
}
