package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kotae-ai/kotae/internal/models"
)

func TestWriteChatAnswer_Text(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.ChatResponse{
		Success: true,
		Message: "Based on my portfolio: things.",
		Sources: []string{"about", "tools"},
	}
	if err := WriteChatAnswer(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Based on my portfolio: things.") {
		t.Errorf("missing answer: %q", out)
	}
	if !strings.Contains(out, "Sources: about, tools") {
		t.Errorf("missing sources: %q", out)
	}
}

func TestWriteChatAnswer_TextNoSources(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.ChatResponse{Success: true, Message: "No info.", Sources: []string{}}
	if err := WriteChatAnswer(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Sources:") {
		t.Error("empty source list should not be printed")
	}
}

func TestWriteChatAnswer_JSON(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.ChatResponse{Success: true, Message: "hi", Sources: []string{"about"}}
	if err := WriteChatAnswer(&buf, resp, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.ChatResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Message != "hi" || len(decoded.Sources) != 1 {
		t.Errorf("round trip: %+v", decoded)
	}
}
