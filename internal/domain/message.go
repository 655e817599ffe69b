package domain

import (
	"encoding/json"
	"fmt"
)

// Sender tags the variant of a Message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderStatus Sender = "status"
)

// Valid reports whether s is one of the known variants.
func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderAI, SenderStatus:
		return true
	}
	return false
}

func (s *Sender) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("domain: decode sender: %w", err)
	}
	v := Sender(raw)
	if !v.Valid() {
		return fmt.Errorf("domain: unknown sender %q", raw)
	}
	*s = v
	return nil
}

// Message is one immutable transcript entry.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

func UserMessage(text string) Message   { return Message{Sender: SenderUser, Text: text} }
func AIMessage(text string) Message     { return Message{Sender: SenderAI, Text: text} }
func StatusMessage(text string) Message { return Message{Sender: SenderStatus, Text: text} }

// Counters are the per-borrower send/receive tallies. Received never exceeds Sent.
type Counters struct {
	Sent     int `json:"sent"`
	Received int `json:"received"`
}
