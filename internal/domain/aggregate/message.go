package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageState is the persisted shape of a Message
type MessageState struct {
	ID             string
	ConversationID string
	SenderID       string
	ReceiverID     string
	Text           string
	Read           bool
	CreatedAt      time.Time
}

// Message is a direct message between two users
type Message struct {
	id             string
	conversationID string
	senderID       string
	receiverID     string
	text           string
	read           bool
	createdAt      time.Time
}

// ConversationID is the two participant ids, sorted and joined with "-"
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "-")
}

func NewMessage(senderID, receiverID, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if senderID == "" || receiverID == "" {
		return nil, fmt.Errorf("sender and receiver are required")
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot send a message to yourself")
	}
	if text == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}
	return &Message{
		id:             uuid.New().String(),
		conversationID: ConversationID(senderID, receiverID),
		senderID:       senderID,
		receiverID:     receiverID,
		text:           text,
		createdAt:      time.Now(),
	}, nil
}

func ReconstructMessage(s MessageState) *Message {
	return &Message{
		id:             s.ID,
		conversationID: s.ConversationID,
		senderID:       s.SenderID,
		receiverID:     s.ReceiverID,
		text:           s.Text,
		read:           s.Read,
		createdAt:      s.CreatedAt,
	}
}

func (m *Message) State() MessageState {
	return MessageState{
		ID:             m.id,
		ConversationID: m.conversationID,
		SenderID:       m.senderID,
		ReceiverID:     m.receiverID,
		Text:           m.text,
		Read:           m.read,
		CreatedAt:      m.createdAt,
	}
}

// Counterpart returns the other participant from userID's point of view
func (m *Message) Counterpart(userID string) string {
	if m.senderID == userID {
		return m.receiverID
	}
	return m.senderID
}

func (m *Message) ID() string             { return m.id }
func (m *Message) ConversationID() string { return m.conversationID }
func (m *Message) SenderID() string       { return m.senderID }
func (m *Message) ReceiverID() string     { return m.receiverID }
func (m *Message) Text() string           { return m.text }
func (m *Message) IsRead() bool           { return m.read }
func (m *Message) CreatedAt() time.Time   { return m.createdAt }
