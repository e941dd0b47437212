package model

import "time"

// Sender identifies who produced a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of the conversation log. Messages are never mutated after
// they are appended, so replaying them in order reconstructs the conversation.
type Message struct {
	ID         int64             `json:"id"`
	Sender     Sender            `json:"sender"`
	Text       string            `json:"text"`
	Options    []string          `json:"options,omitempty"`    // button labels
	IsTyping   bool              `json:"is_typing,omitempty"`  // placeholder shown while searching
	Properties []DisplayProperty `json:"properties,omitempty"` // property cards
	CreatedAt  time.Time         `json:"created_at"`
}

// NewUserMessage builds the user variant. Users never send options or cards.
func NewUserMessage(text string) Message {
	return Message{Sender: SenderUser, Text: text}
}

// NewBotMessage builds the bot variant
func NewBotMessage(text string, options ...string) Message {
	return Message{Sender: SenderBot, Text: text, Options: options}
}

// WithProperties attaches property cards to a bot message
func (m Message) WithProperties(props []DisplayProperty) Message {
	m.Properties = props
	return m
}

// Typing marks a bot message as the in-flight placeholder
func (m Message) Typing() Message {
	m.IsTyping = true
	return m
}

// IsUser reports whether the message came from the visitor
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
