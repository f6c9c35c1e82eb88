package domain

// SystemSenderID marks notices generated by the server itself.
const SystemSenderID = "system"

// JoinNotice is the text announced to existing members when someone joins.
const JoinNotice = "A new user has joined the room"

// ChatMessage is what members receive on the message event.
type ChatMessage struct {
	Text     string `json:"text"`
	SenderID string `json:"senderId"`
}

func NewChatMessage(sender ConnID, text string) ChatMessage {
	return ChatMessage{
		Text:     text,
		SenderID: sender.String(),
	}
}

func NewSystemNotice(text string) ChatMessage {
	return ChatMessage{
		Text:     text,
		SenderID: SystemSenderID,
	}
}
