package model

// ConversationTurn is one question-answering exchange. Turns are ephemeral
// and never persisted.
type ConversationTurn struct {
	Question  string
	Answer    string
	Citations []string
}
