package web

import (
	"encoding/json"
	"log"
)

type MessageType int

const (
	TypeMessageState MessageType = iota
	TypeMessageFeedback
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageState:
		return "TypeMessageState"
	case TypeMessageFeedback:
		return "TypeMessageFeedback"
	default:
		return "Unknown MessageType"
	}
}

type MessageInterface interface {
	Type() MessageType
	Encode() json.RawMessage
}

type MessageTransport struct {
	MsgType MessageType
	Data    json.RawMessage
}

func (m MessageTransport) Type() MessageType {
	return m.MsgType
}

func (m MessageTransport) Encode() json.RawMessage {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panic(err)
	}
	return data
}

// MessageState carries the full interpreted game state.
type MessageState struct {
	Fen       string
	Turn      string
	LastMove  string
	InCheck   bool
	Checkmate bool
	Stalemate bool
}

func (m MessageState) Type() MessageType {
	return TypeMessageState
}

func (m MessageState) Encode() json.RawMessage {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panic(err)
	}
	return data
}

// MessageFeedback carries one tag name per square, a1 first.
type MessageFeedback struct {
	Squares [64]string
}

func (m MessageFeedback) Type() MessageType {
	return TypeMessageFeedback
}

func (m MessageFeedback) Encode() json.RawMessage {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panic(err)
	}
	return data
}
