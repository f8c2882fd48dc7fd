// Package web exposes the interpreted game over HTTP and pushes
// feedback updates to websocket subscribers, for remote monitors and
// browser boards.
package web

import (
	"encoding/json"
	"log"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
)

// Server publishes the latest engine state to HTTP and websocket
// clients. It holds no game logic; something else ticks the engine
// and calls Update.
type Server struct {
	app *fiber.App

	mu    sync.Mutex
	state *engine.GameState
	fb    feedback.Board
	conns map[string]*websocket.Conn
}

func NewServer() *Server {
	s := &Server{
		app:   fiber.New(),
		conns: make(map[string]*websocket.Conn),
	}

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, OPTIONS",
	}))

	s.app.Get("/api/state", s.handleState)
	s.app.Get("/api/feedback", s.handleFeedback)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/feedback", websocket.New(s.handleConn, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	return s
}

// Listen blocks serving on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Serve blocks serving on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Update stores the newest state and feedback and broadcasts them to
// every connected subscriber. Safe to call from any goroutine.
func (s *Server) Update(state *engine.GameState, fb feedback.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.fb = fb

	stateMsg := s.stateMessage().Encode()
	fbMsg := s.feedbackMessage().Encode()
	for id, c := range s.conns {
		if err := s.writeMessage(c, TypeMessageState, stateMsg); err != nil {
			log.Printf("drop subscriber %s: %v", id, err)
			c.Close()
			delete(s.conns, id)
			continue
		}
		if err := s.writeMessage(c, TypeMessageFeedback, fbMsg); err != nil {
			log.Printf("drop subscriber %s: %v", id, err)
			c.Close()
			delete(s.conns, id)
		}
	}
}

func (s *Server) writeMessage(c *websocket.Conn, t MessageType, data json.RawMessage) error {
	return c.WriteJSON(MessageTransport{MsgType: t, Data: data})
}

func (s *Server) stateMessage() MessageState {
	msg := MessageState{}
	if s.state == nil {
		return msg
	}
	msg.Fen = s.state.FEN
	msg.Turn = s.state.Turn.String()
	if s.state.LastMove != nil {
		msg.LastMove = s.state.LastMove.String()
	}
	msg.InCheck = s.state.InCheck
	msg.Checkmate = s.state.Checkmate
	msg.Stalemate = s.state.Stalemate
	return msg
}

func (s *Server) feedbackMessage() MessageFeedback {
	msg := MessageFeedback{}
	for i := 0; i < 64; i++ {
		msg.Squares[i] = s.fb.Get(board.Square(i)).String()
	}
	return msg
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.Lock()
	msg := s.stateMessage()
	s.mu.Unlock()
	return c.JSON(msg)
}

func (s *Server) handleFeedback(c *fiber.Ctx) error {
	s.mu.Lock()
	msg := s.feedbackMessage()
	s.mu.Unlock()
	return c.JSON(msg)
}

// handleConn registers a subscriber, sends it the current state, then
// holds the connection open until the client goes away. Broadcasts
// happen from Update. The initial send runs under the same lock that
// orders broadcasts: a conn must never have two writers, so it joins
// s.conns only after its catch-up messages are out.
func (s *Server) handleConn(c *websocket.Conn) {
	id := uuid.New().String()

	s.mu.Lock()
	err := s.writeMessage(c, TypeMessageState, s.stateMessage().Encode())
	if err == nil {
		err = s.writeMessage(c, TypeMessageFeedback, s.feedbackMessage().Encode())
	}
	if err == nil {
		s.conns[id] = c
	}
	s.mu.Unlock()
	if err != nil {
		log.Printf("subscriber %s: %v", id, err)
		c.Close()
		return
	}

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.conns, id)
	s.mu.Unlock()
	c.Close()
}
