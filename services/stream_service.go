package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"tasktrail/tasktrail/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Stream message types.
const (
	EventAppended = "event.appended"
	EventUndone   = "event.undone"
)

// ServerMessage is what the activity stream sends to clients.
type ServerMessage struct {
	Type  string        `json:"type"`
	Event *models.Event `json:"event"`
}

// StreamServiceInterface fans appended and undone events out to
// connected websocket clients. Delivery is best-effort: a slow client
// is dropped, and anyone can reload /activity for the full log.
type StreamServiceInterface interface {
	Start()
	Stop()
	Publish(msg ServerMessage)
	HandleConnection(c *gin.Context)
}

var StreamServiceInstance StreamServiceInterface

// publishEvent broadcasts to the stream hub when one is running.
// Services call it only after their transaction has committed.
func publishEvent(msgType string, event *models.Event) {
	if StreamServiceInstance != nil {
		StreamServiceInstance.Publish(ServerMessage{Type: msgType, Event: event})
	}
}

// Client is one connected websocket.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

type StreamService struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stopChan   chan struct{}

	upgrader websocket.Upgrader

	mu        sync.Mutex
	isRunning bool
}

func NewStreamService() *StreamService {
	return &StreamService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stopChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Single-user local tool; CORS middleware handles origins.
				return true
			},
		},
	}
}

// Start runs the hub loop in a goroutine.
func (s *StreamService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	go s.run()
}

func (s *StreamService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	s.isRunning = false
	close(s.stopChan)
}

func (s *StreamService) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *StreamService) run() {
	for {
		select {
		case client := <-s.register:
			s.clients[client.ID] = client
		case client := <-s.unregister:
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.Send)
			}
		case message := <-s.broadcast:
			for id, client := range s.clients {
				select {
				case client.Send <- message:
				default:
					// Client can't keep up; drop it.
					delete(s.clients, id)
					close(client.Send)
				}
			}
		case <-s.stopChan:
			for id, client := range s.clients {
				delete(s.clients, id)
				close(client.Send)
			}
			return
		}
	}
}

// Publish queues a message for all connected clients.
func (s *StreamService) Publish(msg ServerMessage) {
	if !s.running() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal stream message: %v", err)
		return
	}
	select {
	case s.broadcast <- data:
	case <-s.stopChan:
	}
}

// HandleConnection upgrades the request and serves the client until it
// disconnects. The session middleware has already vetted the request.
func (s *StreamService) HandleConnection(c *gin.Context) {
	if !s.running() {
		c.String(http.StatusServiceUnavailable, "activity stream is not running")
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	s.register <- client

	go s.writePump(client)
	s.readPump(client)
}

func (s *StreamService) writePump(client *Client) {
	defer client.Conn.Close()
	for message := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump discards inbound messages; the stream is one-way. It exists
// to notice the client going away.
func (s *StreamService) readPump(client *Client) {
	defer func() {
		select {
		case s.unregister <- client:
		case <-s.stopChan:
		}
		client.Conn.Close()
	}()
	client.Conn.SetReadLimit(512)
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
