package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// StreamClient handles the WebSocket connection to the Kalshi ticker
// feed. It is used in watch mode to refresh yes prices between scans
// without burning REST quota.
type StreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	streamURL       string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []TickerHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	nextID          int
	logger          *logrus.Logger
}

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// TickerHandler is called for each price update received from the stream
type TickerHandler func(update TickerUpdate) error

// TickerUpdate carries one market's refreshed prices
type TickerUpdate struct {
	Ticker   string `json:"market_ticker"`
	YesBid   int    `json:"yes_bid"`
	YesAsk   int    `json:"yes_ask"`
	Price    int    `json:"price"`
	OpenTime int64  `json:"ts"`
}

// streamEnvelope is the wire format of stream messages
type streamEnvelope struct {
	Type string          `json:"type"`
	ID   int             `json:"id,omitempty"`
	Msg  json.RawMessage `json:"msg,omitempty"`
}

// subscribeCommand subscribes to ticker channels for a set of markets
type subscribeCommand struct {
	ID     int             `json:"id"`
	Cmd    string          `json:"cmd"`
	Params subscribeParams `json:"params"`
}

type subscribeParams struct {
	Channels      []string `json:"channels"`
	MarketTickers []string `json:"market_tickers,omitempty"`
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// NewStreamClient creates a new stream client
func NewStreamClient(streamURL, apiKey string, logger *logrus.Logger) *StreamClient {
	if logger == nil {
		logger = logrus.New()
	}

	return &StreamClient{
		apiKey:          apiKey,
		streamURL:       streamURL,
		handlers:        make([]TickerHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		nextID:          1,
		logger:          logger,
	}
}

// Connect establishes the WebSocket connection
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.WithField("url", s.streamURL).Info("Connecting to market stream")

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	header := make(map[string][]string)
	if s.apiKey != "" {
		header["Authorization"] = []string{"Bearer " + s.apiKey}
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, header)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	s.logger.Info("Connected to market stream")

	// Start message reading loop
	go s.readMessages()

	return nil
}

// SubscribeToTickers subscribes to price updates for the given market tickers
func (s *StreamClient) SubscribeToTickers(ctx context.Context, tickers []string) error {
	s.mu.Lock()
	if !s.isConnected || s.conn == nil {
		s.mu.Unlock()
		return fmt.Errorf("not connected to stream")
	}
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	cmd := subscribeCommand{
		ID:  id,
		Cmd: "subscribe",
		Params: subscribeParams{
			Channels:      []string{"ticker"},
			MarketTickers: tickers,
		},
	}

	s.logger.WithField("markets", len(tickers)).Info("Subscribing to ticker channel")
	return s.sendMessage(cmd)
}

// AddHandler registers a ticker update handler
func (s *StreamClient) AddHandler(handler TickerHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the WebSocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var envelope streamEnvelope
		err := s.conn.ReadJSON(&envelope)
		if err != nil {
			s.logger.WithError(err).Warn("Stream read failed")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		if envelope.Type != "ticker" {
			continue
		}

		var update TickerUpdate
		if err := json.Unmarshal(envelope.Msg, &update); err != nil {
			s.logger.WithError(err).Debug("Dropping unparseable ticker message")
			continue
		}

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(update); err != nil {
				s.logger.WithError(err).Warn("Ticker handler error")
			}
		}
	}
}

// sendMessage sends a JSON message over the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	return s.conn.Close()
}

// Reconnect re-establishes a dropped connection with exponential backoff
func (s *StreamClient) Reconnect(ctx context.Context) error {
	backoff := s.reconnectConfig.InitialBackoff

	for attempt := 1; attempt <= s.reconnectConfig.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		err := s.Connect(ctx)
		if err == nil {
			return nil
		}
		s.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Stream reconnect failed")

		backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
		if backoff > s.reconnectConfig.MaxBackoff {
			backoff = s.reconnectConfig.MaxBackoff
		}
	}

	return fmt.Errorf("gave up after %d reconnect attempts", s.reconnectConfig.MaxRetries)
}
