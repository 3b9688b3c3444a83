package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by channel
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	// Subscription management
	subscriptions map[string]map[*Client]bool // topic -> clients

	// Inbound messages from clients
	broadcast chan []byte

	// Register/unregister requests
	register   chan *Client
	unregister chan *Client

	// Channel subscription requests
	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Latest fund snapshots, broadcast on a fixed interval
	fundBuffer map[string]*FundMessage

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Configuration
	config *HubConfig
}

// HubConfig contains hub configuration
type HubConfig struct {
	// Fund snapshot broadcast interval
	FundInterval time.Duration // Default: 1s

	// Connection limits
	MaxClientsPerIP  int
	MaxSubscriptions int

	// Rate limiting
	MessageRateLimit int // Messages per second per client
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		FundInterval:     time.Second,
		MaxClientsPerIP:  10,
		MaxSubscriptions: 50,
		MessageRateLimit: 100,
	}
}

// SubscriptionRequest represents a subscription request
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:       make(map[*Client]bool),
		channels:      make(map[string]map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		broadcast:     make(chan []byte, 256),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscribe:     make(chan *SubscriptionRequest, 256),
		unsubscribe:   make(chan *SubscriptionRequest, 256),
		fundBuffer:    make(map[string]*FundMessage),
		config:        config,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	fundTicker := time.NewTicker(h.config.FundInterval)
	defer fundTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-fundTicker.C:
			h.broadcastFunds()
		}
	}
}

// registerClient adds a new client
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

// unregisterClient removes a client
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		// Remove from all channels
		for channel, clients := range h.channels {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}

		// Remove from all subscriptions
		for topic := range h.subscriptions {
			delete(h.subscriptions[topic], client)
		}

		close(client.send)
	}
}

// handleSubscription handles a subscription request
func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	// Send subscription confirmation
	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// handleUnsubscription handles an unsubscription request
func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	// Send unsubscription confirmation
	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// broadcastMessage sends a message to all clients in a channel
func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client buffer is full, skip
		}
	}
}

// BroadcastToChannel sends a message to all clients subscribed to a channel
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Make a copy of clients to avoid holding lock during send
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	for _, client := range clientList {
		select {
		case client.send <- data:
		default:
			// Client buffer is full, skip
		}
	}
}

// ============ Channel-specific broadcasts ============

// UpdateFund updates the fund snapshot buffer
func (h *Hub) UpdateFund(fundID string, fund *FundMessage) {
	h.mu.Lock()
	h.fundBuffer[fundID] = fund
	h.mu.Unlock()
}

// broadcastFunds broadcasts all buffered fund snapshots
func (h *Hub) broadcastFunds() {
	h.mu.RLock()
	funds := make(map[string]*FundMessage)
	for k, v := range h.fundBuffer {
		funds[k] = v
	}
	h.mu.RUnlock()

	for fundID, fund := range funds {
		channel := "fund:" + fundID
		msg := &WSMessage{
			Type:    "fund",
			Channel: channel,
			Data:    fund,
		}
		h.BroadcastToChannel(channel, msg)
	}
}

// BroadcastPayout broadcasts a recorded payout to subscribers
func (h *Hub) BroadcastPayout(fundID string, payout *PayoutMessage) {
	channel := "payouts:" + fundID
	msg := &WSMessage{
		Type:    "payout",
		Channel: channel,
		Data:    payout,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastContribution broadcasts a contribution to subscribers
func (h *Hub) BroadcastContribution(fundID string, contribution *ContributionMessage) {
	channel := "contributions:" + fundID
	msg := &WSMessage{
		Type:    "contribution",
		Channel: channel,
		Data:    contribution,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastWithdrawal broadcasts a withdrawal update to a specific account
func (h *Hub) BroadcastWithdrawal(account string, withdrawal *WithdrawalMessage) {
	channel := "withdrawals:" + account
	msg := &WSMessage{
		Type:    "withdrawal",
		Channel: channel,
		Data:    withdrawal,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastEntitlement broadcasts an entitlement update to a specific account
func (h *Hub) BroadcastEntitlement(account string, entitlement *EntitlementMessage) {
	channel := "entitlement:" + account
	msg := &WSMessage{
		Type:    "entitlement",
		Channel: channel,
		Data:    entitlement,
	}
	h.BroadcastToChannel(channel, msg)
}

// ============ Message Types ============

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data,omitempty"`
}

// FundMessage is a periodic fund snapshot
type FundMessage struct {
	FundID           string `json:"fund_id"`
	Phase            string `json:"phase"`
	TotalContributed string `json:"total_contributed"`
	CumulativeProfit string `json:"cumulative_profit"`
	Balance          string `json:"balance"`
	PayoutsCount     uint64 `json:"payouts_count"`
	Timestamp        int64  `json:"timestamp"`
}

// PayoutMessage represents a recorded profit distribution
type PayoutMessage struct {
	FundID          string `json:"fund_id"`
	Index           uint64 `json:"index"`
	Height          int64  `json:"height"`
	GrossAmount     string `json:"gross_amount"`
	FeeAmount       string `json:"fee_amount"`
	NetAmount       string `json:"net_amount"`
	DiscountApplied string `json:"discount_applied"`
	Timestamp       int64  `json:"timestamp"`
}

// ContributionMessage represents a capital contribution
type ContributionMessage struct {
	FundID      string `json:"fund_id"`
	Contributor string `json:"contributor"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	NetAmount   string `json:"net_amount"`
	PositionID  uint64 `json:"position_id"`
	Timestamp   int64  `json:"timestamp"`
}

// WithdrawalMessage represents a withdrawal update for an account
type WithdrawalMessage struct {
	FundID         string `json:"fund_id"`
	Account        string `json:"account"`
	Amount         string `json:"amount"`
	TotalWithdrawn string `json:"total_withdrawn"`
	Remaining      string `json:"remaining"`
	Timestamp      int64  `json:"timestamp"`
}

// EntitlementMessage represents an account's recomputed entitlement
type EntitlementMessage struct {
	FundID    string `json:"fund_id"`
	Account   string `json:"account"`
	Available string `json:"available"`
	Timestamp int64  `json:"timestamp"`
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelCount returns the number of active channels
func (h *Hub) GetChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// GetChannelClientCount returns the number of clients in a channel
func (h *Hub) GetChannelClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		return len(clients)
	}
	return 0
}

// ServeWS handles WebSocket upgrade requests
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = generateID()
	}

	account := r.URL.Query().Get("account")
	ip := getClientIPFromRequest(r)

	client := NewClient(h, conn, clientID, account, ip)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Helper function to get client IP
func getClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}

// Generate a simple ID
func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
