package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/api"
	"github.com/bersihin/bersihin-api/config"
	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/location"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/nearby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile clients connect from app webviews with no stable origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is what a live session accepts from the device
type clientMessage struct {
	Type      string  `json:"type"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	RadiusKm  float64 `json:"radiusKm,omitempty"`
}

// serverMessage is what a live session pushes down
type serverMessage struct {
	Type   string         `json:"type"`
	Nearby *nearby.State  `json:"nearby,omitempty"`
	Report *models.Report `json:"report,omitempty"`
}

// session is one live map connection: a tracker debouncing the device's
// position stream into a watcher that keeps the nearby result current.
type session struct {
	conn    *websocket.Conn
	tracker *location.Tracker
	watcher *nearby.Watcher

	writeMu sync.Mutex
}

func (s *session) send(msg serverMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		zap.S().Debugw("live session write failed", "error", err)
	}
}

// Hub tracks the open live sessions so new reports can be pushed to every
// connected map.
type Hub struct {
	mu       sync.Mutex
	sessions map[*session]struct{}
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[*session]struct{})}
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

// BroadcastReport pushes a freshly created report to every live session
func (h *Hub) BroadcastReport(report models.Report) {
	h.mu.Lock()
	targets := make([]*session, 0, len(h.sessions))
	for s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.send(serverMessage{Type: "report", Report: &report})
	}
}

// Live handles the live map websocket and its ticket exchange
type Live struct {
	Issuer *api.TicketIssuer
	Nearby *nearby.Service
	Hub    *Hub
}

// TicketHandler mints a short-lived ticket for the authenticated user to
// redeem on the websocket dial.
func (l Live) TicketHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserIDFromContext(r.Context())
	if !ok {
		config.ErrorStatus("not authenticated", http.StatusUnauthorized, w, errors.New("missing user id in context"))
		return
	}

	ticket, err := l.Issuer.Mint(userID)
	if err != nil {
		config.ErrorStatus("failed to mint ticket", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"ticket": ticket})
}

// ServeWS upgrades the connection and runs the live session read loop until
// the client goes away.
func (l Live) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, err := l.Issuer.Verify(r.URL.Query().Get("ticket"))
	if err != nil {
		config.ErrorStatus("invalid live ticket", http.StatusUnauthorized, w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	s := &session{
		conn:    conn,
		tracker: location.NewTracker(nil),
		watcher: nearby.NewWatcher(l.Nearby, DefaultRadiusKm, DefaultNearbyLimit),
	}

	// The tracker's debounce coalesces the position stream; each settled
	// coordinate cancels and replaces the in-flight nearby fetch.
	s.tracker.OnChange(func(coord geo.Coordinate) {
		s.watcher.Refetch(coord)
	})
	s.watcher.Subscribe(func(st nearby.State) {
		s.send(serverMessage{Type: "nearby", Nearby: &st})
	})

	l.Hub.add(s)
	zap.S().Debugw("live session opened", "userId", userID)

	defer func() {
		l.Hub.remove(s)
		s.watcher.Close()
		s.tracker.Close()
		conn.Close()
		zap.S().Debugw("live session closed", "userId", userID)
	}()

	// Seed the map before the first position arrives
	s.watcher.Refetch(location.DefaultCoordinate)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().Debugw("live session read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case "location":
			s.tracker.Update(geo.Coordinate{Latitude: msg.Latitude, Longitude: msg.Longitude})
		case "radius":
			s.watcher.SetRadius(msg.RadiusKm)
			coord, _ := s.tracker.Coordinate()
			s.watcher.Refetch(coord)
		default:
			zap.S().Debugw("live session ignoring unknown message", "type", msg.Type)
		}
	}
}
