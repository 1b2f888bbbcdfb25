package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bersihin/bersihin-api/api"
	"github.com/bersihin/bersihin-api/api/handlers"
	mocksdb "github.com/bersihin/bersihin-api/databases/mocks"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/nearby"
)

// liveMessage mirrors the session's wire format for assertions
type liveMessage struct {
	Type   string         `json:"type"`
	Nearby *nearby.State  `json:"nearby,omitempty"`
	Report *models.Report `json:"report,omitempty"`
}

func TestLive_TicketHandlerUnauthenticated(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/live/ticket", nil)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.Live{Issuer: api.NewTicketIssuer("test-secret")}
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.TicketHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "not authenticated", Error: "missing user id in context"}}
	b, _ := json.Marshal(expected)
	if rr.Body.String() != string(b) {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestLive_TicketHandler(t *testing.T) {
	uID := primitive.NewObjectID().Hex()
	req, err := http.NewRequest("POST", "/api/v1/live/ticket", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = req.WithContext(api.WithUserID(req.Context(), uID))

	issuer := api.NewTicketIssuer("test-secret")
	u := handlers.Live{Issuer: issuer}
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.TicketHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	minted, err := issuer.Verify(resp["ticket"])
	assert.NoError(t, err)
	assert.Equal(t, uID, minted)
}

func TestLive_ServeWSRejectsBadTicket(t *testing.T) {
	req, err := http.NewRequest("GET", "/live?ticket=garbage", nil)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.Live{Issuer: api.NewTicketIssuer("test-secret"), Hub: handlers.NewHub()}
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.ServeWS).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid live ticket")
}

func TestLive_ServeWSSessionLifecycle(t *testing.T) {
	rdb := &mocksdb.ReportDatabase{}
	report := models.Report{ID: primitive.NewObjectID(), WasteType: models.WasteOrganic}
	rdb.On("Nearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]models.NearbyReport{{Report: report, DistanceKm: 0.8}}, nil)

	issuer := api.NewTicketIssuer("test-secret")
	hub := handlers.NewHub()
	u := handlers.Live{Issuer: issuer, Nearby: nearby.NewService(rdb), Hub: hub}

	server := httptest.NewServer(http.HandlerFunc(u.ServeWS))
	defer server.Close()

	ticket, err := issuer.Mint(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/?ticket=" + ticket
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the session seeds the map from the default origin before any
	// position arrives
	state := readUntil(t, conn, func(msg liveMessage) bool {
		return msg.Type == "nearby" && msg.Nearby != nil && !msg.Nearby.Loading
	})
	require.Len(t, state.Nearby.Reports, 1)
	assert.Equal(t, report.ID, state.Nearby.Reports[0].ID)

	// a new report lands on every open session
	broadcast := models.Report{ID: primitive.NewObjectID(), WasteType: models.WasteMixed}
	hub.BroadcastReport(broadcast)
	pushed := readUntil(t, conn, func(msg liveMessage) bool {
		return msg.Type == "report"
	})
	assert.Equal(t, broadcast.ID, pushed.Report.ID)

	// a settled location change refreshes the nearby result
	err = conn.WriteJSON(map[string]interface{}{"type": "location", "latitude": -6.2, "longitude": 106.8})
	require.NoError(t, err)
	state = readUntil(t, conn, func(msg liveMessage) bool {
		return msg.Type == "nearby" && msg.Nearby != nil && !msg.Nearby.Loading
	})
	assert.Len(t, state.Nearby.Reports, 1)
}

func readUntil(t *testing.T, conn *websocket.Conn, cond func(liveMessage) bool) liveMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg liveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("reading live message: %v", err)
		}
		if cond(msg) {
			return msg
		}
	}
}
