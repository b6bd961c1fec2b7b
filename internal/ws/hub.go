// Package ws serves the live preview over websockets.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstudio/internal/events"
	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
)

const writeWait = 200 * time.Millisecond

// Controller is the part of a studio session driven from /control.
type Controller interface {
	SetLEDCount(n int)
	SetPattern(id pattern.ID)
	SetSpeed(pct int)
	SetBrightness(pct int)
	Start()
	Stop()
	Reset()
	Play() string
	GenerateCode() string
	Suggest(text string) pattern.ID
	Snapshot() studio.Snapshot
}

type Hub struct {
	ctl Controller
	log zerolog.Logger

	mu          sync.Mutex
	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	upgrader websocket.Upgrader
}

func NewHub(ctl Controller, log zerolog.Logger) *Hub {
	return &Hub{
		ctl:         ctl,
		log:         log,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Attach forwards frames and diagnostics from bus to connected clients.
func (h *Hub) Attach(bus *events.Bus) func() {
	unsubFrames := bus.Subscribe(h.broadcastFrame)
	unsubDiag := bus.Subscribe(h.pushDiag)
	return func() {
		unsubFrames()
		unsubDiag()
	}
}

// Routes registers the websocket and health endpoints on mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/control", h.HandleControlWS)
	mux.HandleFunc("/health", h.HandleHealth)
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.sendState(conn)
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	go h.drain(conn, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.diagClients[conn] = true
	h.mu.Unlock()
	go h.drain(conn, h.diagClients)
}

// drain reads until the peer goes away, then forgets conn.
func (h *Hub) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		h.mu.Lock()
		delete(set, conn)
		h.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ControlMessage is one command on /control. Every field is optional; the
// settings are applied before the action.
type ControlMessage struct {
	LEDCount   *int    `json:"led_count,omitempty"`
	Pattern    *string `json:"pattern,omitempty"`
	Speed      *int    `json:"speed,omitempty"`
	Brightness *int    `json:"brightness,omitempty"`
	Prompt     *string `json:"prompt,omitempty"`
	// Action is one of start, stop, reset, play or generate.
	Action string `json:"action,omitempty"`
}

type controlReply struct {
	State studio.Snapshot `json:"state"`
	Code  string          `json:"code,omitempty"`
	Error string          `json:"error,omitempty"`
}

func (h *Hub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ControlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug().Err(err).Msg("bad control message")
			_ = conn.WriteJSON(controlReply{State: h.ctl.Snapshot(), Error: "invalid json"})
			continue
		}
		_ = conn.WriteJSON(h.applyControl(msg))
	}
}

func (h *Hub) applyControl(msg ControlMessage) controlReply {
	if msg.LEDCount != nil {
		h.ctl.SetLEDCount(*msg.LEDCount)
	}
	if msg.Pattern != nil {
		h.ctl.SetPattern(pattern.ID(*msg.Pattern))
	}
	if msg.Prompt != nil {
		h.ctl.Suggest(*msg.Prompt)
	}
	if msg.Speed != nil {
		h.ctl.SetSpeed(*msg.Speed)
	}
	if msg.Brightness != nil {
		h.ctl.SetBrightness(*msg.Brightness)
	}

	var rep controlReply
	switch msg.Action {
	case "":
	case "start":
		h.ctl.Start()
	case "stop":
		h.ctl.Stop()
	case "reset":
		h.ctl.Reset()
	case "play":
		rep.Code = h.ctl.Play()
	case "generate":
		rep.Code = h.ctl.GenerateCode()
	default:
		rep.Error = "unknown action " + msg.Action
	}
	h.log.Debug().Str("action", msg.Action).Msg("control")
	rep.State = h.ctl.Snapshot()
	return rep
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.ctl.Snapshot()
	h.mu.Lock()
	resp := map[string]any{
		"frame_id":   h.frameID,
		"uptime_s":   time.Since(h.startTime).Seconds(),
		"count":      snap.Strip.LEDCount,
		"pattern":    snap.Strip.Pattern,
		"state":      snap.State,
		"frame":      snap.Frame,
		"brightness": snap.Strip.Brightness,
		"clients":    len(h.clients),
	}
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Hub) sendState(conn *websocket.Conn) {
	b, _ := json.Marshal(map[string]any{"state": h.ctl.Snapshot()})
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

// Frame is the message broadcast on /ws.
type Frame struct {
	T       int64      `json:"t"`
	FrameID uint64     `json:"frame_id"`
	Frame   int        `json:"frame"`
	Pattern pattern.ID `json:"pattern"`
	// RGB holds 3 bytes per LED, base64 encoded in JSON.
	RGB []byte `json:"rgb"`
}

func (h *Hub) broadcastFrame(e events.FrameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameID++
	b, _ := json.Marshal(Frame{
		T:       time.Now().UnixNano(),
		FrameID: h.frameID,
		Frame:   e.Frame,
		Pattern: e.Pattern,
		RGB:     ledcolor.AppendRGB(make([]byte, 0, 3*len(e.LEDs)), e.LEDs...),
	})
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			h.log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (h *Hub) pushDiag(e events.DiagnosticEvent) {
	b, _ := json.Marshal(e.Diagnostic)
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.diagClients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
