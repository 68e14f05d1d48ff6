package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/interview"
)

// WSHandler streams proctoring media in and physical-score updates out over
// one socket. Incoming frames and audio segments are enqueued on the Redis
// stream for the worker pool; scored snapshots come back through the
// session's physical channel.
type WSHandler struct {
	manager  *interview.Manager
	redis    *redis.Client
	stream   string
	upgrader websocket.Upgrader
}

func NewWSHandler(m *interview.Manager, rdb *redis.Client, stream string) *WSHandler {
	if stream == "" {
		stream = "physical:stream"
	}
	return &WSHandler{
		manager: m,
		redis:   rdb,
		stream:  stream,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type          string `json:"type"` // frame | audio | ping
	QuestionIndex int    `json:"question_index"`
	Payload       string `json:"payload"` // base64 media
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) InterviewWS(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}
	if _, err := h.manager.Get(sessionID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	physicalCh := "session:" + sessionID + ":physical"
	pubsub := h.redis.Subscribe(ctx, physicalCh)
	defer pubsub.Close()

	// reader: WS -> Redis stream
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
				continue
			}

			switch msg.Type {
			case "frame", "audio":
				if msg.Payload == "" {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"payload required"}`))
					continue
				}

				if err := h.redis.XAdd(ctx, &redis.XAddArgs{
					Stream: h.stream,
					Values: map[string]any{
						"session_id":     sessionID,
						"question_index": strconv.Itoa(msg.QuestionIndex),
						"kind":           msg.Type,
						"payload":        msg.Payload,
						"ts_unix":        strconv.FormatInt(time.Now().UTC().Unix(), 10),
					},
				}).Err(); err != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"failed to enqueue media"}`))
				}

			case "ping":
				_ = wc.writeText([]byte(`{"type":"pong"}`))

			default:
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
			}
		}
	}()

	// writer: Redis Pub/Sub -> WS
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		default:
			m, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return
			}
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}
