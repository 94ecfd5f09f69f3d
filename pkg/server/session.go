package server

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/host/memdom"
	"github.com/glint-ui/glint/pkg/runtime"
	"github.com/glint-ui/glint/pkg/vdom"
)

// clientMessage is a frame sent by the browser client.
type clientMessage struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Path  []int  `json:"path,omitempty"`
	Value string `json:"value,omitempty"`
}

// serverMessage is a frame pushed to the browser client.
type serverMessage struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	HTML    string `json:"html,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Session is one live WebSocket connection with its own runtime,
// document, and root instance.
type Session struct {
	id     string
	server *Server
	conn   *websocket.Conn

	doc  *memdom.Document
	inst *runtime.Instance

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// newSession builds a session for conn. A non-empty resume ID restores
// the persisted state snapshot under that ID.
func (s *Server) newSession(conn *websocket.Conn, resume string) *Session {
	id := resume
	if id == "" {
		id = newSessionID()
	}

	sess := &Session{
		id:     id,
		server: s,
		conn:   conn,
		doc:    memdom.NewDocument(),
	}

	observers := []runtime.Observer{sessionObserver{sess}}
	if s.metrics != nil {
		observers = append(observers, s.metrics)
	}

	ctx := runtime.NewContext(
		runtime.WithLogger(s.logger),
		runtime.WithObserver(runtime.MultiObserver(observers...)),
	)
	sess.inst = runtime.New(ctx, s.factory())

	if resume != "" {
		sess.restore()
	}
	return sess
}

// restore loads the persisted state snapshot, if any, into the
// instance's state node before mount.
func (sess *Session) restore() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := sess.server.config.Snapshots.Load(ctx, sess.id)
	if err != nil {
		return
	}
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		sess.server.logger.Warn("session snapshot corrupt",
			"scope", "server", "session_id", sess.id, "error", err)
		return
	}
	sess.inst.State().Replace(normalizeNumbers(state))
}

// normalizeNumbers undoes JSON's float64 decoding for whole numbers so
// components that stored ints read ints back after a resume.
func normalizeNumbers(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case float64:
			if val == math.Trunc(val) {
				m[k] = int(val)
			}
		case map[string]any:
			m[k] = normalizeNumbers(val)
		}
	}
	return m
}

// run mounts the root instance and pumps client frames until the
// connection drops, then persists the state snapshot.
func (sess *Session) run() {
	defer sess.close()
	defer sess.persist()

	if err := sess.inst.Mount(sess.doc, sess.doc.Body()); err != nil {
		sess.send(serverMessage{Type: "error", Error: err.Error()})
		return
	}
	sess.send(serverMessage{
		Type:    "init",
		Session: sess.id,
		HTML:    vdom.RenderHTML(sess.inst.Tree()),
	})

	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sess.server.logger.Warn("bad client frame",
				"scope", "server", "session_id", sess.id, "error", err)
			continue
		}
		if msg.Type == "event" {
			sess.dispatch(msg)
		}
	}
}

// dispatch resolves the event path from the session root and fires the
// event through the in-memory document.
func (sess *Session) dispatch(msg clientMessage) {
	target := sess.resolve(msg.Path)
	if target == nil {
		sess.server.logger.Warn("event path unresolved",
			"scope", "server",
			"session_id", sess.id,
			"event", msg.Event,
			"path", msg.Path)
		return
	}
	target.Dispatch(host.Event{
		Type:   msg.Event,
		Target: target,
		Value:  msg.Value,
	})
}

// resolve walks child indexes from the root element down to the event
// target. An empty path addresses the root itself.
func (sess *Session) resolve(path []int) host.Element {
	el := sess.inst.Root()
	if el == nil {
		return nil
	}
	for _, idx := range path {
		children := el.Children()
		if idx < 0 || idx >= len(children) {
			return nil
		}
		el = children[idx]
	}
	return el
}

// persist writes the current state snapshot so a reconnect can resume.
func (sess *Session) persist() {
	snap := sess.inst.State().Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		sess.server.logger.Warn("session snapshot not serializable",
			"scope", "server", "session_id", sess.id, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.server.config.Snapshots.Save(ctx, sess.id, data); err != nil {
		sess.server.logger.Error("session snapshot save failed",
			"scope", "server", "session_id", sess.id, "error", err)
	}
}

// send writes one frame. Commits arrive from timer goroutines, so
// writes are serialized here.
func (sess *Session) send(msg serverMessage) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	deadline := time.Now().Add(sess.server.config.WriteTimeout)
	_ = sess.conn.SetWriteDeadline(deadline)
	if err := sess.conn.WriteJSON(msg); err != nil {
		sess.server.logger.Debug("session write failed",
			"scope", "server", "session_id", sess.id, "error", err)
	}
}

// close tears the session down exactly once.
func (sess *Session) close() {
	sess.closeOnce.Do(func() {
		sess.inst.Destroy()
		_ = sess.conn.Close()
	})
}

// sessionObserver streams committed renders to the client.
type sessionObserver struct {
	sess *Session
}

func (o sessionObserver) ComponentMounted(string)   {}
func (o sessionObserver) ComponentDestroyed(string) {}
func (o sessionObserver) RenderStarted(string)      {}

func (o sessionObserver) RenderCommitted(component string, _ time.Duration) {
	if component != o.sess.inst.ID() {
		return
	}
	tree := o.sess.inst.Tree()
	if tree == nil {
		return
	}
	o.sess.send(serverMessage{Type: "update", HTML: vdom.RenderHTML(tree)})
}

func (o sessionObserver) RenderSkipped(string)          {}
func (o sessionObserver) RenderFailed(string)           {}
func (o sessionObserver) UpdateDropped(string)          {}
func (o sessionObserver) BindingSkipped(string, string) {}
