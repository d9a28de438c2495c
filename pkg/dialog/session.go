// ABOUTME: Session identity and the one-time initialization handshake
// ABOUTME: RuntimeID is process-scoped; DialogID is assigned once by the backend

package dialog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/mauromedda/dialogstream-go/internal/log"
)

// Session holds the client-side identity of one conversation.
//
// Initialize is not guarded against concurrent calls; the controller
// auto-initializes at most once before its first stream, which is the only
// caller in this module.
type Session struct {
	runtimeID string
	dialogID  string
	client    *Client
}

// NewSession creates a Session with a fresh process-scoped runtime identifier.
func NewSession(client *Client) *Session {
	return &Session{
		runtimeID: newRuntimeID(),
		client:    client,
	}
}

// RuntimeID returns the immutable client-generated identifier.
func (s *Session) RuntimeID() string {
	return s.runtimeID
}

// DialogID returns the server-assigned identifier, empty until Initialize
// succeeds.
func (s *Session) DialogID() string {
	return s.dialogID
}

// Initialized reports whether the handshake has completed.
func (s *Session) Initialized() bool {
	return s.dialogID != ""
}

// Initialize performs the handshake: it sends the runtime identifier, an
// empty dialog identifier, and the card list, and stores the dialog
// identifier from the acknowledgement. A card fetch failure substitutes an
// empty list and never blocks initialization.
func (s *Session) Initialize(ctx context.Context) error {
	cards, err := s.client.Cards(ctx)
	if err != nil {
		log.Debug("proceeding with empty card list: %v", err)
		cards = nil
	}

	ack, status, err := s.client.initDialog(ctx, initRequest{
		RuntimeID: s.runtimeID,
		DialogID:  "",
		Cards:     cards,
	})
	if err != nil {
		return &InitializationError{Message: err.Error()}
	}
	if status < 200 || status >= 300 {
		return &InitializationError{Message: fmt.Sprintf("backend returned status %d", status)}
	}
	if !ack.OK {
		msg := ack.Error
		if msg == "" {
			msg = "backend reported failure without detail"
		}
		return &InitializationError{Message: msg}
	}
	if ack.DialogID == "" {
		return &InitializationError{Message: "backend acknowledged without a dialog identifier"}
	}

	s.dialogID = ack.DialogID
	log.Info("dialog initialized: runtime=%s dialog=%s cards=%d", s.runtimeID, s.dialogID, len(cards))
	return nil
}

// newRuntimeID returns a random 128-bit hex identifier.
func newRuntimeID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}
