package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/gorilla/websocket"
)

// Listen subscribes to a peer hub at url and calls fn for every notification
// until ctx is done or the connection drops.
func Listen(ctx context.Context, url string, fn func(models.Notification)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read notification: %w", err)
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != PushNotificationType {
			continue
		}
		fn(msg.Notification)
	}
}
