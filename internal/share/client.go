package share

import (
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// Client joins a hosted session. Reads run on their own goroutine; writes
// only ever come from AnnounceChange, serialized by a mutex.
type Client struct {
	site  string
	conn  *websocket.Conn
	apply func(Message)

	writeMu sync.Mutex
}

// Dial connects to a host at addr ("ip:port") and starts reading. apply is
// invoked from the reader goroutine for every frame from other sites.
func Dial(addr, site string, apply func(Message)) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("joining session at %s: %w", addr, err)
	}
	c := &Client{site: site, conn: conn, apply: apply}
	go c.readLoop()
	log.Printf("[share] joined session at %s", addr)
	return c, nil
}

func (c *Client) readLoop() {
	defer c.conn.Close()
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			log.Printf("[share] session closed: %v", err)
			return
		}
		// The host never echoes a frame back at its sender, but drop our own
		// site ID anyway in case a relay ever does.
		if msg.Type != MessageColor || msg.Site == c.site {
			continue
		}
		c.apply(msg)
	}
}

// AnnounceChange sends a local edit to the host, which relays it onward.
func (c *Client) AnnounceChange(msg Message) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("[share] announce: %v", err)
	}
}

// Close drops the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
