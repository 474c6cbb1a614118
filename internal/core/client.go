package core

// Client is one live session as seen by the core layer: the transport feeds
// Commands in and drains Events out.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels. The events buffer
// bounds how far a slow consumer may fall behind before frames are dropped.
func NewClient(id, name string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 32
	}
	return &Client{
		ID:       id,
		Name:     name,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, buffer),
	}
}
