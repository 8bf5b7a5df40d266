package share

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_huepick._tcp"

// Advertise registers the hosted session on the local network so other
// instances can find it without typing an address. Shut the returned server
// down when the session ends.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"", // domain, defaults to .local
		"", // hostname, defaults to the OS hostname
		port,
		nil, // IPs auto-detected
		[]string{"huepick session"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// FindSession browses for an advertised session and returns the first
// reachable "ip:port" it hears about.
func FindSession() (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	drained := make(chan struct{})
	go firstAddr(entries, found, drained)

	err := mdns.Lookup(serviceType, entries)
	// Lookup is synchronous: once it returns, its query window is over and
	// nothing sends on entries anymore. Closing the channel lets the
	// collector finish instead of blocking on it forever.
	close(entries)
	<-drained

	if err != nil {
		return "", fmt.Errorf("mDNS lookup: %w", err)
	}
	select {
	case addr := <-found:
		return addr, nil
	default:
		return "", fmt.Errorf("no session advertised on the local network")
	}
}

// firstAddr keeps the first dialable entry and discards the rest, then
// signals on drained once the entry channel closes.
func firstAddr(entries <-chan *mdns.ServiceEntry, found chan<- string, drained chan<- struct{}) {
	defer close(drained)
	for e := range entries {
		if e.AddrV4 == nil || e.Port == 0 {
			continue
		}
		select {
		case found <- fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port):
		default:
		}
	}
}
