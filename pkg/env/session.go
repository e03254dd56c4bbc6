// Package env provides identities of the running host.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID is mixed into the machine ID so the session doesn't
// expose the raw machine ID.
const AppID = "padscan"

// SessionID identifies this machine among viewers sharing a broker.
// It falls back to the host name when the machine ID is unavailable.
func SessionID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil && id != "" {
		if len(id) > 12 {
			id = id[:12]
		}
		return id
	}
	glog.Warningf("machine ID unavailable: %v", err)
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
