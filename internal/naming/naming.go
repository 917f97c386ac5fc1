// Package naming derives DevEnv ownership from hostnames following the
// prefix.owner.<rest> convention, e.g. "webapp.carol.eng.dc1.upsight-vm.com".
package naming

import (
	"strings"

	"github.com/vietdv277/devenv/pkg/types"
)

// NodeMarker separates a cluster prefix from the node suffix ("kafka-node2")
const NodeMarker = "-node"

// Parse returns the owner and prefix encoded in hostname. Nodes of a cluster
// share the prefix before NodeMarker. Hostnames with fewer than two segments
// yield ("Unknown", "Unknown").
func Parse(hostname string) (owner, prefix string) {
	parts := strings.Split(hostname, ".")
	if len(parts) < 2 {
		return types.Unknown, types.Unknown
	}

	prefix, _, _ = strings.Cut(parts[0], NodeMarker)
	return parts[1], prefix
}

// Key returns the expiration registry key for an owner and prefix
func Key(owner, prefix string) string {
	return owner + "." + prefix
}
