package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		hostname   string
		wantOwner  string
		wantPrefix string
	}{
		{hostname: "alice-node3.bob.dc1", wantOwner: "bob", wantPrefix: "alice"},
		{hostname: "webapp.carol.dc1", wantOwner: "carol", wantPrefix: "webapp"},
		{hostname: "kafka-node1.james-hui.eng.dal09.upsight-vm.com", wantOwner: "james-hui", wantPrefix: "kafka"},
		{hostname: "solo.dave", wantOwner: "dave", wantPrefix: "solo"},
		{hostname: "nodots", wantOwner: "Unknown", wantPrefix: "Unknown"},
		{hostname: "Unknown", wantOwner: "Unknown", wantPrefix: "Unknown"},
		{hostname: "", wantOwner: "Unknown", wantPrefix: "Unknown"},
		{hostname: "-node1.erin.dc1", wantOwner: "erin", wantPrefix: ""},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			owner, prefix := Parse(tt.hostname)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "bob.alice", Key("bob", "alice"))
}
