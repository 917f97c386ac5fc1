package aws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials"), []byte(`
[default]
aws_access_key_id = AKIA
; comment
[dev]
aws_access_key_id = AKIB
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(`
[default]
region = us-west-2
[profile dev]
region = us-east-1
[profile sso]
sso_start_url = https://example.awsapps.com/start
`), 0o600))

	profiles, err := ListProfiles(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	assert.Equal(t, Profile{Name: "default", Region: "us-west-2", Sources: []string{"credentials", "config"}}, profiles[0])
	assert.Equal(t, "us-east-1", profiles[1].Region)
	assert.Equal(t, Profile{Name: "sso", Sources: []string{"config"}}, profiles[2])

	p, ok, err := LookupProfile(dir, "dev")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dev", p.Name)

	_, ok, err = LookupProfile(dir, "prod")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListProfiles_NoFiles(t *testing.T) {
	profiles, err := ListProfiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
