package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionName(t *testing.T) {
	assert.Equal(t, "projects/gurlhub/secrets/jwt-key/versions/latest", VersionName("gurlhub", "jwt-key", ""))
	assert.Equal(t, "projects/gurlhub/secrets/jwt-key/versions/3", VersionName("gurlhub", "jwt-key", "3"))
	assert.Equal(t, "projects/p/secrets/s/versions/latest", VersionName("ignored", "projects/p/secrets/s", ""))
	assert.Equal(t, "projects/p/secrets/s/versions/7", VersionName("ignored", "projects/p/secrets/s/versions/7", ""))
}
