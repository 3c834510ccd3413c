package cloudinary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptimizedImageURL(t *testing.T) {
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_200,c_fill/profiles/p1",
		BuildOptimizedImageURL("demo", "profiles/p1", ThumbWidth))
	assert.Contains(t, BuildOptimizedImageURL("demo", "x", 0), "w_800")
}

func TestPublicIDFor(t *testing.T) {
	a, b := PublicIDFor(42), PublicIDFor(42)
	assert.True(t, strings.HasPrefix(a, "profile_42_"))
	assert.NotEqual(t, a, b)
}

func TestNewClientFromParams(t *testing.T) {
	c, err := NewClientFromParams("demo", "key", "secret", "uniconnect")
	require.NoError(t, err)
	assert.NotNil(t, c)
}
