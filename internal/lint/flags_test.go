package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Get", "Is"}, splitList("Get, Is,"))
	assert.Nil(t, splitList(""))
}

func TestNewRunConfig_Defaults(t *testing.T) {
	rc := newRunConfig()

	assert.Equal(t, "codec", rc.analyze.DirectivePrefix)
	assert.Equal(t, "Build", rc.analyze.BuildMethod)
	assert.Equal(t, []string{"Get", "get", "Is", "is"}, rc.names.GetterPrefixes)
	assert.Contains(t, rc.names.SkipMethods, "String")
}
