package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/api"
)

func TestJSONCodecRoundTripsRequestStructs(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	in := &api.AgentAlertRequest{Description: "shulker box stuck at dock 3"}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out api.AgentAlertRequest
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, *in, out)
}
