package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvestChannelPayload(t *testing.T) {
	t.Parallel()

	t.Run("round trips through JSON", func(t *testing.T) {
		t.Parallel()

		payload, err := NewHarvestChannelTask("UC_test", map[string]interface{}{
			"source": "api",
		})
		require.NoError(t, err)

		data, err := payload.Marshal()
		require.NoError(t, err)

		decoded, err := UnmarshalHarvestChannelPayload(data)
		require.NoError(t, err)
		assert.Equal(t, "UC_test", decoded.ChannelID)
		assert.Equal(t, "api", decoded.Metadata["source"])
	})

	t.Run("empty channel ID is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewHarvestChannelTask("", nil)
		require.Error(t, err)
	})

	t.Run("nil metadata becomes an empty map", func(t *testing.T) {
		t.Parallel()

		payload, err := NewHarvestChannelTask("UC_test", nil)
		require.NoError(t, err)
		assert.NotNil(t, payload.Metadata)
	})

	t.Run("garbage bytes fail to unmarshal", func(t *testing.T) {
		t.Parallel()

		_, err := UnmarshalHarvestChannelPayload([]byte("not json"))
		require.Error(t, err)
	})
}
