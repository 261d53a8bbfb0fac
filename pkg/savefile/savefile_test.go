package savefile

import (
	"testing"

	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	snapshot := &models.Snapshot{
		ID:             uuid.New(),
		SessionID:      uuid.New(),
		CreatedAt:      1717171717000,
		X:              12.5,
		Y:              -3,
		Z:              0.25,
		CoinsCollected: 7,
		CoinsAtStart:   12,
	}

	data, err := Encode(snapshot)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("not a save file"))
	assert.Error(t, err)
}
