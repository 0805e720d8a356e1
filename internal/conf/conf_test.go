package conf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	var r Data_Redis
	require.NoError(t, json.Unmarshal([]byte(`{"read_timeout":"1.5s","write_timeout":2,"payout_ttl":null}`), &r))
	assert.Equal(t, 1500*time.Millisecond, r.ReadTimeout.AsDuration())
	assert.Equal(t, 2*time.Second, r.WriteTimeout.AsDuration())
	assert.Equal(t, time.Duration(0), r.PayoutTTL.AsDuration())

	assert.Error(t, json.Unmarshal([]byte(`{"read_timeout":"soon"}`), &r))
}

func TestNotifyNil(t *testing.T) {
	var n *Notify
	assert.Empty(t, n.GetWebhookUrl())
	assert.Empty(t, n.GetPrefix())
}
