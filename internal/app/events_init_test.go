package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInitEventPublisher_DisabledWithoutBrokers(t *testing.T) {
	for _, brokers := range []string{"", " , ,"} {
		cfg := DefaultConfig()
		cfg.KafkaBrokers = brokers

		publisher, err := initEventPublisher(cfg, log.WithField("test", "events"))

		require.NoError(t, err, "brokers=%q", brokers)
		require.Nil(t, publisher, "brokers=%q", brokers)
	}
}

func TestInitEventPublisher_UnreachableBroker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KafkaBrokers = "invalid-broker:9999"
	cfg.KafkaTopic = ""

	publisher, err := initEventPublisher(cfg, log.WithField("test", "events"))

	require.Error(t, err)
	require.Nil(t, publisher)
}

func TestSplitBrokers(t *testing.T) {
	require.Equal(t,
		[]string{"broker1:9092", "broker2:9092", "broker3:9092"},
		splitBrokers("broker1:9092, broker2:9092,,broker3:9092 "),
	)
	require.Empty(t, splitBrokers(""))
}

func TestCloseEventPublisher_Nil(t *testing.T) {
	closeEventPublisher(nil, log.WithField("test", "events"))
}
