package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishOrdersPlaced(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	userID := uuid.New()

	var got []OrderPlaced
	check := func(val []byte) error {
		var e OrderPlaced
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		got = append(got, e)
		return nil
	}
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(check)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(check)

	pub := NewPublisher(producer, "orders.placed")
	err := pub.PublishOrdersPlaced(context.Background(), []OrderPlaced{
		{OrderID: uuid.New(), UserID: userID, Quantity: 2, Amount: decimal.NewFromInt(20), PlacedAt: time.Now()},
		{OrderID: uuid.New(), UserID: userID, Quantity: 1, Amount: decimal.NewFromInt(20), PlacedAt: time.Now()},
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())

	require.Len(t, got, 2)
	assert.Equal(t, userID, got[0].UserID)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(20)))
}

func TestPublishOrdersPlacedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewPublisher(producer, "orders.placed")
	err := pub.PublishOrdersPlaced(context.Background(), []OrderPlaced{{OrderID: uuid.New()}})
	assert.Error(t, err)
	require.NoError(t, pub.Close())
}

func TestNoBrokersGivesNoop(t *testing.T) {
	pub, err := NewKafkaPublisher(nil, "orders.placed")
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, pub)
	assert.NoError(t, pub.PublishOrdersPlaced(context.Background(), []OrderPlaced{{}}))
}
