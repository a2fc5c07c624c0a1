package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStatusIsValid(t *testing.T) {
	assert.True(t, QuoteStatusDraft.IsValid())
	assert.True(t, QuoteStatusSent.IsValid())
	assert.True(t, QuoteStatusAccepted.IsValid())
	assert.True(t, QuoteStatusRejected.IsValid())
	assert.False(t, QuoteStatus("expired").IsValid())
	assert.False(t, QuoteStatus("").IsValid())
}

func TestItemForProduct(t *testing.T) {
	productID := uuid.New()
	quote := Quote{
		Items: []QuoteItem{
			{ID: uuid.New(), ProductID: uuid.New()},
			{ID: uuid.New(), ProductID: productID, Quantity: 2},
		},
	}

	item, ok := quote.ItemForProduct(productID)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)

	_, ok = quote.ItemForProduct(uuid.New())
	assert.False(t, ok)
}

func TestQuotesToReject(t *testing.T) {
	clientID := uuid.New()
	otherClient := uuid.New()

	accepted := Quote{ID: uuid.New(), ClientID: clientID, Status: QuoteStatusSent}
	draftSibling := Quote{ID: uuid.New(), ClientID: clientID, Status: QuoteStatusDraft}
	rejectedSibling := Quote{ID: uuid.New(), ClientID: clientID, Status: QuoteStatusRejected}
	unrelated := Quote{ID: uuid.New(), ClientID: otherClient, Status: QuoteStatusSent}

	all := []Quote{accepted, draftSibling, rejectedSibling, unrelated}

	toReject := QuotesToReject(clientID, accepted.ID, all)

	require.Len(t, toReject, 1)
	assert.Equal(t, draftSibling.ID, toReject[0].ID)
}

func TestQuotesToRejectNoSiblings(t *testing.T) {
	clientID := uuid.New()
	accepted := Quote{ID: uuid.New(), ClientID: clientID, Status: QuoteStatusAccepted}

	assert.Empty(t, QuotesToReject(clientID, accepted.ID, []Quote{accepted}))
}
