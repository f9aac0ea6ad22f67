package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddItem_NewCart(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Laptop Pro", 1299.99, 10)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	view, err := sut.AddItem(context.Background(), userID, p.ID, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, p.Name, view.Items[0].Product.Name)
	assert.InDelta(t, 3*1299.99, view.Total, 0.001)

	// Conservation: stock before == stock after + reserved
	assert.Equal(t, 7, f.productQuantity(p.ID))
}

func TestAddItem_ExistingLineIncrements(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Smartphone X", 799.99, 10)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 2)
	require.NoError(t, err)
	view, err := sut.AddItem(context.Background(), userID, p.ID, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 5, f.productQuantity(p.ID))
}

func TestAddItem_InsufficientStockLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Graphics Card Pro", 899.99, 5)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	view, err := sut.AddItem(context.Background(), userID, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 2, f.productQuantity(p.ID))

	cartBefore, _ := f.cartOf(userID)

	// Only 2 remain; adding 3 more must fail and mutate nothing.
	_, err = sut.AddItem(context.Background(), userID, p.ID, 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Graphics Card Pro", stockErr.Product)
	assert.Equal(t, 2, stockErr.Available)

	cartAfter, _ := f.cartOf(userID)
	assert.Equal(t, cartBefore.Items, cartAfter.Items)
	assert.Equal(t, 2, f.productQuantity(p.ID))
}

func TestAddItem_ProductNotFound(t *testing.T) {
	f := newFixture()
	sut := newCartService(f)

	_, err := sut.AddItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 1)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Resource)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Wireless Charger", 39.99, 50)
	sut := newCartService(f)

	_, err := sut.AddItem(context.Background(), primitive.NewObjectID(), p.ID, 0)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestGetCart_NoCartReturnsEmptyView(t *testing.T) {
	f := newFixture()
	sut := newCartService(f)
	userID := primitive.NewObjectID()

	first, err := sut.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, first.Items)
	assert.Zero(t, first.Total)

	// Reads are idempotent without intervening mutation.
	second, err := sut.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetCart_ReturnsPopulatedView(t *testing.T) {
	f := newFixture()
	p1 := f.addProduct("Bluetooth Speaker", 199.99, 35)
	p2 := f.addProduct("4K Webcam", 159.99, 18)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p1.ID, 2)
	require.NoError(t, err)
	_, err = sut.AddItem(context.Background(), userID, p2.ID, 1)
	require.NoError(t, err)

	view, err := sut.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.InDelta(t, 2*199.99+159.99, view.Total, 0.001)
}

func TestUpdateItemQuantity_GrowsToExactStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Tablet Pro 12.9", 899.99, 5)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 3, f.productQuantity(p.ID))

	// delta = 3, exactly the remaining stock: must succeed.
	view, err := sut.UpdateItemQuantity(context.Background(), userID, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 0, f.productQuantity(p.ID))
}

func TestUpdateItemQuantity_ShrinkReturnsStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Smart Home Hub", 129.99, 28)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 18, f.productQuantity(p.ID))

	view, err := sut.UpdateItemQuantity(context.Background(), userID, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)
	assert.Equal(t, 24, f.productQuantity(p.ID))
}

func TestUpdateItemQuantity_InsufficientStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Camera Drone", 599.99, 5)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 3)
	require.NoError(t, err)

	_, err = sut.UpdateItemQuantity(context.Background(), userID, p.ID, 6)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)

	// Nothing moved.
	assert.Equal(t, 2, f.productQuantity(p.ID))
	cart, _ := f.cartOf(userID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestUpdateItemQuantity_LineMissing(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Power Bank 20000mAh", 49.99, 60)
	other := f.addProduct("External SSD 1TB", 149.99, 22)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 1)
	require.NoError(t, err)

	_, err = sut.UpdateItemQuantity(context.Background(), userID, other.ID, 2)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "item", notFound.Resource)
}

func TestRemoveItem_ReturnsFullQuantity(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Mechanical Keyboard", 129.99, 5)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 0, f.productQuantity(p.ID))

	view, err := sut.RemoveItem(context.Background(), userID, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, f.productQuantity(p.ID))
	assert.Empty(t, view.Items)

	// The cart still exists, just empty.
	cart, ok := f.cartOf(userID)
	require.True(t, ok)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem_LineMissing(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Ultra-Wide Monitor", 699.99, 10)
	userID := primitive.NewObjectID()

	sut := newCartService(f)
	_, err := sut.AddItem(context.Background(), userID, p.ID, 1)
	require.NoError(t, err)

	_, err = sut.RemoveItem(context.Background(), userID, primitive.NewObjectID())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddItem_ConcurrentNeverOversells(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Gaming Console Pro", 499.99, 50)
	sut := newCartService(f)

	// 20 users racing for 5 units each against 50 in stock: exactly
	// 10 can win and quantity must end at zero, never negative.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sut.AddItem(context.Background(), primitive.NewObjectID(), p.ID, 5)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, f.productQuantity(p.ID))
}
