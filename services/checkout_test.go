package services

import (
	"testing"

	"Backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	itemA := createItem(t, db, "Apples", 5.00)
	itemB := createItem(t, db, "Bread", 3.00)

	_, err := AddCartItem(db, user.ID, itemA.ID, 2)
	require.NoError(t, err)
	_, err = AddCartItem(db, user.ID, itemB.ID, 1)
	require.NoError(t, err)

	order, err := Checkout(db, user.ID, validPayment())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 13.00, order.TotalPrice)

	// exactly one order with line totals frozen at checkout time
	var orders []models.Order
	require.NoError(t, db.Preload("OrderItems").Find(&orders).Error)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].OrderItems, 2)

	lineTotals := map[uint]float64{}
	sumOfLines := 0.0
	for _, orderItem := range orders[0].OrderItems {
		lineTotals[orderItem.ItemID] = orderItem.TotalPrice
		sumOfLines += orderItem.TotalPrice
	}
	assert.Equal(t, 10.00, lineTotals[itemA.ID])
	assert.Equal(t, 3.00, lineTotals[itemB.ID])
	assert.Equal(t, orders[0].TotalPrice, sumOfLines)

	// cart is empty afterwards
	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount)
}

func TestAddCartItemAfterCheckout(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	item := createItem(t, db, "Apples", 5.00)

	_, err := AddCartItem(db, user.ID, item.ID, 2)
	require.NoError(t, err)
	_, err = Checkout(db, user.ID, validPayment())
	require.NoError(t, err)

	// the cleared cart must accept the same item again
	cartItem, err := AddCartItem(db, user.ID, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), cartItem.Quantity)

	var cartItems []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&cartItems).Error)
	require.Len(t, cartItems, 1)
	assert.Equal(t, item.ID, cartItems[0].ItemID)
}

func TestCartLockQueryByDialect(t *testing.T) {
	mysqlDB, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:root@tcp(127.0.0.1:3306)/test?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var cartItems []models.CartItem
	stmt := lockCartLines(mysqlDB, 1).Find(&cartItems).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")

	sqliteDB := newTestDB(t).Session(&gorm.Session{DryRun: true})
	stmt = lockCartLines(sqliteDB, 1).Find(&cartItems).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestCheckoutFreezesPricesAgainstLaterCatalogChanges(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	item := createItem(t, db, "Apples", 5.00)

	_, err := AddCartItem(db, user.ID, item.ID, 2)
	require.NoError(t, err)

	order, err := Checkout(db, user.ID, validPayment())
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Item{}).Where("id = ?", item.ID).Update("price", 9.99).Error)

	var stored models.Order
	require.NoError(t, db.Preload("OrderItems").First(&stored, order.ID).Error)
	assert.Equal(t, 10.00, stored.TotalPrice)
	assert.Equal(t, 10.00, stored.OrderItems[0].TotalPrice)
}

func TestCheckoutIncrementsSalesCounters(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	itemA := createItem(t, db, "Apples", 5.00)
	itemB := createItem(t, db, "Bread", 3.00)

	_, err := AddCartItem(db, user.ID, itemA.ID, 2)
	require.NoError(t, err)
	_, err = AddCartItem(db, user.ID, itemB.ID, 1)
	require.NoError(t, err)

	_, err = Checkout(db, user.ID, validPayment())
	require.NoError(t, err)

	var storedA, storedB models.Item
	require.NoError(t, db.First(&storedA, itemA.ID).Error)
	require.NoError(t, db.First(&storedB, itemB.ID).Error)
	assert.Equal(t, 2, storedA.Sales)
	assert.Equal(t, 1, storedB.Sales)
}

func TestCheckoutStoresPaymentRecordAgainstOrder(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	item := createItem(t, db, "Apples", 5.00)

	_, err := AddCartItem(db, user.ID, item.ID, 1)
	require.NoError(t, err)

	order, err := Checkout(db, user.ID, validPayment())
	require.NoError(t, err)

	var checkoutItem models.CheckoutItem
	require.NoError(t, db.First(&checkoutItem).Error)
	assert.Equal(t, order.ID, checkoutItem.OrderID)
	assert.Equal(t, "1234567812345678", checkoutItem.CCNumber)
}

func TestCheckoutRejectsMalformedPayment(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	item := createItem(t, db, "Apples", 5.00)

	_, err := AddCartItem(db, user.ID, item.ID, 1)
	require.NoError(t, err)

	cases := []struct {
		name    string
		payment PaymentInfo
		field   string
	}{
		{"fifteen digit card", PaymentInfo{CCNumber: "123456781234567", Expiry: "12/25", CCV: "123"}, "ccNumber"},
		{"non-numeric card", PaymentInfo{CCNumber: "12345678abcd5678", Expiry: "12/25", CCV: "123"}, "ccNumber"},
		{"missing expiry", PaymentInfo{CCNumber: "1234567812345678", Expiry: "", CCV: "123"}, "expiry"},
		{"bad security code", PaymentInfo{CCNumber: "1234567812345678", Expiry: "12/25", CCV: "12"}, "ccv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Checkout(db, user.ID, tc.payment)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	// nothing was created and the cart is untouched
	var orderCount, cartCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&cartCount).Error)
	assert.Zero(t, orderCount)
	assert.Equal(t, int64(1), cartCount)
}

func TestCheckoutAbortsWhenItemVanished(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	kept := createItem(t, db, "Apples", 5.00)
	vanished := createItem(t, db, "Bread", 3.00)

	_, err := AddCartItem(db, user.ID, kept.ID, 1)
	require.NoError(t, err)
	_, err = AddCartItem(db, user.ID, vanished.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Item{}, vanished.ID).Error)

	_, err = Checkout(db, user.ID, validPayment())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Item")

	// the whole checkout rolled back: no order, no payment record, cart intact
	var orderCount, paymentCount, cartCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.CheckoutItem{}).Count(&paymentCount).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, paymentCount)
	assert.Equal(t, int64(2), cartCount)
}

func TestCheckoutUnknownUser(t *testing.T) {
	db := newTestDB(t)

	_, err := Checkout(db, 42, validPayment())
	assert.ErrorIs(t, err, ErrNotFound)
}
