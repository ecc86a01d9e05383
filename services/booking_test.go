package services

import (
	"testing"
	"time"

	"github.com/AaronDDavis/project-storage/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestGetTotalDays(t *testing.T) {
	// 頭尾皆計：同一天租一天
	assert.Equal(t, 1, GetTotalDays(date(t, "2026-09-01"), date(t, "2026-09-01")))
	assert.Equal(t, 3, GetTotalDays(date(t, "2026-09-01"), date(t, "2026-09-03")))
	assert.Equal(t, 31, GetTotalDays(date(t, "2026-09-01"), date(t, "2026-10-01")))

	// 結束早於開始時為非正數，由呼叫端拒絕
	assert.LessOrEqual(t, GetTotalDays(date(t, "2026-09-03"), date(t, "2026-09-01")), 0)
}

func TestGetRackBestFit(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, 3*models.ShelfHeight)
	seedRack(t, space.SpaceID, 8, 5)
	tight := seedRack(t, space.SpaceID, 8, 2)
	seedRack(t, space.SpaceID, 8, 8)

	// 需要 2 層時選剩餘最少但足夠的層架
	rack, err := GetRack(space, 2)
	require.NoError(t, err)
	require.NotNil(t, rack)
	assert.Equal(t, tight.RackID, rack.RackID)

	// 需要 6 層時只剩最後一座層架合格
	rack, err = GetRack(space, 6)
	require.NoError(t, err)
	require.NotNil(t, rack)
	assert.Equal(t, 8, rack.CountAvailableShelves())

	// 沒有層架放得下 9 層
	rack, err = GetRack(space, 9)
	require.NoError(t, err)
	assert.Nil(t, rack)
}

func TestCreateBookingPricing(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 2, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)
	require.NotNil(t, booking)

	// 3 天 x 6.99 x 2 層
	assert.InDelta(t, 41.94, booking.TotalPrice, 0.001)
	assert.Equal(t, models.BookingBooked, booking.Status)
	assert.False(t, booking.OccupyingSpace)
	assert.Equal(t, 3, GetBookingTotalDays(booking))
	assert.InDelta(t, 6.99, GetPricePerDay(booking), 0.001)

	// 建立時不佔用貨架
	assert.Equal(t, 4, availableShelfCount(t, booking.RackID))
}

func TestCreateBookingRejectsInvalidRange(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 1, date(t, "2026-09-03"), date(t, "2026-09-01"))
	assert.Error(t, err)
	assert.Nil(t, booking)
}

func TestCreateBookingNoRackAvailable(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 1)

	booking, err := CreateBooking(space, 10, 2, date(t, "2026-09-01"), date(t, "2026-09-03"))
	assert.ErrorIs(t, err, ErrNoRackAvailable)
	assert.Nil(t, booking)
}

func TestBookingLifecycle(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	rack := seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 2, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)

	// 生效日前：維持 BOOKED，不佔用
	require.NoError(t, UpdateBookingStatus(booking, "", date(t, "2026-08-31")))
	assert.Equal(t, models.BookingBooked, booking.Status)
	assert.False(t, booking.OccupyingSpace)
	assert.Equal(t, 4, availableShelfCount(t, rack.RackID))

	// 租期內：轉 ACTIVE 並佔用 2 層
	require.NoError(t, UpdateBookingStatus(booking, "", date(t, "2026-09-02")))
	assert.Equal(t, models.BookingActive, booking.Status)
	assert.True(t, booking.OccupyingSpace)
	assert.Equal(t, 2, availableShelfCount(t, rack.RackID))

	// 租期結束：轉 PAST 並釋放貨架
	require.NoError(t, UpdateBookingStatus(booking, "", date(t, "2026-09-04")))
	assert.Equal(t, models.BookingPast, booking.Status)
	assert.False(t, booking.OccupyingSpace)
	assert.Equal(t, 4, availableShelfCount(t, rack.RackID))
}

func TestUpdateBookingStatusOccupancyInvariant(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 1, date(t, "2026-09-01"), date(t, "2026-09-10"))
	require.NoError(t, err)

	// 任何狀態同步後，佔用旗標都必須與 ACTIVE 一致
	for _, day := range []string{"2026-08-20", "2026-09-05", "2026-09-20", "2026-09-05"} {
		require.NoError(t, UpdateBookingStatus(booking, "", date(t, day)))
		assert.Equal(t, booking.Status == models.BookingActive, booking.OccupyingSpace,
			"occupying_space must match ACTIVE on %s", day)
	}
}

func TestUpdateBookingStatusExplicit(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	rack := seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 2, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)

	// 明確指定狀態時不做日期判定，但仍同步佔用
	require.NoError(t, UpdateBookingStatus(booking, models.BookingActive, date(t, "2026-08-01")))
	assert.Equal(t, models.BookingActive, booking.Status)
	assert.True(t, booking.OccupyingSpace)
	assert.Equal(t, 2, availableShelfCount(t, rack.RackID))

	// 未定義的狀態碼不改變狀態
	require.NoError(t, UpdateBookingStatus(booking, "SOMETHING", date(t, "2026-08-01")))
	assert.Equal(t, models.BookingActive, booking.Status)
}

func TestCancelBooking(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	rack := seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 2, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)

	// 先讓預約生效並佔用貨架
	require.NoError(t, UpdateBookingStatus(booking, models.BookingActive, time.Now()))
	assert.Equal(t, 2, availableShelfCount(t, rack.RackID))

	// 非本人取消：拒絕且不變更任何狀態
	cancelled, err := CancelBooking(booking, 99)
	require.NoError(t, err)
	assert.False(t, cancelled)
	assert.Equal(t, models.BookingActive, booking.Status)
	assert.Equal(t, 2, availableShelfCount(t, rack.RackID))

	// 本人取消：轉 CANCELLED 並釋放貨架
	cancelled, err = CancelBooking(booking, 10)
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.Equal(t, models.BookingCancelled, booking.Status)
	assert.False(t, booking.OccupyingSpace)
	assert.Equal(t, 4, availableShelfCount(t, rack.RackID))
}

func TestCancelledBookingStaysCancelled(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 4)

	booking, err := CreateBooking(space, 10, 1, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)

	cancelled, err := CancelBooking(booking, 10)
	require.NoError(t, err)
	require.True(t, cancelled)

	// 自動判定不會把已取消的預約復活
	require.NoError(t, UpdateBookingStatus(booking, "", date(t, "2026-09-02")))
	assert.Equal(t, models.BookingCancelled, booking.Status)
	assert.False(t, booking.OccupyingSpace)
}

func TestRefreshAllBookingStatuses(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, 2*models.ShelfHeight)
	rack := seedRack(t, space.SpaceID, 8, 8)

	past, err := CreateBooking(space, 10, 1, date(t, "2026-08-01"), date(t, "2026-08-05"))
	require.NoError(t, err)
	active, err := CreateBooking(space, 11, 2, date(t, "2026-09-01"), date(t, "2026-09-10"))
	require.NoError(t, err)
	upcoming, err := CreateBooking(space, 12, 1, date(t, "2026-10-01"), date(t, "2026-10-05"))
	require.NoError(t, err)

	today := date(t, "2026-09-05")
	require.NoError(t, RefreshAllBookingStatuses(today))

	reloadStatus := func(id int) (string, bool) {
		booking, err := GetBookingByID(id)
		require.NoError(t, err)
		require.NotNil(t, booking)
		return booking.Status, booking.OccupyingSpace
	}

	status, occupying := reloadStatus(past.BookingID)
	assert.Equal(t, models.BookingPast, status)
	assert.False(t, occupying)

	status, occupying = reloadStatus(active.BookingID)
	assert.Equal(t, models.BookingActive, status)
	assert.True(t, occupying)

	status, occupying = reloadStatus(upcoming.BookingID)
	assert.Equal(t, models.BookingBooked, status)
	assert.False(t, occupying)

	// 只有生效中的預約佔用貨架
	assert.Equal(t, 6, availableShelfCount(t, rack.RackID))

	// 重複執行結果相同
	require.NoError(t, RefreshAllBookingStatuses(today))
	assert.Equal(t, 6, availableShelfCount(t, rack.RackID))

	status, occupying = reloadStatus(active.BookingID)
	assert.Equal(t, models.BookingActive, status)
	assert.True(t, occupying)
}

func TestGetLesseeBookings(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 4)

	_, err := CreateBooking(space, 10, 1, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)
	_, err = CreateBooking(space, 11, 1, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)

	bookings, err := GetLesseeBookings(10)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 10, bookings[0].LesseeID)
}

func TestGetBookingsBySpaceAndStatus(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 4, 4)
	otherSpace := seedSpace(t, 2, 6.99, models.ShelfHeight)
	seedRack(t, otherSpace.SpaceID, 4, 4)

	mine, err := CreateBooking(space, 10, 1, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)
	_, err = CreateBooking(otherSpace, 10, 1, date(t, "2026-09-01"), date(t, "2026-09-03"))
	require.NoError(t, err)

	bookings, err := GetBookings(space.SpaceID, models.BookingBooked)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, mine.BookingID, bookings[0].BookingID)

	bookings, err = GetBookings(space.SpaceID, models.BookingActive)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
