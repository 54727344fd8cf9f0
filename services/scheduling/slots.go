package scheduling

import (
	"context"
	"encoding/json"
	"time"

	"lumiere/models"

	"go.uber.org/zap"
)

const (
	defaultOpenMinute  = 540  // 09:00
	defaultCloseMinute = 1080 // 18:00

	slotCacheTTL = 30 * time.Second
)

// AvailableSlots returns the free hourly slots on the given day in
// ascending order. A saturated day (day count at the cap) yields an
// empty list regardless of individual slot occupancy.
func (se *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, date string) ([]time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, newMalformedField("date", "expected YYYY-MM-DD")
	}

	if cached, ok := se.cachedSlots(ctx, date); ok {
		return cached, nil
	}

	cfg := se.Policy.Get()
	count, err := se.Ledger.CountOnDay(ctx, date)
	if err != nil {
		return nil, newInternalError(err)
	}
	if count >= cfg.MaxBookingsPerDay {
		slots := []time.Time{}
		se.storeSlots(ctx, date, slots)
		return slots, nil
	}

	bookings, err := se.Bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, newInternalError(err)
	}

	openMinute, closeMinute := se.OpenMinute, se.CloseMinute
	if closeMinute == 0 {
		openMinute, closeMinute = defaultOpenMinute, defaultCloseMinute
	}

	slots := []time.Time{}
	for minute := openMinute; minute+60 <= closeMinute; minute += 60 {
		slot := day.Add(time.Duration(minute) * time.Minute)
		if !slotOccupied(slot, bookings) {
			slots = append(slots, slot)
		}
	}

	se.storeSlots(ctx, date, slots)
	return slots, nil
}

// slotOccupied reports whether a non-Cancelled booking falls within the
// hour starting at slot.
func slotOccupied(slot time.Time, bookings []models.Booking) bool {
	end := slot.Add(time.Hour)
	for _, b := range bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		if !b.DateTime.Before(slot) && b.DateTime.Before(end) {
			return true
		}
	}
	return false
}

func slotCacheKey(date string) string {
	return "slots:" + date
}

func (se *DefaultSchedulingEngine) cachedSlots(ctx context.Context, date string) ([]time.Time, bool) {
	if se.Cache == nil {
		return nil, false
	}
	raw, err := se.Cache.Get(ctx, slotCacheKey(date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []time.Time
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (se *DefaultSchedulingEngine) storeSlots(ctx context.Context, date string, slots []time.Time) {
	if se.Cache == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := se.Cache.Set(ctx, slotCacheKey(date), raw, slotCacheTTL).Err(); err != nil {
		se.logger().Debug("failed to cache slot list", zap.String("date", date), zap.Error(err))
	}
}

// invalidateSlotCache drops the cached slot list after any mutation
// touching the day.
func (se *DefaultSchedulingEngine) invalidateSlotCache(ctx context.Context, date string) {
	if se.Cache == nil {
		return
	}
	if err := se.Cache.Del(ctx, slotCacheKey(date)).Err(); err != nil {
		se.logger().Debug("failed to invalidate slot cache", zap.String("date", date), zap.Error(err))
	}
}
