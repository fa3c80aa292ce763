package helper

import (
	"dessert_shop/database"
	"dessert_shop/model"
	"errors"
	"fmt"
	"time"
)

// ShopLocation múi giờ của tiệm, mọi phép tính theo ngày dùng múi giờ này
var ShopLocation = time.FixedZone("ICT", 7*3600)

// DateOf chuẩn hoá một thời điểm về ngày theo lịch của tiệm (00:00 UTC)
func DateOf(t time.Time) time.Time {
	t = t.In(ShopLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Các chiều chồng lấn giữa hai đợt
const (
	OverlapOrderVsOrder       = "order-vs-order"
	OverlapDispatchVsDispatch = "dispatch-vs-dispatch"
	OverlapOrderVsDispatch    = "order-vs-dispatch"
	OverlapDispatchVsOrder    = "dispatch-vs-order"
)

// OverlapError nêu rõ đợt bị xung đột và chiều xung đột để admin sửa lại
type OverlapError struct {
	SlotName  string `json:"slotName"`
	Dimension string `json:"dimension"`
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("chồng lấn %s với đợt '%s'", e.Dimension, e.SlotName)
}

var (
	ErrWindowInvalid      = errors.New("khoảng ngày không hợp lệ, ngày bắt đầu phải trước hoặc bằng ngày kết thúc")
	ErrOrderAfterDispatch = errors.New("khoảng nhận đặt phải kết thúc trước khi khoảng gửi hàng bắt đầu")
	ErrOutsideMonth       = errors.New("các mốc ngày phải nằm trong tháng đã khai báo")
)

// ValidateSlot kiểm tra một đợt mới hoặc sửa so với các đợt active khác cùng tháng.
// Thứ tự kiểm: từng khoảng hợp lệ, nhận đặt trước gửi hàng, nằm trong tháng,
// rồi mới xét chồng lấn từng đôi theo cả bốn chiều.
func ValidateSlot(candidate model.PostalOrderSlot, others []model.PostalOrderSlot) error {
	oS, oE := candidate.OrderStart.Time, candidate.OrderEnd.Time
	dS, dE := candidate.DispatchStart.Time, candidate.DispatchEnd.Time

	if oS.After(oE) || dS.After(dE) {
		return ErrWindowInvalid
	}
	if !oE.Before(dS) {
		return ErrOrderAfterDispatch
	}

	monthStart, err := time.Parse("01-2006", candidate.Month)
	if err != nil {
		return fmt.Errorf("tháng không hợp lệ: %s", candidate.Month)
	}
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)
	for _, d := range []time.Time{oS, oE, dS, dE} {
		if d.Before(monthStart) || d.After(monthEnd) {
			return ErrOutsideMonth
		}
	}

	for _, other := range others {
		if other.ID == candidate.ID {
			continue // sửa đợt thì bỏ qua chính nó
		}
		if rangesOverlap(oS, oE, other.OrderStart.Time, other.OrderEnd.Time) {
			return &OverlapError{SlotName: other.Name, Dimension: OverlapOrderVsOrder}
		}
		if rangesOverlap(dS, dE, other.DispatchStart.Time, other.DispatchEnd.Time) {
			return &OverlapError{SlotName: other.Name, Dimension: OverlapDispatchVsDispatch}
		}
		if rangesOverlap(oS, oE, other.DispatchStart.Time, other.DispatchEnd.Time) {
			return &OverlapError{SlotName: other.Name, Dimension: OverlapOrderVsDispatch}
		}
		if rangesOverlap(dS, dE, other.OrderStart.Time, other.OrderEnd.Time) {
			return &OverlapError{SlotName: other.Name, Dimension: OverlapDispatchVsOrder}
		}
	}

	return nil
}

func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// InOrderWindow kiểm tra một ngày có nằm trong khoảng nhận đặt của đợt không
func InOrderWindow(slot model.PostalOrderSlot, date time.Time) bool {
	d := DateOf(date)
	return !d.Before(slot.OrderStart.Time) && !d.After(slot.OrderEnd.Time)
}

// InDispatchWindow kiểm tra một ngày có nằm trong khoảng gửi hàng của đợt không
func InDispatchWindow(slot model.PostalOrderSlot, date time.Time) bool {
	d := DateOf(date)
	return !d.Before(slot.DispatchStart.Time) && !d.After(slot.DispatchEnd.Time)
}

// ActiveSlotsForMonth trả về các đợt active trong tháng, bỏ qua excludeId khi sửa
func ActiveSlotsForMonth(month string, excludeId uint) ([]model.PostalOrderSlot, error) {
	var slots []model.PostalOrderSlot
	query := database.DB.Where("month = ? AND active = ?", month, true)
	if excludeId > 0 {
		query = query.Where("id != ?", excludeId)
	}
	if err := query.Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// SlotActiveOn trả về đợt active duy nhất có khoảng nhận đặt hoặc khoảng gửi hàng
// chứa ngày đã cho. Nhờ ràng buộc không chồng lấn, tối đa chỉ có một đợt như vậy.
func SlotActiveOn(date time.Time) (*model.PostalOrderSlot, error) {
	var slots []model.PostalOrderSlot
	if err := database.DB.Where("active = ?", true).Find(&slots).Error; err != nil {
		return nil, err
	}
	for i := range slots {
		if InOrderWindow(slots[i], date) || InDispatchWindow(slots[i], date) {
			return &slots[i], nil
		}
	}
	return nil, nil
}

// SlotAcceptingOrdersOn trả về đợt active đang nhận đặt vào ngày đã cho
func SlotAcceptingOrdersOn(date time.Time) (*model.PostalOrderSlot, error) {
	var slots []model.PostalOrderSlot
	if err := database.DB.Where("active = ?", true).Find(&slots).Error; err != nil {
		return nil, err
	}
	for i := range slots {
		if InOrderWindow(slots[i], date) {
			return &slots[i], nil
		}
	}
	return nil, nil
}

// SlotContainingOrderDate tìm đợt gốc: đợt có khoảng nhận đặt chứa ngày tạo đơn.
// Phải xét cả đợt đã tắt để tra cứu lịch sử cho đúng.
func SlotContainingOrderDate(date time.Time) (*model.PostalOrderSlot, error) {
	return FindSlotForOrderDate(date, nil)
}

// FindSlotForOrderDate là lõi tra cứu đợt gốc, tách ra để dùng lại trên slice có sẵn
func FindSlotForOrderDate(date time.Time, slots []model.PostalOrderSlot) (*model.PostalOrderSlot, error) {
	if slots == nil {
		if err := database.DB.Find(&slots).Error; err != nil {
			return nil, err
		}
	}
	for i := range slots {
		if InOrderWindow(slots[i], date) {
			return &slots[i], nil
		}
	}
	return nil, nil
}

// EarliestUpcomingSlot trả về đợt active có khoảng nhận đặt bắt đầu sớm nhất sau ngày đã cho
func EarliestUpcomingSlot(after time.Time) (*model.PostalOrderSlot, error) {
	var slots []model.PostalOrderSlot
	if err := database.DB.Where("active = ?", true).Find(&slots).Error; err != nil {
		return nil, err
	}
	d := DateOf(after)
	var best *model.PostalOrderSlot
	for i := range slots {
		if !slots[i].OrderStart.Time.After(d) {
			continue
		}
		if best == nil || slots[i].OrderStart.Time.Before(best.OrderStart.Time) {
			best = &slots[i]
		}
	}
	return best, nil
}
