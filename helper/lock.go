package helper

import (
	"context"
	"dessert_shop/database"
	"sync"
	"time"

	"github.com/google/uuid"
)

// luaReleaseLockIfMatch chỉ xoá khi giá trị khoá còn là của mình, tránh xoá nhầm khoá mới
const luaReleaseLockIfMatch = `
local lockKey = KEYS[1]
local owner = ARGV[1]
if redis.call('GET', lockKey) == owner then
  return redis.call('DEL', lockKey)
end
return 0
`

var sessionLocks sync.Map // fallback trong tiến trình khi không có Redis

// AcquireSessionLock giữ khoá tạo đơn theo phiên đặt hàng. Đọc-rồi-ghi của
// đường tái sử dụng đơn phải nằm trọn trong khoá này; mutex trong tiến trình
// không đủ khi chạy nhiều instance nên ưu tiên Redis SETNX.
func AcquireSessionLock(token string) (release func(), ok bool) {
	if database.Redis == nil {
		v, _ := sessionLocks.LoadOrStore(token, &sync.Mutex{})
		mu := v.(*sync.Mutex)
		if !mu.TryLock() {
			return func() {}, false
		}
		return mu.Unlock, true
	}

	ctx := context.Background()
	key := "order_lock:" + token
	owner := uuid.NewString()

	acquired, err := database.Redis.SetNX(ctx, key, owner, 10*time.Second).Result()
	if err != nil || !acquired {
		return func() {}, false
	}
	return func() {
		database.Redis.Eval(ctx, luaReleaseLockIfMatch, []string{key}, owner)
	}, true
}

// AcquireMonthLock giữ khoá theo tháng cho thao tác tạo/sửa đợt,
// để hai admin không cùng lúc lách qua bước kiểm chồng lấn
func AcquireMonthLock(month string) (release func(), ok bool) {
	return AcquireSessionLock("slot_month:" + month)
}
