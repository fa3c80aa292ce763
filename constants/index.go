package constants

const (
	DATA_INPUT_IS_NOT_NUMBER = "Tham số phải là số"
	MISSING_LOGIN_INPUT      = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME         = "Tài khoản không tồn tại"
	INVALID_PASSWORD         = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE       = "Tài khoản đã bị khoá"
	ERROR_INTERNAL_ERROR     = "Lỗi hệ thống"

	INVALID_SIGNATURE    = "Chữ ký không hợp lệ"
	ORDER_NOT_FOUND      = "Không tìm thấy đơn hàng"
	SLOT_NOT_FOUND       = "Không tìm thấy đợt đặt bánh"
	OUTSIDE_ORDER_WINDOW = "Hiện không trong đợt nhận đặt bánh gửi bưu điện"
)
