package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/locale"
)

type message struct {
	en string
	th string
}

var messages = map[string]message{
	"invalid_request":     {"Invalid request", "คำขอไม่ถูกต้อง"},
	"invalid_id":          {"Invalid id", "รหัสไม่ถูกต้อง"},
	"invalid_date":        {"Invalid date", "วันที่ไม่ถูกต้อง"},
	"internal_error":      {"Something went wrong, please try again", "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"},
	"unauthorized":        {"Please sign in first", "กรุณาเข้าสู่ระบบก่อน"},
	"session_failed":      {"Failed to save session", "บันทึกเซสชันไม่สำเร็จ"},
	"invalid_credentials": {"Incorrect email or password", "อีเมลหรือรหัสผ่านไม่ถูกต้อง"},
	"email_taken":         {"This email is already registered", "อีเมลนี้ถูกใช้งานแล้ว"},
	"invalid_email":       {"Please enter a valid email", "กรุณากรอกอีเมลให้ถูกต้อง"},
	"password_too_short":  {"Password must be at least 8 characters", "รหัสผ่านต้องมีอย่างน้อย 8 ตัวอักษร"},
	"password_too_long":   {"Password must be at most 72 characters", "รหัสผ่านต้องไม่เกิน 72 ตัวอักษร"},
	"birth_date_required": {"Birth date is required", "กรุณาระบุวันเกิด"},
	"underage":            {"You must be of legal age to register", "คุณต้องมีอายุครบตามกฎหมายจึงจะสมัครได้"},
	"user_not_found":      {"User not found", "ไม่พบผู้ใช้"},
	"strain_not_found":    {"Strain not found", "ไม่พบสายพันธุ์"},
	"invalid_strain":      {"Invalid strain", "ข้อมูลสายพันธุ์ไม่ถูกต้อง"},
	"invalid_quantity":    {"Quantity must be 3.5 g steps up to 28 g", "ปริมาณต้องเพิ่มทีละ 3.5 กรัม และไม่เกิน 28 กรัม"},
	"cart_item_not_found": {"Item is not in the cart", "ไม่มีสินค้านี้ในตะกร้า"},
	"empty_cart":          {"Your cart is empty", "ตะกร้าของคุณว่างเปล่า"},
	"order_not_found":     {"Order not found", "ไม่พบคำสั่งซื้อ"},
	"payment_not_found":   {"Payment method not found", "ไม่พบวิธีการชำระเงิน"},
	"invalid_card":        {"Card details are invalid", "ข้อมูลบัตรไม่ถูกต้อง"},
	"diary_not_found":     {"Diary entry not found", "ไม่พบบันทึก"},
	"invalid_diary":       {"Rating must be 0 to 5 and duration cannot be negative", "คะแนนต้องอยู่ระหว่าง 0 ถึง 5 และระยะเวลาต้องไม่ติดลบ"},
	"invalid_review":      {"Rating must be between 1 and 5", "คะแนนต้องอยู่ระหว่าง 1 ถึง 5"},
	"logged_out":          {"Signed out", "ออกจากระบบแล้ว"},
	"deleted":             {"Deleted", "ลบแล้ว"},
}

// t returns the message for key in the request language.
func (a *API) t(c *gin.Context, key string) string {
	msg, ok := messages[key]
	if !ok {
		return key
	}
	return locale.Pick(a.requestLocale(c).Language, msg.en, msg.th)
}

func (a *API) fail(c *gin.Context, status int, key string) {
	respondError(c, status, a.t(c, key))
}
