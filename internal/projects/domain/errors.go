package domain

// User-facing messages returned by the mutation layer. The admin console is
// Thai-first, so these are shown verbatim.
const (
	MsgNotAuthorized   = "คุณไม่มีสิทธิ"
	MsgMissingUpdateID = "ไม่พบ ID ของโปรเจกต์ที่ต้องการแก้ไข"
	MsgMissingDeleteID = "ไม่พบ ID ของโปรเจกต์ที่ต้องการลบ"
	MsgInvalidBody     = "ข้อมูลที่ส่งมาไม่ถูกต้อง"
	MsgTooManyRequests = "มีคำขอมากเกินไป กรุณาลองใหม่อีกครั้ง"
)
