package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Coupons() CouponRepository
	Payments() PaymentRepository
	Instruments() InstrumentRepository
}
