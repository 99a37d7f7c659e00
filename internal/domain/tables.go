package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Shop
	&User{},
	&Product{},
	&CartItem{},
	&Booking{},
	&Order{},
	&ContactMessage{},
}
