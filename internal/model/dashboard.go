package model

// DashboardSummary backs the counters at the top of the dashboard.
type DashboardSummary struct {
	TotalBookings     int64   `json:"totalBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	ActiveTours       int64   `json:"activeTours"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
}

// TourStat is one row of the top tours table.
type TourStat struct {
	ID       string  `json:"id" bson:"_id"`
	Title    string  `json:"title" bson:"title"`
	Bookings int64   `json:"bookings" bson:"bookings"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
}

// MonthlyTrend is one point of the bookings chart.
type MonthlyTrend struct {
	Year     int     `json:"year"`
	Month    string  `json:"month"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}
