package dashboard

// TopProduct is a product ranked by units sold within the summary
// window.
type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type SummaryResponse struct {
	TodaySales      float64      `json:"today_sales"`
	TodayOrders     int64        `json:"today_orders"`
	WeekSales       float64      `json:"week_sales"`
	WeekOrders      int64        `json:"week_orders"`
	TopProducts     []TopProduct `json:"top_products"`
	ClockedInCount  int64        `json:"clocked_in_count"`
	LowStockCount   int64        `json:"low_stock_count"`
	ActiveEmployees int64        `json:"active_employees"`
}
