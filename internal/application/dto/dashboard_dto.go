package dto

// WeeklyFlowDTO entradas y salidas por día de los últimos 7 días, alineadas
// por índice con Labels.
type WeeklyFlowDTO struct {
	Labels []string `json:"labels"` // ej: "lunes", "martes", ...
	In     []int    `json:"in"`
	Out    []int    `json:"out"`
}

// DashboardKPIsDTO respuesta de GET /api/dashboard/kpis.
type DashboardKPIsDTO struct {
	TotalProducts    int     `json:"total_products"`
	BelowMinimum     int     `json:"below_minimum"`      // productos en o bajo su umbral
	PercBelowMinimum float64 `json:"perc_below_minimum"` // % del catálogo bajo umbral
	MissingUnits     int     `json:"missing_units"`      // Σ faltantes hasta el umbral

	TopLowestStock []ProductResponse `json:"top_lowest_stock"` // 10 de menor stock
	RecentOrders   []OrderResponse   `json:"recent_orders"`    // 5 más recientes
	WeeklyFlow     WeeklyFlowDTO     `json:"weekly_flow"`
	Alerts         []ProductResponse `json:"alerts"`
}

// NotificationsResponse respuesta de GET /api/notifications.
type NotificationsResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
}
