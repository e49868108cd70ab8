package model

// DashboardCounts is the overview shown on the landing page.
type DashboardCounts struct {
	Products  int64 `json:"prod_count"`
	Stocks    int64 `json:"stock_count"`
	Employees int64 `json:"emp_count"`
	Sales     int64 `json:"sales_count"`
}
