package models

// ReportSummary aggregates business performance over a reporting window.
// ConversionRate is new clients as a percentage of leads received in the
// window, zero when there were no leads.
type ReportSummary struct {
	PeriodDays        int     `json:"period_days"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalAppointments int     `json:"total_appointments"`
	TotalClients      int     `json:"total_clients"`
	TotalLeads        int     `json:"total_leads"`
	ConversionRate    float64 `json:"conversion_rate"`
	EmailsSent        int     `json:"emails_sent"`
	SMSSent           int     `json:"sms_sent"`
}
