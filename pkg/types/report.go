package types

// ReportRow is a single line of the DevEnv report
type ReportRow struct {
	IPAddress  string
	Hostname   string
	Owner      string
	Prefix     string
	Specs      string
	Provider   string
	Cost       string
	Expiration string
	State      string
	Password   string

	// VM is the normalized record the row was built from
	VM VM
}

// Report is the owner-sorted DevEnv report
type Report struct {
	Rows         []ReportRow
	ShowPassword bool
}

// ReportTotals summarizes a report
type ReportTotals struct {
	VMs         int
	Owners      int
	CostPerHour float64
	CostAccrued float64
}

// Columns returns the rendered column headers for the report
func (r *Report) Columns() []string {
	cols := []string{"IP Address", "Hostname", "Specs", "Provider", "Cost", "Expiration", "State"}
	if r.ShowPassword {
		cols = append(cols, "Password")
	}
	return cols
}

// Cells returns the rendered cell values for a row, matching Columns
func (r *Report) Cells(row ReportRow) []string {
	cells := []string{row.IPAddress, row.Hostname, row.Specs, row.Provider, row.Cost, row.Expiration, row.State}
	if r.ShowPassword {
		cells = append(cells, row.Password)
	}
	return cells
}
